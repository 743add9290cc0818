package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"flare/internal/driver"
	"flare/internal/source"
	"flare/internal/vm"
)

type runResult struct {
	result vm.Result
	stdout string
	stderr string
}

// interpret прогоняет исходник через полный конвейер на свежей VM
func interpret(t *testing.T, src string) runResult {
	t.Helper()
	machine, fs := newMachine(t)
	return interpretOn(t, machine, fs, src)
}

func newMachine(t *testing.T) (*vm.VM, *source.FileSet) {
	t.Helper()
	machine := vm.New(vm.NewTestRuntime(&bytes.Buffer{}, &bytes.Buffer{}), vm.Options{})
	t.Cleanup(machine.Free)
	return machine, source.NewFileSet()
}

func interpretOn(t *testing.T, machine *vm.VM, fs *source.FileSet, src string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	machine.SetRuntime(vm.NewTestRuntime(&stdout, &stderr))

	fileID := fs.AddVirtual("test.fl", []byte(src))
	res := driver.Interpret(machine, fs, fileID, 32)
	return runResult{result: res.Result, stdout: stdout.String(), stderr: stderr.String()}
}

func expectOutput(t *testing.T, src, want string) {
	t.Helper()
	res := interpret(t, src)
	if res.result != vm.ResultOK {
		t.Fatalf("%q: result %v, stderr: %s", src, res.result, res.stderr)
	}
	if res.stdout != want {
		t.Errorf("%q: stdout %q, want %q", src, res.stdout, want)
	}
}

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"print 1 + 2;", "3\n"},
		{`print "foo" + "bar";`, "foobar\n"},
		{"print !(5 - 4 > 3 * 2 == !nil);", "true\n"},
		{`print "a" == "a";`, "true\n"},
		{"print -(-3);", "3\n"},
		{"print 1 / 0;", "inf\n"},
		{"print 1 + 2 * 3 == 7;", "true\n"},
		{"print -2 * 3;", "-6\n"},
		{"print !(5 > 4);", "false\n"},
		{"print 1 - 2 - 3;", "-4\n"},
		{"print nil;", "nil\n"},
		{"print !nil;", "true\n"},
		{`print "" + "x";`, "x\n"},
	}
	for _, tc := range cases {
		expectOutput(t, tc.src, tc.want)
	}
}

func TestEmptyProgram(t *testing.T) {
	expectOutput(t, "", "")
}

func TestExpressionStatementPrintsNothing(t *testing.T) {
	expectOutput(t, "1 + 2;", "")
}

func TestNegateNonNumber(t *testing.T) {
	res := interpret(t, `print -"x";`)
	if res.result != vm.ResultRuntimeError {
		t.Fatalf("result %v, want runtime error", res.result)
	}
	if res.stdout != "" {
		t.Errorf("stdout %q, want empty", res.stdout)
	}
	want := "Operand must be a number.\n[line 1] in script\n"
	if res.stderr != want {
		t.Errorf("stderr %q, want %q", res.stderr, want)
	}
}

func TestArithmeticTypeErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"print 1 - nil;", "Operands must be numbers."},
		{"print true * 2;", "Operands must be numbers."},
		{"print nil / nil;", "Operands must be numbers."},
		{"print 1 > nil;", "Operands must be numbers."},
		{`print 1 < "x";`, "Operands must be numbers."},
		{`print 1 + "x";`, "Operands must be two numbers or two strings."},
		{`print "x" + 1;`, "Operands must be two numbers or two strings."},
		{"print nil + nil;", "Operands must be two numbers or two strings."},
	}
	for _, tc := range cases {
		res := interpret(t, tc.src)
		if res.result != vm.ResultRuntimeError {
			t.Fatalf("%q: result %v, want runtime error", tc.src, res.result)
		}
		if !strings.HasPrefix(res.stderr, tc.want+"\n") {
			t.Errorf("%q: stderr %q, want prefix %q", tc.src, res.stderr, tc.want)
		}
		if !strings.Contains(res.stderr, "[line 1] in script") {
			t.Errorf("%q: stderr missing line tag: %q", tc.src, res.stderr)
		}
	}
}

func TestRuntimeErrorLineNumber(t *testing.T) {
	res := interpret(t, "1;\n2;\nprint -nil;")
	if res.result != vm.ResultRuntimeError {
		t.Fatalf("result %v", res.result)
	}
	if !strings.Contains(res.stderr, "[line 3] in script") {
		t.Errorf("stderr %q, want line 3 tag", res.stderr)
	}
}

func TestEqualityAcrossTypes(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"print 1 == 1;", "true\n"},
		{"print 1 == 2;", "false\n"},
		{"print nil == nil;", "true\n"},
		{"print nil == false;", "false\n"},
		{`print "a" == "b";`, "false\n"},
		{`print "ab" == "a" + "b";`, "true\n"},
		{`print 1 == "1";`, "false\n"},
		{"print 1 != 2;", "true\n"},
	}
	for _, tc := range cases {
		expectOutput(t, tc.src, tc.want)
	}
}

func TestConcatenationInternsResult(t *testing.T) {
	machine, fs := newMachine(t)

	before := machine.Objects().ObjectCount()
	res := interpretOn(t, machine, fs, `print ("a" + "b") == ("a" + "b");`)
	if res.result != vm.ResultOK {
		t.Fatalf("result %v, stderr %s", res.result, res.stderr)
	}
	if res.stdout != "true\n" {
		t.Errorf("stdout %q", res.stdout)
	}
	// "a", "b" и один интернированный "ab"
	if got := machine.Objects().ObjectCount() - before; got != 3 {
		t.Errorf("created %d objects, want 3", got)
	}
}

func TestCompileErrorRunsNothing(t *testing.T) {
	res := interpret(t, "print 1 +; print 2;")
	if res.result != vm.ResultCompileError {
		t.Fatalf("result %v, want compile error", res.result)
	}
	if res.stdout != "" {
		t.Errorf("no bytecode must execute on compile error, got %q", res.stdout)
	}
}

func TestVMUsableAfterRuntimeError(t *testing.T) {
	machine, fs := newMachine(t)

	if res := interpretOn(t, machine, fs, "print -nil;"); res.result != vm.ResultRuntimeError {
		t.Fatalf("first call: %v", res.result)
	}
	// стек сброшен, VM жива
	res := interpretOn(t, machine, fs, "print 40 + 2;")
	if res.result != vm.ResultOK || res.stdout != "42\n" {
		t.Errorf("second call: %v, stdout %q", res.result, res.stdout)
	}
}

func TestInterningPersistsAcrossCalls(t *testing.T) {
	machine, fs := newMachine(t)

	interpretOn(t, machine, fs, `print "keep";`)
	count := machine.Objects().ObjectCount()

	// та же строка во втором вызове не создаёт нового объекта
	interpretOn(t, machine, fs, `print "keep";`)
	if machine.Objects().ObjectCount() != count {
		t.Error("interned strings must be reused across interpret calls")
	}
}

func TestDefineGlobalExecutes(t *testing.T) {
	machine, fs := newMachine(t)

	res := interpretOn(t, machine, fs, `var greeting = "hello"; print 1;`)
	if res.result != vm.ResultOK {
		t.Fatalf("result %v, stderr %s", res.result, res.stderr)
	}
	if res.stdout != "1\n" {
		t.Errorf("stdout %q", res.stdout)
	}
	if v, ok := machine.GlobalByName("greeting"); !ok || !v.IsString() || v.AsString().Str != "hello" {
		t.Errorf("global greeting = %v, %v", v, ok)
	}
}

func TestGlobalStoredInTable(t *testing.T) {
	machine, fs := newMachine(t)

	res := interpretOn(t, machine, fs, "var x = 42;")
	if res.result != vm.ResultOK {
		t.Fatalf("result %v", res.result)
	}
	v, ok := machine.GlobalByName("x")
	if !ok {
		t.Fatal("global x must be defined")
	}
	if !v.IsNumber() || v.Num != 42 {
		t.Errorf("global x = %s, want 42", v)
	}

	// объявление без инициализатора связывает nil
	interpretOn(t, machine, fs, "var y;")
	if v, ok := machine.GlobalByName("y"); !ok || !v.IsNil() {
		t.Error("global y must be nil")
	}
}

func TestTraceModeWritesToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	machine := vm.New(vm.NewTestRuntime(&stdout, &stderr), vm.Options{Trace: true})
	defer machine.Free()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fl", []byte("print 1;"))
	res := driver.Interpret(machine, fs, fileID, 32)
	if res.Result != vm.ResultOK {
		t.Fatalf("result %v", res.Result)
	}
	if !strings.Contains(stderr.String(), "OP_CONSTANT") || !strings.Contains(stderr.String(), "OP_PRINT") {
		t.Errorf("trace output missing instructions: %q", stderr.String())
	}
	if stdout.String() != "1\n" {
		t.Errorf("stdout %q", stdout.String())
	}
}
