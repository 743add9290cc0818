package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"flare/internal/repl"
	"flare/internal/vm"
)

func runSession(t *testing.T, input string) (stdout, stderr string) {
	t.Helper()
	machine := vm.New(vm.NewDefaultRuntime(), vm.Options{})
	defer machine.Free()

	var out, errOut bytes.Buffer
	machine.SetRuntime(vm.NewTestRuntime(&out, &errOut))

	err := repl.Run(machine, strings.NewReader(input), &out, &errOut, repl.Options{})
	if err != nil {
		t.Fatalf("repl.Run: %v", err)
	}
	return out.String(), errOut.String()
}

func TestSessionEvaluatesEachLine(t *testing.T) {
	stdout, stderr := runSession(t, "print 1 + 2;\nprint \"hi\";\n")
	if stderr != "" {
		t.Errorf("stderr %q", stderr)
	}
	// приглашение перед каждой строкой и после последней, плюс финальный перевод строки
	want := "> 3\n> hi\n> \n"
	if stdout != want {
		t.Errorf("stdout %q, want %q", stdout, want)
	}
}

func TestCompileErrorDoesNotEndSession(t *testing.T) {
	stdout, stderr := runSession(t, "print 1 +;\nprint 2;\n")
	if !strings.Contains(stderr, "Expect expression.") {
		t.Errorf("stderr %q must carry the compile error", stderr)
	}
	if !strings.Contains(stdout, "2\n") {
		t.Errorf("session must continue after a compile error: %q", stdout)
	}
}

func TestRuntimeErrorDoesNotEndSession(t *testing.T) {
	stdout, stderr := runSession(t, "print -\"x\";\nprint 3;\n")
	if !strings.Contains(stderr, "Operand must be a number.") {
		t.Errorf("stderr %q", stderr)
	}
	if !strings.Contains(stdout, "3\n") {
		t.Errorf("session must continue after a runtime error: %q", stdout)
	}
}

func TestStateSurvivesAcrossLines(t *testing.T) {
	machine := vm.New(vm.NewDefaultRuntime(), vm.Options{})
	defer machine.Free()

	var out, errOut bytes.Buffer
	machine.SetRuntime(vm.NewTestRuntime(&out, &errOut))

	input := "var answer = 42;\nvar greeting = \"hello\";\n"
	if err := repl.Run(machine, strings.NewReader(input), &out, &errOut, repl.Options{}); err != nil {
		t.Fatal(err)
	}

	if v, ok := machine.GlobalByName("answer"); !ok || v.Num != 42 {
		t.Error("global from an earlier line must survive")
	}
	if v, ok := machine.GlobalByName("greeting"); !ok || !v.IsString() {
		t.Error("string global must survive")
	}
}

func TestCustomPrompt(t *testing.T) {
	machine := vm.New(vm.NewDefaultRuntime(), vm.Options{})
	defer machine.Free()

	var out, errOut bytes.Buffer
	machine.SetRuntime(vm.NewTestRuntime(&out, &errOut))

	opts := repl.Options{Prompt: ">>> "}
	if err := repl.Run(machine, strings.NewReader("1;\n"), &out, &errOut, opts); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), ">>> ") {
		t.Errorf("stdout %q must start with the custom prompt", out.String())
	}
}

func TestEmptySessionExitsCleanly(t *testing.T) {
	stdout, stderr := runSession(t, "")
	if stderr != "" {
		t.Errorf("stderr %q", stderr)
	}
	if stdout != "> \n" {
		t.Errorf("stdout %q, want prompt plus trailing newline", stdout)
	}
}
