package debug_test

import (
	"bytes"
	"strings"
	"testing"

	"flare/internal/bytecode"
	"flare/internal/debug"
	"flare/internal/value"
)

func TestDisassembleChunk(t *testing.T) {
	chunk := bytecode.NewChunk()
	idx, err := chunk.AddConstant(value.Number(1.2))
	if err != nil {
		t.Fatal(err)
	}
	chunk.WriteOp(bytecode.OpConstant, 1)
	chunk.Write(byte(idx), 1)
	chunk.WriteOp(bytecode.OpNegate, 1)
	chunk.WriteOp(bytecode.OpReturn, 2)

	var buf bytes.Buffer
	debug.DisassembleChunk(&buf, chunk, "test")
	out := buf.String()

	for _, want := range []string{"== test ==", "OP_CONSTANT", "1.2", "OP_NEGATE", "OP_RETURN"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
	// повтор строки источника отображается как |
	if !strings.Contains(out, "   | ") {
		t.Errorf("same-line marker missing:\n%s", out)
	}
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	chunk := bytecode.NewChunk()
	chunk.Write(200, 1)

	var buf bytes.Buffer
	next := debug.DisassembleInstruction(&buf, chunk, 0)
	if next != 1 {
		t.Errorf("unknown opcode must advance by one byte, got %d", next)
	}
	if !strings.Contains(buf.String(), "unknown opcode 200") {
		t.Errorf("output %q", buf.String())
	}
}
