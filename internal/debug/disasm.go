// Package debug renders chunks and instructions for the disasm command and
// the VM trace mode.
package debug

import (
	"fmt"
	"io"

	"flare/internal/bytecode"
)

// DisassembleChunk writes a full listing of the chunk to w.
func DisassembleChunk(w io.Writer, chunk *bytecode.Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < chunk.Len(); {
		offset = DisassembleInstruction(w, chunk, offset)
	}
}

// DisassembleInstruction writes one instruction at offset and returns the
// offset of the next instruction.
func DisassembleInstruction(w io.Writer, chunk *bytecode.Chunk, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	if offset > 0 && chunk.GetLine(offset) == chunk.GetLine(offset-1) {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", chunk.GetLine(offset))
	}

	op := bytecode.OpCode(chunk.Read(offset))
	switch op {
	case bytecode.OpConstant, bytecode.OpDefineGlobal:
		return constantInstruction(w, op.String(), chunk, offset)
	case bytecode.OpNil, bytecode.OpTrue, bytecode.OpFalse, bytecode.OpPop,
		bytecode.OpEqual, bytecode.OpGreater, bytecode.OpLess,
		bytecode.OpAdd, bytecode.OpSubtract, bytecode.OpMultiply, bytecode.OpDivide,
		bytecode.OpNot, bytecode.OpNegate, bytecode.OpPrint, bytecode.OpReturn:
		return simpleInstruction(w, op.String(), offset)
	default:
		fmt.Fprintf(w, "unknown opcode %d\n", byte(op))
		return offset + 1
	}
}

func simpleInstruction(w io.Writer, name string, offset int) int {
	fmt.Fprintf(w, "%s\n", name)
	return offset + 1
}

func constantInstruction(w io.Writer, name string, chunk *bytecode.Chunk, offset int) int {
	idx := chunk.Read(offset + 1)
	fmt.Fprintf(w, "%-16s %4d '%s'\n", name, idx, chunk.Constants.At(int(idx)))
	return offset + 2
}
