package bytecode

import "fmt"

// OpCode is a single-byte VM instruction. Operands, where present, are the
// bytes that follow the opcode in the chunk.
type OpCode byte

const (
	// OpConstant pushes constants[operand]; one byte operand.
	OpConstant OpCode = iota
	// OpNil pushes the nil value.
	OpNil
	// OpTrue pushes boolean true.
	OpTrue
	// OpFalse pushes boolean false.
	OpFalse
	// OpPop discards the top of the stack.
	OpPop
	// OpDefineGlobal binds the top of the stack to the global named by
	// constants[operand]; one byte operand.
	OpDefineGlobal
	// OpEqual pushes a == b.
	OpEqual
	// OpGreater pushes a > b; numbers only.
	OpGreater
	// OpLess pushes a < b; numbers only.
	OpLess
	// OpAdd pushes a + b for numbers, concatenation for strings.
	OpAdd
	// OpSubtract pushes a - b; numbers only.
	OpSubtract
	// OpMultiply pushes a * b; numbers only.
	OpMultiply
	// OpDivide pushes a / b; numbers only.
	OpDivide
	// OpNot pushes the falsey-negation of the top of the stack.
	OpNot
	// OpNegate pushes -v; number only.
	OpNegate
	// OpPrint pops and prints the top of the stack with a trailing newline.
	OpPrint
	// OpReturn ends execution of the chunk.
	OpReturn
)

var opNames = [...]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpReturn:       "OP_RETURN",
}

func (op OpCode) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("OP_UNKNOWN(%d)", byte(op))
}

// HasOperand reports whether the opcode carries a one-byte operand.
func (op OpCode) HasOperand() bool {
	return op == OpConstant || op == OpDefineGlobal
}
