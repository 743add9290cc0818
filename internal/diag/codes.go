package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Компиляция
	CompInfo              Code = 2000
	CompExpectExpression  Code = 2001
	CompExpectRParen      Code = 2002
	CompExpectSemicolon   Code = 2003
	CompExpectVarName     Code = 2004
	CompTooManyConstants  Code = 2005
	CompUnexpectedToken   Code = 2006
	CompBadNumberLiteral  Code = 2007

	// Ошибки исполнения
	RunInfo            Code = 4000
	RunOperandNumber   Code = 4001
	RunOperandsNumbers Code = 4002
	RunOperandsAddable Code = 4003

	// Хост: файлы, ввод-вывод
	HostInfo        Code = 5000
	HostFileRead    Code = 5001
	HostStdinFailed Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:           "unknown error",
	LexInfo:               "lexical note",
	LexUnknownChar:        "unexpected character",
	LexUnterminatedString: "unterminated string",
	CompInfo:              "compile note",
	CompExpectExpression:  "expression expected",
	CompExpectRParen:      "missing ')'",
	CompExpectSemicolon:   "missing ';'",
	CompExpectVarName:     "variable name expected",
	CompTooManyConstants:  "constant pool overflow",
	CompUnexpectedToken:   "unexpected token",
	CompBadNumberLiteral:  "malformed number literal",
	RunInfo:               "runtime note",
	RunOperandNumber:      "operand must be a number",
	RunOperandsNumbers:    "operands must be numbers",
	RunOperandsAddable:    "operands must be two numbers or two strings",
	HostInfo:              "host note",
	HostFileRead:          "cannot read file",
	HostStdinFailed:       "cannot read stdin",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CMP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RUN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
