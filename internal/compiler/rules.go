package compiler

import (
	"flare/internal/token"
)

// precedence is the Pratt ladder, lowest to highest.
type precedence uint8

const (
	precNone precedence = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

type parseFn func(*parser)

// rule is one row of the Pratt table: how a token parses in prefix position,
// in infix position, and how tightly it binds as an infix operator.
type rule struct {
	prefix parseFn
	infix  parseFn
	prec   precedence
}

// rules is indexed by token kind; kinds without an entry parse as
// {nil, nil, precNone}.
var rules [token.KindCount]rule

func init() {
	rules[token.LParen] = rule{(*parser).grouping, nil, precNone}
	rules[token.Minus] = rule{(*parser).unary, (*parser).binary, precTerm}
	rules[token.Plus] = rule{nil, (*parser).binary, precTerm}
	rules[token.Slash] = rule{nil, (*parser).binary, precFactor}
	rules[token.Star] = rule{nil, (*parser).binary, precFactor}
	rules[token.Bang] = rule{(*parser).unary, nil, precNone}
	rules[token.BangEq] = rule{nil, (*parser).binary, precEquality}
	rules[token.EqEq] = rule{nil, (*parser).binary, precEquality}
	rules[token.Gt] = rule{nil, (*parser).binary, precComparison}
	rules[token.GtEq] = rule{nil, (*parser).binary, precComparison}
	rules[token.Lt] = rule{nil, (*parser).binary, precComparison}
	rules[token.LtEq] = rule{nil, (*parser).binary, precComparison}
	rules[token.StringLit] = rule{(*parser).stringLit, nil, precNone}
	rules[token.NumberLit] = rule{(*parser).number, nil, precNone}
	rules[token.KwFalse] = rule{(*parser).literal, nil, precNone}
	rules[token.KwNil] = rule{(*parser).literal, nil, precNone}
	rules[token.KwTrue] = rule{(*parser).literal, nil, precNone}
}

func getRule(kind token.Kind) *rule {
	return &rules[kind]
}
