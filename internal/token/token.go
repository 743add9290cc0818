package token

import (
	"flare/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, nil, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwAnd, KwClass, KwElse, KwFalse, KwFor, KwFun, KwIf, KwNil,
		KwOr, KwPrint, KwReturn, KwSuper, KwThis, KwTrue, KwVar, KwWhile:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Bang, BangEq, Assign, EqEq,
		Lt, LtEq, Gt, GtEq, LParen, RParen, LBrace, RBrace,
		Semicolon, Comma, Dot:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
