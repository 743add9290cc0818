package lexer

import (
	"flare/internal/diag"
	"flare/internal/token"
)

// ===== Классификаторы =====

func isAlpha(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// scanIdentOrKeyword consumes [A-Za-z_][A-Za-z_0-9]* and classifies it
// against the keyword table.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isAlphaNum(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

// scanNumber consumes digits with an optional fractional part. A '.' is part
// of the number only when a digit follows it; leading and trailing dots are
// never consumed.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть: '.' только если за ней цифра
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanString consumes a double-quoted string literal. The emitted Text keeps
// the surrounding quotes; consumers strip them. Newlines are allowed inside.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "Unterminated string.")
	return token.Token{Kind: token.Invalid, Span: sp, Text: "Unterminated string."}
}

// scanOperatorOrPunct consumes one operator or punctuation token, preferring
// the two-byte `=`-suffixed forms.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	var kind token.Kind
	switch b {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case '-':
		kind = token.Minus
	case '+':
		kind = token.Plus
	case '/':
		kind = token.Slash
	case '*':
		kind = token.Star
	case '!':
		if lx.cursor.Eat('=') {
			kind = token.BangEq
		} else {
			kind = token.Bang
		}
	case '=':
		if lx.cursor.Eat('=') {
			kind = token.EqEq
		} else {
			kind = token.Assign
		}
	case '<':
		if lx.cursor.Eat('=') {
			kind = token.LtEq
		} else {
			kind = token.Lt
		}
	case '>':
		if lx.cursor.Eat('=') {
			kind = token.GtEq
		} else {
			kind = token.Gt
		}
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "Unexpected character.")
		return token.Token{Kind: token.Invalid, Span: sp, Text: "Unexpected character."}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
