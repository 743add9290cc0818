// Package lexer turns flare source bytes into a stream of tokens on demand.
package lexer

import (
	"flare/internal/source"
	"flare/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
	}
}

// Next возвращает следующий **значимый** токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look — вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) Пропустить whitespace и комментарии
	lx.skipTrivia()

	// 3) Если EOF → вернуть EOF
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Text: "",
		}
	}

	// 4) Посмотреть текущий байт и выбрать сканер
	ch := lx.cursor.Peek()

	switch {
	case isAlpha(ch):
		// буква или '_' → идентификатор/ключевое слово
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		// цифра → число
		return lx.scanNumber()

	case ch == '"':
		// " → строка
		return lx.scanString()

	default:
		// иначе → оператор/пунктуация (или неизвестный байт)
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// skipTrivia пропускает пробелы, табы, переводы строк и `//` комментарии.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			lx.cursor.Bump()
			continue
		}

		if b == '/' {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '/' {
				// line comment до конца строки
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				continue
			}
		}

		break
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
