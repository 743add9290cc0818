// Package compiler implements the single-pass Pratt compiler: it drives the
// lexer and emits bytecode directly while parsing, with panic-mode error
// recovery at statement boundaries.
package compiler

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"flare/internal/bytecode"
	"flare/internal/diag"
	"flare/internal/lexer"
	"flare/internal/source"
	"flare/internal/token"
	"flare/internal/value"
)

type parser struct {
	fs      *source.FileSet
	lx      *lexer.Lexer
	objects *value.Registry
	chunk   *bytecode.Chunk
	rep     diag.Reporter

	prev token.Token
	curr token.Token

	hadError  bool
	panicMode bool
}

// Compile translates one source file into a chunk. String constants are
// interned through the registry, which the VM owns. Reports diagnostics
// through rep; returns ok=false when any error was reported.
func Compile(fs *source.FileSet, file *source.File, objects *value.Registry, rep diag.Reporter) (*bytecode.Chunk, bool) {
	p := &parser{
		fs:      fs,
		objects: objects,
		chunk:   bytecode.NewChunk(),
		rep:     rep,
	}
	// лексические ошибки идут в тот же репортер
	p.lx = lexer.New(file, lexer.Options{Reporter: rep})

	p.advance()
	for !p.match(token.EOF) {
		p.declaration()
	}
	p.endCompiler()

	return p.chunk, !p.hadError
}

// ===== Token plumbing =====

func (p *parser) advance() {
	p.prev = p.curr
	for {
		p.curr = p.lx.Next()
		if p.curr.Kind != token.Invalid {
			break
		}
		// лексер уже зарепортил; только фиксируем ошибку и режим паники
		p.hadError = true
		p.panicMode = true
	}
}

func (p *parser) check(kind token.Kind) bool {
	return p.curr.Kind == kind
}

func (p *parser) match(kind token.Kind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(kind token.Kind, code diag.Code, msg string) {
	if p.curr.Kind == kind {
		p.advance()
		return
	}
	p.errorAtCurrent(code, msg)
}

// ===== Error reporting =====

// errorAt reports a compile error anchored to tok. In panic mode everything
// is suppressed until synchronize reaches a statement boundary.
func (p *parser) errorAt(tok token.Token, code diag.Code, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true
	if p.rep != nil {
		p.rep.Report(code, diag.SevError, tok.Span, msg, nil)
	}
}

func (p *parser) errorAtCurrent(code diag.Code, msg string) {
	p.errorAt(p.curr, code, msg)
}

func (p *parser) error(code diag.Code, msg string) {
	p.errorAt(p.prev, code, msg)
}

// synchronize clears panic mode and skips tokens until just past a ';' or at
// the start of the next declaration-like keyword.
func (p *parser) synchronize() {
	p.panicMode = false
	for p.curr.Kind != token.EOF {
		if p.prev.Kind == token.Semicolon {
			return
		}
		switch p.curr.Kind {
		case token.KwClass, token.KwFun, token.KwVar, token.KwFor,
			token.KwIf, token.KwWhile, token.KwPrint, token.KwReturn:
			return
		}
		p.advance()
	}
}

// ===== Emitters =====

// line resolves the source line of the previously consumed token.
func (p *parser) line() uint32 {
	return p.fs.Line(p.prev.Span)
}

func (p *parser) emitByte(b byte) {
	p.chunk.Write(b, p.line())
}

func (p *parser) emitOp(op bytecode.OpCode) {
	p.chunk.WriteOp(op, p.line())
}

func (p *parser) emitOps(a, b bytecode.OpCode) {
	p.emitOp(a)
	p.emitOp(b)
}

func (p *parser) emitReturn() {
	p.emitOp(bytecode.OpReturn)
}

// makeConstant appends v to the chunk's pool and returns its index; equal
// values are not deduplicated.
func (p *parser) makeConstant(v value.Value) byte {
	idx, err := p.chunk.AddConstant(v)
	if err != nil {
		p.error(diag.CompTooManyConstants, "Too many constants in one chunk.")
		return 0
	}
	b, err := safecast.Conv[byte](idx)
	if err != nil {
		panic(fmt.Errorf("constant index overflow: %w", err))
	}
	return b
}

func (p *parser) emitConstant(v value.Value) {
	idx := p.makeConstant(v)
	p.emitOp(bytecode.OpConstant)
	p.emitByte(idx)
}

func (p *parser) endCompiler() {
	p.emitReturn()
}

// ===== Declarations and statements =====

func (p *parser) declaration() {
	if p.match(token.KwVar) {
		p.varDeclaration()
	} else {
		p.statement()
	}

	if p.panicMode {
		p.synchronize()
	}
}

func (p *parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")

	if p.match(token.Assign) {
		p.expression()
	} else {
		p.emitOp(bytecode.OpNil)
	}
	p.consume(token.Semicolon, diag.CompExpectSemicolon, "Expect ';' after variable declaration.")

	p.defineVariable(global)
}

// parseVariable consumes the identifier and interns its name into the
// constant pool.
func (p *parser) parseVariable(msg string) byte {
	p.consume(token.Ident, diag.CompExpectVarName, msg)
	return p.identifierConstant(p.prev)
}

func (p *parser) identifierConstant(tok token.Token) byte {
	return p.makeConstant(p.objects.CopyString(tok.Text))
}

func (p *parser) defineVariable(global byte) {
	p.emitOp(bytecode.OpDefineGlobal)
	p.emitByte(global)
}

func (p *parser) statement() {
	if p.match(token.KwPrint) {
		p.printStatement()
	} else {
		p.expressionStatement()
	}
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(token.Semicolon, diag.CompExpectSemicolon, "Expect ';' after value.")
	p.emitOp(bytecode.OpPrint)
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(token.Semicolon, diag.CompExpectSemicolon, "Expect ';' after expression.")
	p.emitOp(bytecode.OpPop)
}

// ===== Expressions =====

func (p *parser) expression() {
	p.parsePrecedence(precAssignment)
}

// parsePrecedence parses any expression at the given precedence or higher:
// one prefix rule for the consumed token, then infix rules while the next
// token binds at least as tightly.
func (p *parser) parsePrecedence(prec precedence) {
	p.advance()
	prefix := getRule(p.prev.Kind).prefix
	if prefix == nil {
		p.error(diag.CompExpectExpression, "Expect expression.")
		return
	}
	prefix(p)

	for prec <= getRule(p.curr.Kind).prec {
		p.advance()
		infix := getRule(p.prev.Kind).infix
		infix(p)
	}
}

func (p *parser) grouping() {
	p.expression()
	p.consume(token.RParen, diag.CompExpectRParen, "Expect ')' after expression.")
}

func (p *parser) number() {
	n, err := strconv.ParseFloat(p.prev.Text, 64)
	if err != nil {
		p.error(diag.CompBadNumberLiteral, "Invalid number literal.")
		return
	}
	p.emitConstant(value.Number(n))
}

// stringLit strips the surrounding quotes and interns the contents.
func (p *parser) stringLit() {
	text := p.prev.Text
	body := text[1 : len(text)-1]
	p.emitConstant(p.objects.CopyString(body))
}

func (p *parser) literal() {
	switch p.prev.Kind {
	case token.KwFalse:
		p.emitOp(bytecode.OpFalse)
	case token.KwNil:
		p.emitOp(bytecode.OpNil)
	case token.KwTrue:
		p.emitOp(bytecode.OpTrue)
	}
}

func (p *parser) unary() {
	op := p.prev.Kind

	// операнд компилируем с приоритетом UNARY (право-ассоциативно)
	p.parsePrecedence(precUnary)

	switch op {
	case token.Bang:
		p.emitOp(bytecode.OpNot)
	case token.Minus:
		p.emitOp(bytecode.OpNegate)
	}
}

func (p *parser) binary() {
	op := p.prev.Kind
	rule := getRule(op)
	p.parsePrecedence(rule.prec + 1) // левая ассоциативность

	switch op {
	case token.Plus:
		p.emitOp(bytecode.OpAdd)
	case token.Minus:
		p.emitOp(bytecode.OpSubtract)
	case token.Star:
		p.emitOp(bytecode.OpMultiply)
	case token.Slash:
		p.emitOp(bytecode.OpDivide)
	case token.EqEq:
		p.emitOp(bytecode.OpEqual)
	case token.BangEq:
		p.emitOps(bytecode.OpEqual, bytecode.OpNot)
	case token.Gt:
		p.emitOp(bytecode.OpGreater)
	case token.GtEq:
		p.emitOps(bytecode.OpLess, bytecode.OpNot)
	case token.Lt:
		p.emitOp(bytecode.OpLess)
	case token.LtEq:
		p.emitOps(bytecode.OpGreater, bytecode.OpNot)
	}
}
