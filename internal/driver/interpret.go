// Package driver orchestrates the pipeline: load source, compile, consult
// the chunk cache, and hand the chunk to the VM.
package driver

import (
	"flare/internal/bytecode"
	"flare/internal/compiler"
	"flare/internal/diag"
	"flare/internal/lexer"
	"flare/internal/source"
	"flare/internal/token"
	"flare/internal/value"
	"flare/internal/vm"
)

// InterpretResult carries the outcome of one interpret call.
type InterpretResult struct {
	Result vm.Result
	Bag    *diag.Bag
}

// Interpret compiles the file and, on success, executes it on the VM.
// Compile diagnostics land in the returned bag; the caller formats them.
// The VM's registry and globals persist across calls.
func Interpret(machine *vm.VM, fs *source.FileSet, fileID source.FileID, maxDiagnostics int) InterpretResult {
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	chunk, ok := compiler.Compile(fs, fs.Get(fileID), machine.Objects(), rep)
	if !ok {
		bag.Sort()
		return InterpretResult{Result: vm.ResultCompileError, Bag: bag}
	}

	return InterpretResult{Result: machine.Run(chunk), Bag: bag}
}

// CompileOnly compiles without executing; used by check and disasm.
func CompileOnly(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) (*bytecode.Chunk, InterpretResult) {
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	chunk, ok := compiler.Compile(fs, fs.Get(fileID), value.NewRegistry(), rep)
	res := vm.ResultOK
	if !ok {
		res = vm.ResultCompileError
	}
	bag.Sort()
	return chunk, InterpretResult{Result: res, Bag: bag}
}

// TokenizeResult holds the token stream of a single file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize scans path to EOF, collecting lexical diagnostics.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
