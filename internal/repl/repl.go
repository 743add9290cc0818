// Package repl implements the interactive prompt loop.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"flare/internal/diagfmt"
	"flare/internal/driver"
	"flare/internal/source"
	"flare/internal/vm"
)

// Options configures a REPL session.
type Options struct {
	Prompt         string
	MaxDiagnostics int
}

// Run reads line-delimited input until EOF, feeding each line through one
// interpret call on a single VM. Interned strings and globals persist across
// lines. Returns a non-nil error only for input I/O failures.
func Run(machine *vm.VM, in io.Reader, out, errOut io.Writer, opts Options) error {
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}

	// один FileSet на сессию: номера строк внутри каждой введённой строки
	fs := source.NewFileSet()
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, opts.Prompt)
		if !scanner.Scan() {
			break
		}

		fileID := fs.AddVirtual("repl", []byte(scanner.Text()))
		res := driver.Interpret(machine, fs, fileID, opts.MaxDiagnostics)
		if res.Result == vm.ResultCompileError {
			diagfmt.CompileErrors(errOut, res.Bag, fs)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	// аккуратный перевод строки после ^D
	fmt.Fprintln(out)
	return nil
}
