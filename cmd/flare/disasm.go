package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"flare/internal/debug"
	"flare/internal/diagfmt"
	"flare/internal/driver"
	"flare/internal/source"
	"flare/internal/vm"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [flags] <file.fl>",
	Short: "Compile a flare script and print its bytecode",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func runDisasm(cmd *cobra.Command, args []string) error {
	path := args[0]

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flare: %v\n", err)
		os.Exit(exitIO)
	}

	chunk, res := driver.CompileOnly(fs, fileID, maxDiagnostics(cmd, 0))
	if res.Result == vm.ResultCompileError {
		diagfmt.CompileErrors(os.Stderr, res.Bag, fs)
		os.Exit(exitCompile)
	}

	debug.DisassembleChunk(os.Stdout, chunk, filepath.Base(path))
	return nil
}
