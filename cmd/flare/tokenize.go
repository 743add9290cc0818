package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flare/internal/diagfmt"
	"flare/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.fl>",
	Short: "Tokenize a flare source file",
	Long:  `Tokenize breaks down a flare source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	result, err := driver.Tokenize(args[0], maxDiagnostics(cmd, 0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "flare: %v\n", err)
		os.Exit(exitIO)
	}

	// Диагностика в stderr, если есть
	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr)}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
}
