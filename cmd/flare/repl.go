package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flare/internal/project"
	"flare/internal/repl"
	"flare/internal/vm"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

func runRepl(cmd *cobra.Command) error {
	manifest, err := project.Load(".")
	if err != nil {
		return fmt.Errorf("loading %s: %w", project.ManifestName, err)
	}

	machine := vm.New(vm.NewDefaultRuntime(), vm.Options{})
	defer machine.Free()

	opts := repl.Options{
		Prompt:         manifest.Repl.Prompt,
		MaxDiagnostics: maxDiagnostics(cmd, manifest.Run.MaxDiagnostics),
	}
	if err := repl.Run(machine, os.Stdin, os.Stdout, os.Stderr, opts); err != nil {
		fmt.Fprintf(os.Stderr, "flare: %v\n", err)
		os.Exit(exitIO)
	}
	return nil
}
