package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flare/internal/diagfmt"
	"flare/internal/driver"
	"flare/internal/project"
	"flare/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <file.fl>",
	Short: "Compile and execute a flare script",
	Long:  `Compile a flare source file to bytecode and execute it on the VM`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(cmd, args[0])
	},
}

func init() {
	runCmd.Flags().Bool("trace", false, "enable VM execution tracing")
	runCmd.Flags().Bool("no-cache", false, "skip the compiled chunk cache")
}

func runScript(cmd *cobra.Command, path string) error {
	manifest, err := project.Load(".")
	if err != nil {
		return fmt.Errorf("loading %s: %w", project.ManifestName, err)
	}

	trace := manifest.Run.Trace
	if cmd.Flags().Lookup("trace") != nil {
		if v, err := cmd.Flags().GetBool("trace"); err == nil && v {
			trace = true
		}
	}
	cacheEnabled := manifest.Run.Cache
	if cmd.Flags().Lookup("no-cache") != nil {
		if v, err := cmd.Flags().GetBool("no-cache"); err == nil && v {
			cacheEnabled = false
		}
	}

	var cache *driver.DiskCache
	if cacheEnabled {
		// недоступный кэш не мешает исполнению
		cache, _ = driver.OpenDiskCache("flare")
	}

	machine := vm.New(vm.NewDefaultRuntime(), vm.Options{Trace: trace})
	defer machine.Free()

	res, fs, err := driver.RunFile(machine, path, driver.RunOptions{
		MaxDiagnostics: maxDiagnostics(cmd, manifest.Run.MaxDiagnostics),
		Cache:          cache,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "flare: %v\n", err)
		os.Exit(exitIO)
	}

	switch res.Result {
	case vm.ResultCompileError:
		diagfmt.CompileErrors(os.Stderr, res.Bag, fs)
		os.Exit(exitCompile)
	case vm.ResultRuntimeError:
		// сообщение уже напечатано VM
		os.Exit(exitRuntime)
	}
	return nil
}
