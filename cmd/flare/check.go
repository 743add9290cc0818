package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	tea "github.com/charmbracelet/bubbletea"

	"flare/internal/diagfmt"
	"flare/internal/driver"
	"flare/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.fl|dir> ...",
	Short: "Compile scripts without executing them",
	Long:  `Check compiles every given script (or every *.fl file under a directory) in parallel and reports diagnostics`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("ui", true, "show progress UI when stdout is a terminal")
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	wantUI, _ := cmd.Flags().GetBool("ui")

	paths, err := collectScripts(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flare: %v\n", err)
		os.Exit(exitIO)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "flare: no .fl files to check")
		os.Exit(exitUsage)
	}

	maxDiags := maxDiagnostics(cmd, 0)

	var results []driver.CheckResult
	if wantUI && isTerminal(os.Stdout) {
		results, err = checkWithUI(cmd, paths, jobs, maxDiags)
	} else {
		results, err = driver.CheckFiles(cmd.Context(), paths, jobs, maxDiags, nil)
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "flare: %s: %v\n", res.Path, res.Err)
			failed++
			continue
		}
		if !res.OK {
			diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
				Color: useColor(cmd, os.Stderr),
			})
			failed++
		}
	}

	fmt.Printf("checked %d file(s), %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(exitCompile)
	}
	return nil
}

func checkWithUI(cmd *cobra.Command, paths []string, jobs, maxDiags int) ([]driver.CheckResult, error) {
	events := make(chan driver.CheckEvent, 256)

	type outcome struct {
		results []driver.CheckResult
		err     error
	}
	outcomeCh := make(chan outcome, 1)

	go func() {
		results, err := driver.CheckFiles(cmd.Context(), paths, jobs, maxDiags, events)
		outcomeCh <- outcome{results: results, err: err}
	}()

	model := ui.NewProgressModel("checking", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.results, uiErr
	}
	return out.results, out.err
}

func collectScripts(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := driver.ListScriptFiles(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
		} else {
			paths = append(paths, arg)
		}
	}
	return paths, nil
}
