package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flare/internal/version"
)

// Exit codes, BSD sysexits style.
const (
	exitOK      = 0
	exitUsage   = 64
	exitCompile = 65
	exitRuntime = 70
	exitIO      = 74
)

var rootCmd = &cobra.Command{
	Use:   "flare [file.fl]",
	Short: "Flare language bytecode compiler and VM",
	Long:  `Flare compiles a small dynamic language to bytecode and executes it on a stack VM`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// без аргументов — интерактивный режим, с файлом — исполнение
		if len(args) == 0 {
			return runRepl(cmd)
		}
		return runScript(cmd, args[0])
	},
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = manifest default for run and repl, 100 otherwise)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUsage)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func maxDiagnostics(cmd *cobra.Command, manifestDefault int) int {
	n, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if n > 0 {
		return n
	}
	if manifestDefault > 0 {
		return manifestDefault
	}
	return 100
}
