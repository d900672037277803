package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mergelint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mergelint",
	Short: "Merge-tag syntax linter for templates",
	Long: `mergelint checks HTML and text templates for merge variables written with
the wrong delimiters (<name>, [name]) and for {{variables}} containing
characters that cannot appear in a name.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stopTrace, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			stopTrace()
			return err
		}
		runCleanup = func() {
			stopProfiling()
			stopTrace()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cleanupRun()
	},
}

// runCleanup is set in PersistentPreRunE and released once by cleanupRun.
// PersistentPostRun is skipped when RunE fails, so error paths call it too.
var runCleanup func()

func cleanupRun() {
	if runCleanup != nil {
		runCleanup()
		runCleanup = nil
	}
}

// main registers subcommands and global flags, then runs the root command.
// Any error from the command exits with status 1.
func main() {
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per document")
	rootCmd.PersistentFlags().String("config", "", "path to mergelint.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	if err := rootCmd.Execute(); err != nil {
		cleanupRun()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// readColorMode resolves --color; auto enables colour only when w is a terminal.
func readColorMode(value string, w io.Writer) (bool, error) {
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && isTerminal(f), nil
	default:
		return false, errInvalidFlag("color", value, "auto|on|off")
	}
}
