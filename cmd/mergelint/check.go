package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mergelint/internal/diag"
	"mergelint/internal/diagfmt"
	"mergelint/internal/driver"
	"mergelint/internal/htmltag"
	"mergelint/internal/mergetag"
	"mergelint/internal/observ"
	"mergelint/internal/source"
	"mergelint/internal/version"
)

const cacheAppName = "mergelint"

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|dir|->...",
	Short: "Check templates for merge-tag syntax errors",
	Long: `Check templates for merge-tag syntax errors.

Files are checked as given; directories are walked for files with a known
extension; "-" reads one document from standard input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel documents (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "reuse results for unchanged documents")
	checkCmd.Flags().Bool("no-structural", false, "skip the structural HTML linter")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().StringSlice("extensions", nil, "file extensions picked up in directories (default .html,.htm,.tmpl,.txt)")
	checkCmd.Flags().Bool("first-curly-only", false, "validate only the first {{...}} span of each document")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

// checkFlags holds the parsed command-line state of `mergelint check`.
type checkFlags struct {
	format         string
	jobs           int
	ui             uiMode
	cache          bool
	noStructural   bool
	fullPath       bool
	extensions     []string
	firstCurlyOnly bool
	withNotes      bool
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	maxChanged     bool
	configPath     string
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var f checkFlags
	var err error

	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	f.format = strings.ToLower(strings.TrimSpace(f.format))
	switch f.format {
	case "pretty", "json", "sarif", "short":
	default:
		return f, errInvalidFlag("format", f.format, "pretty|json|sarif|short")
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.jobs < 0 {
		return f, fmt.Errorf("--jobs must be >= 0, got %d", f.jobs)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.noStructural, err = cmd.Flags().GetBool("no-structural"); err != nil {
		return f, fmt.Errorf("failed to get no-structural flag: %w", err)
	}
	if f.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if f.extensions, err = cmd.Flags().GetStringSlice("extensions"); err != nil {
		return f, fmt.Errorf("failed to get extensions flag: %w", err)
	}
	if f.firstCurlyOnly, err = cmd.Flags().GetBool("first-curly-only"); err != nil {
		return f, fmt.Errorf("failed to get first-curly-only flag: %w", err)
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	root := cmd.Root().PersistentFlags()
	colorValue, err := root.GetString("color")
	if err != nil {
		return f, fmt.Errorf("failed to get color flag: %w", err)
	}
	if f.color, err = readColorMode(colorValue, cmd.OutOrStdout()); err != nil {
		return f, err
	}
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if f.timings, err = root.GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if f.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return f, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	f.maxChanged = root.Changed("max-diagnostics")
	if f.configPath, err = root.GetString("config"); err != nil {
		return f, fmt.Errorf("failed to get config flag: %w", err)
	}
	return f, nil
}

// buildOptions merges flags over the project config. Flags win when set.
func buildOptions(f *checkFlags, cfg *projectConfig) (driver.Options, error) {
	opts := driver.Options{
		Jobs:       f.jobs,
		Extensions: cfg.Check.Extensions,
	}

	opts.MaxDiagnostics = f.maxDiagnostics
	if !f.maxChanged && cfg.maxSet {
		opts.MaxDiagnostics = cfg.Check.MaxDiagnostics
	}
	if len(f.extensions) > 0 {
		exts := make([]string, 0, len(f.extensions))
		for _, ext := range f.extensions {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			exts = append(exts, ext)
		}
		opts.Extensions = exts
	}

	opts.Validator = mergetag.New(mergetag.Options{
		Tags:           htmltag.Default.With(cfg.Tags.Allow...),
		FirstCurlyOnly: f.firstCurlyOnly || cfg.Check.FirstCurlyOnly,
	})

	if !f.noStructural && len(cfg.Structural.Command) > 0 {
		linter := driver.CommandLinter{
			Argv:    cfg.Structural.Command,
			Timeout: cfg.StructuralTimeout(),
		}
		opts.Structural = linter
		opts.StructuralKey = linter.Command()
	}

	if f.cache {
		cache, err := driver.OpenDiskCache(cacheAppName)
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig(flags.configPath, ".")
	if err != nil {
		return err
	}

	opts, err := buildOptions(&flags, &cfg)
	if err != nil {
		return err
	}
	opts.Stdin = cmd.InOrStdin()
	if wd, wdErr := os.Getwd(); wdErr == nil {
		opts.BaseDir = wd
	}

	ctx := cmd.Context()
	var (
		fs      *source.FileSet
		results []driver.CheckResult
	)
	if !flags.quiet && shouldUseTUI(flags.ui, args) {
		fs, results, err = runCheckWithUI(ctx, "mergelint check", args, opts)
	} else {
		fs, results, err = driver.Check(ctx, args, opts)
	}
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return fmt.Errorf("%s: %w", strings.Join(args, " "), err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if err := writeResults(out, fs, results, &flags, args); err != nil {
		return err
	}

	if flags.timings {
		reports := make([]observ.Report, 0, len(results))
		for _, r := range results {
			reports = append(reports, r.Timing)
		}
		fmt.Fprint(cmd.ErrOrStderr(), observ.Aggregate(reports...).Summary())
	}

	if hasErrors(results) {
		cleanupRun()
		// диагностики уже напечатаны
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errDiagnosticsReported
	}
	return nil
}

var errDiagnosticsReported = errors.New("diagnostics reported")

func hasErrors(results []driver.CheckResult) bool {
	for i := range results {
		if results[i].Bag != nil && results[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

func displayPath(fs *source.FileSet, r *driver.CheckResult, fullPath bool) string {
	mode := "auto"
	if fullPath {
		mode = "absolute"
	}
	if file := fs.Get(r.FileID); file != nil {
		return file.FormatPath(mode, fs.BaseDir())
	}
	if fullPath {
		if abs, err := source.AbsolutePath(r.Path); err == nil {
			return abs
		}
	}
	return r.Path
}

func writeResults(out io.Writer, fs *source.FileSet, results []driver.CheckResult, f *checkFlags, args []string) error {
	pathMode := diagfmt.PathModeAuto
	if f.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch f.format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:     f.color,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: f.withNotes,
		}
		clean := 0
		for i := range results {
			r := &results[i]
			if r.Bag == nil || r.Bag.Len() == 0 {
				clean++
				continue
			}
			if !f.quiet && len(results) > 1 {
				fmt.Fprintf(out, "== %s ==\n", displayPath(fs, r, f.fullPath))
			}
			diagfmt.Pretty(out, r.Bag, fs, prettyOpts)
		}
		if !f.quiet {
			fmt.Fprintf(out, "%d document(s) checked, %d clean\n", len(results), clean)
		}
	case "short":
		for i := range results {
			if err := diagfmt.Short(out, results[i].Bag, fs, f.withNotes); err != nil {
				return fmt.Errorf("failed to write diagnostics: %w", err)
			}
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     f.withNotes,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for i := range results {
			r := &results[i]
			output[displayPath(fs, r, f.fullPath)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, jsonOpts)
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	case "sarif":
		all := diag.NewBag(0)
		for i := range results {
			all.Merge(results[i].Bag)
		}
		meta := diagfmt.SarifRunMeta{
			ToolName:       "mergelint",
			ToolVersion:    version.Current().Version,
			InvocationArgs: append([]string{"mergelint", "check"}, args...),
		}
		if err := diagfmt.Sarif(out, all, fs, meta); err != nil {
			return fmt.Errorf("failed to write SARIF: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", f.format)
	}
	return nil
}
