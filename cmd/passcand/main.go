// Package main provides the CLI entrypoint for passcand.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/passcand/internal/config"
	"github.com/verte-zerg/passcand/internal/generator"
	"github.com/verte-zerg/passcand/internal/model"
	"github.com/verte-zerg/passcand/internal/report"
	"github.com/verte-zerg/passcand/internal/resultsui"
	"github.com/verte-zerg/passcand/internal/stats"
	"github.com/verte-zerg/passcand/internal/store"
	"github.com/verte-zerg/passcand/internal/tui"
	"github.com/verte-zerg/passcand/internal/wordlist"
)

const (
	defaultSamples      = 10
	defaultHistoryLimit = 20
)

var personalFlags = []string{"name", "dob", "place", "person", "date", "word", "words-file"}

var (
	genName        string
	genDOB         string
	genPlace       string
	genPerson      string
	genDates       []string
	genWords       []string
	genWordsFile   string
	genASCIIOnly   bool
	genMaxParts    int
	genPerCategory int
	genLeet        bool
	genSymbols     bool
	genSeed        int64
	genSamples     int
	genOut         string
	genFormat      string
	genBrowse      bool
	genStore       bool
	genLabel       string
	genInteractive bool
	genCrosscheck  bool

	historyLimit int

	exportRun        int64
	exportFormat     string
	exportOut        string
	exportCrosscheck bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "passcand",
		Short: "Generate password candidates from personal information",
		Long: `Generate password candidates from personal information, grouped by strength.

Intended for authorized security audits. Passwords built from personal
information are weak; prefer long random passwords and a password manager.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runGenerateCmd,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&genName, "name", "", "full name")
	flags.StringVar(&genDOB, "dob", "", "date of birth (YYYY-MM-DD or any format)")
	flags.StringVar(&genPlace, "place", "", "favorite place")
	flags.StringVar(&genPerson, "person", "", "favorite person/pet/hero")
	flags.StringArrayVar(&genDates, "date", nil, "important date (repeatable)")
	flags.StringArrayVar(&genWords, "word", nil, "extra word (repeatable)")
	flags.StringVar(&genWordsFile, "words-file", "", "file with extra words, one per line")
	flags.BoolVar(&genASCIIOnly, "ascii-only", false, "drop non-ASCII words from --words-file")
	flags.IntVar(&genMaxParts, "max-parts", tui.DefaultMaxParts, "max parts to combine (1-4)")
	flags.IntVar(&genPerCategory, "per-category", tui.DefaultPerCategory,
		fmt.Sprintf("passwords per strength category (%d-%d)", tui.MinPerCategory, tui.MaxPerCategory))
	flags.BoolVar(&genLeet, "leet", true, "use leet substitutions")
	flags.BoolVar(&genSymbols, "symbols", true, "include symbol affixes")
	flags.Int64Var(&genSeed, "seed", 0, "random seed for reproducible fallback filling")
	flags.IntVar(&genSamples, "samples", defaultSamples, "passwords shown per category")
	flags.StringVarP(&genOut, "out", "o", "", "save all passwords to this file")
	flags.StringVar(&genFormat, "format", "", "output file format: "+strings.Join(report.Formats, ", ")+" (default: from extension)")
	flags.BoolVar(&genBrowse, "browse", false, "open the results browser")
	flags.BoolVar(&genStore, "store", true, "record the run in the history database")
	flags.StringVar(&genLabel, "label", "", "label stored with the run")
	flags.BoolVarP(&genInteractive, "interactive", "i", false, "always use the input form")
	flags.BoolVar(&genCrosscheck, "crosscheck", true, "score candidates with zxcvbn for the browser and reports")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "max-parts", &genMaxParts, fileCfg.Generate.MaxParts)
	applyIntConfig(cmd, "per-category", &genPerCategory, fileCfg.Generate.PerCategory)
	applyBoolConfig(cmd, "leet", &genLeet, fileCfg.Generate.Leet)
	applyBoolConfig(cmd, "symbols", &genSymbols, fileCfg.Generate.Symbols)
	applyIntConfig(cmd, "samples", &genSamples, fileCfg.Generate.Samples)
	applyStringConfig(cmd, "format", &genFormat, fileCfg.Generate.Format)
	applyBoolConfig(cmd, "browse", &genBrowse, fileCfg.Generate.Browse)
	applyBoolConfig(cmd, "store", &genStore, fileCfg.Generate.Store)

	if genSamples < 0 {
		return fmt.Errorf("--samples must be >= 0")
	}
	format, err := resolveFormat(genFormat, genOut)
	if err != nil {
		return err
	}

	extra, err := loadExtraWords(genWords, genWordsFile, genASCIIOnly)
	if err != nil {
		return err
	}
	opts := model.Options{
		FullName:       genName,
		DOB:            genDOB,
		FavPlace:       genPlace,
		FavPerson:      genPerson,
		ImportantDates: genDates,
		ExtraWords:     extra,
		MaxParts:       clampFlag("max-parts", genMaxParts, generator.MinParts, generator.MaxParts),
		PerCategory:    clampFlag("per-category", genPerCategory, tui.MinPerCategory, tui.MaxPerCategory),
		Leet:           genLeet,
		Symbols:        genSymbols,
	}

	if genInteractive || (!hasPersonalFlags(cmd) && term.IsTerminal(int(os.Stdin.Fd()))) {
		formOpts, ok, err := runForm(opts)
		if err != nil {
			return err
		}
		if !ok {
			logErrln("Cancelled.")
			return nil
		}
		opts = formOpts
	}

	gen := generator.New()
	if cmd.Flags().Changed("seed") {
		gen = generator.NewWithSeed(genSeed)
	}

	logErrf("\nGenerating %d passwords per strength category...\n", opts.PerCategory)
	start := time.Now()
	res := gen.Generate(opts)
	logErrf("Generated %d candidates in %s\n", res.Total(), time.Since(start).Round(time.Millisecond))

	out := cmd.OutOrStdout()
	if err := stats.RenderResults(out, res, genSamples); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSummary(out, res); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if res.Empty() {
		return nil
	}

	createdAt := time.Now()
	if genStore {
		if err := storeRun(cmd.Context(), createdAt, genLabel, opts, res); err != nil {
			return err
		}
	}

	var scores map[string]int
	if genCrosscheck && (genBrowse || needsScores(format, genOut)) {
		logErrln("Scoring candidates with zxcvbn...")
		scores = stats.Crosscheck(res, generator.Tokens(opts))
	}

	if genOut != "" {
		rep := &report.Report{Label: genLabel, GeneratedAt: createdAt, Result: res, Scores: scores}
		if err := report.Save(genOut, format, rep); err != nil {
			return fmt.Errorf("failed to save passwords: %w", err)
		}
		logErrf("Saved %d passwords to %s\n", res.Total(), genOut)
	}

	if genBrowse {
		return runBrowser(res, scores, genLabel)
	}
	return nil
}

func runForm(defaults model.Options) (model.Options, bool, error) {
	form := tui.NewModel(defaults)
	program := tea.NewProgram(form, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return model.Options{}, false, fmt.Errorf("failed to run input form: %w", err)
	}
	opts, ok := form.Options()
	return opts, ok, nil
}

func runBrowser(res model.Result, scores map[string]int, title string) error {
	browser := resultsui.NewModel(res, scores, title)
	program := tea.NewProgram(browser, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run results browser: %w", err)
	}
	return nil
}

func storeRun(ctx context.Context, createdAt time.Time, label string, opts model.Options, res model.Result) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	id, err := st.InsertRun(ctx, createdAt, label, opts, res)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	logErrf("Saved run %d (export with: passcand export --run %d)\n", id, id)
	return nil
}

func loadExtraWords(words []string, path string, asciiOnly bool) ([]string, error) {
	out := append([]string(nil), words...)
	if path == "" {
		return out, nil
	}
	fromFile, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load words file: %w", err)
	}
	filters := []wordlist.FilterFunc{wordlist.MaxRunes(generator.MaxLength)}
	if asciiOnly {
		filters = append(filters, wordlist.PrintableASCII)
	}
	kept := wordlist.Filter(fromFile, filters...)
	if dropped := len(fromFile) - len(kept); dropped > 0 {
		logErrf("Skipped %d words from %s\n", dropped, path)
	}
	return append(out, kept...), nil
}

func hasPersonalFlags(cmd *cobra.Command) bool {
	for _, name := range personalFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func clampFlag(name string, value, lo, hi int) int {
	clamped := max(lo, min(hi, value))
	if clamped != value {
		logErrf("--%s %d out of range, using %d\n", name, value, clamped)
	}
	return clamped
}

func resolveFormat(format, out string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return report.FormatForPath(out), nil
	}
	if _, err := report.NewWriter(format, io.Discard); err != nil {
		return "", err
	}
	return format, nil
}

func needsScores(format, out string) bool {
	if out == "" {
		return false
	}
	switch format {
	case report.FormatMarkdown, "md", report.FormatJSON:
		return true
	default:
		return false
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryLimit, "number of runs to show (0 for all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if err := stats.RenderHistory(cmd.OutOrStdout(), runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored run",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().Int64Var(&exportRun, "run", 0, "run ID (see passcand history)")
	cmd.Flags().StringVar(&exportFormat, "format", "", "output format: "+strings.Join(report.Formats, ", ")+" (default: from extension, text on stdout)")
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&exportCrosscheck, "crosscheck", true, "include zxcvbn scores in markdown and json output")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	if exportRun <= 0 {
		return fmt.Errorf("--run must be a run ID (see passcand history)")
	}
	format, err := resolveFormat(exportFormat, exportOut)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	run, res, err := st.LoadRun(cmd.Context(), exportRun)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", exportRun, err)
	}
	rep := &report.Report{Label: run.Label, GeneratedAt: run.CreatedAt, Result: res}
	if exportCrosscheck && (format == report.FormatMarkdown || format == "md" || format == report.FormatJSON) {
		rep.Scores = stats.Crosscheck(res, nil)
	}

	if exportOut == "" {
		writer, err := report.NewWriter(format, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if _, err := writer.Write(rep); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := report.Save(exportOut, format, rep); err != nil {
		return fmt.Errorf("failed to export run %d: %w", exportRun, err)
	}
	logErrf("Exported run %d to %s\n", exportRun, exportOut)
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# passcand configuration
# Uncomment a value to enable it. CLI flags override config values.

[generate]
# max-parts = %d          # Max parts to combine (1-4)
# per-category = %d     # Passwords per strength category (%d-%d)
# leet = true             # Use leet substitutions
# symbols = true          # Include symbol affixes
# samples = %d           # Passwords shown per category
# format = "text"         # Output file format: %s
# browse = false          # Open the results browser after generating
# store = true            # Record runs in the history database
`,
		tui.DefaultMaxParts,
		tui.DefaultPerCategory,
		tui.MinPerCategory,
		tui.MaxPerCategory,
		defaultSamples,
		strings.Join(report.Formats, ", "),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
