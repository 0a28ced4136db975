// Package main provides the CLI entrypoint for tuipass.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuipass/internal/config"
	"github.com/verte-zerg/tuipass/internal/generator"
	"github.com/verte-zerg/tuipass/internal/model"
	"github.com/verte-zerg/tuipass/internal/sink"
	"github.com/verte-zerg/tuipass/internal/stats"
	"github.com/verte-zerg/tuipass/internal/store"
	"github.com/verte-zerg/tuipass/internal/strength"
	"github.com/verte-zerg/tuipass/internal/tui"
)

const (
	defaultLength        = 16
	defaultSingleCount   = 1
	defaultBatchCount    = 10
	defaultSaveDir       = "."
	defaultHistoryLast   = 20
	defaultHistoryWindow = 5
)

var (
	genNumbers     bool
	genLetters     bool
	genSpecial     bool
	genBothCases   bool
	genLength      int
	genCount       int
	genCopy        bool
	genSave        bool
	genSaveDir     string
	genLegacyPools bool
	genHistory     bool

	historySince  string
	historyLast   int
	historyTier   string
	historyWindow int

	menuLength      int
	menuCount       int
	menuSaveDir     string
	menuLegacyPools bool
	menuHistory     bool

	savedDir string
)

var tierColors = map[string]lipgloss.Color{
	"green":  lipgloss.Color("#52C41A"),
	"yellow": lipgloss.Color("#FAAD14"),
	"red":    lipgloss.Color("#FF4D4F"),
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuipass",
		Short:         "TUI password generator",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runInteractiveCmd,
	}

	rootCmd.Flags().IntVar(&menuLength, "length", defaultLength, "default password length")
	rootCmd.Flags().IntVar(&menuCount, "count", defaultBatchCount, "default number of passwords in a batch")
	rootCmd.Flags().StringVar(&menuSaveDir, "save-dir", defaultSaveDir, "directory for saved password files")
	rootCmd.Flags().BoolVar(&menuLegacyPools, "legacy-pools", false, "use the legacy digit pool and mixed-case guaranteed letter")
	rootCmd.Flags().BoolVar(&menuHistory, "history", true, "record generation metadata in the history database")

	rootCmd.AddCommand(newGenCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newSavedCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runInteractiveCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "length", &menuLength, fileCfg.Generate.Length)
	applyIntConfig(cmd, "count", &menuCount, fileCfg.Generate.Count)
	applyStringConfig(cmd, "save-dir", &menuSaveDir, fileCfg.Generate.SaveDir)
	applyBoolConfig(cmd, "legacy-pools", &menuLegacyPools, fileCfg.Generate.LegacyPools)
	applyBoolConfig(cmd, "history", &menuHistory, fileCfg.Generate.History)

	cfg := model.Config{
		Selection:   model.FeatureSelection{Length: menuLength},
		Count:       menuCount,
		SaveDir:     menuSaveDir,
		LegacyPools: menuLegacyPools,
		History:     menuHistory,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	deps := tui.Deps{
		Generator: generator.New(generator.WithLegacyPools(cfg.LegacyPools)),
		Clipboard: sink.SystemClipboard{},
		SaveDir:   cfg.SaveDir,
	}
	if st := openHistory(cfg); st != nil {
		defer closeHistory(st)
		deps.Recorder = st
	}

	program := tea.NewProgram(tui.NewModel(deps, cfg))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate passwords without the interactive menu",
		Args:  cobra.NoArgs,
		RunE:  runGenCmd,
	}
	cmd.Flags().BoolVar(&genNumbers, "numbers", true, "include digits")
	cmd.Flags().BoolVar(&genLetters, "letters", true, "include letters")
	cmd.Flags().BoolVar(&genSpecial, "special", true, "include special characters")
	cmd.Flags().BoolVar(&genBothCases, "both-cases", true, "mix uppercase and lowercase letters")
	cmd.Flags().IntVar(&genLength, "length", defaultLength, "password length")
	cmd.Flags().IntVar(&genCount, "count", defaultSingleCount, "number of passwords")
	cmd.Flags().BoolVar(&genCopy, "copy", false, "copy the first password to the clipboard")
	cmd.Flags().BoolVar(&genSave, "save", false, "append the passwords to a save file")
	cmd.Flags().StringVar(&genSaveDir, "save-dir", defaultSaveDir, "directory for saved password files")
	cmd.Flags().BoolVar(&genLegacyPools, "legacy-pools", false, "use the legacy digit pool and mixed-case guaranteed letter")
	cmd.Flags().BoolVar(&genHistory, "history", true, "record generation metadata in the history database")
	return cmd
}

func runGenCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	gc := fileCfg.Generate
	applyBoolConfig(cmd, "numbers", &genNumbers, gc.Numbers)
	applyBoolConfig(cmd, "letters", &genLetters, gc.Letters)
	applyBoolConfig(cmd, "special", &genSpecial, gc.Special)
	applyBoolConfig(cmd, "both-cases", &genBothCases, gc.BothCases)
	applyIntConfig(cmd, "length", &genLength, gc.Length)
	applyStringConfig(cmd, "save-dir", &genSaveDir, gc.SaveDir)
	applyBoolConfig(cmd, "legacy-pools", &genLegacyPools, gc.LegacyPools)
	applyBoolConfig(cmd, "history", &genHistory, gc.History)

	cfg := model.Config{
		Selection: model.FeatureSelection{
			Numbers:   genNumbers,
			Letters:   genLetters,
			Special:   genSpecial,
			BothCases: genBothCases,
			Length:    genLength,
		},
		Count:       genCount,
		SaveDir:     genSaveDir,
		LegacyPools: genLegacyPools,
		History:     genHistory,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	gen := generator.New(generator.WithLegacyPools(cfg.LegacyPools))
	passwords, err := gen.GenerateMany(cfg.Count, cfg.Selection)
	if err != nil {
		if errors.Is(err, generator.ErrNoClassSelected) {
			return fmt.Errorf("%w: enable at least one of --numbers, --letters, --special", err)
		}
		return fmt.Errorf("failed to generate passwords: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, password := range passwords {
		if _, err := fmt.Fprintln(out, password); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if len(passwords) == 1 {
		if err := writeResult(cmd.ErrOrStderr(), strength.Evaluate(passwords[0])); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if genCopy {
		if err := (sink.SystemClipboard{}).WriteAll(passwords[0]); err != nil {
			logErrf("failed to copy password: %v\n", err)
		} else {
			logErrln("Password copied to clipboard!")
		}
	}
	if genSave {
		path := sink.SinglePath(cfg.SaveDir)
		if len(passwords) > 1 {
			path = sink.BatchPath(cfg.SaveDir, len(passwords))
		}
		if err := sink.AppendLines(path, passwords); err != nil {
			logErrf("failed to save passwords: %v\n", err)
		} else {
			logErrf("Password saved in %s!\n", path)
		}
	}

	if st := openHistory(cfg); st != nil {
		defer closeHistory(st)
		mode := model.ModeSingle
		if len(passwords) > 1 {
			mode = model.ModeBatch
		}
		records := model.NewGenerationRecords(cfg.Selection, mode, passwords, time.Now())
		if err := st.InsertGenerations(context.Background(), records); err != nil {
			logErrf("failed to record history: %v\n", err)
		}
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [password]",
		Short: "Evaluate password strength",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheckCmd,
	}
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		read, err := readPassword(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = read
	}
	if err := writeResult(cmd.OutOrStdout(), strength.Evaluate(password)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// readPassword reads without echo from a terminal, or one line from piped input.
func readPassword(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logErrf("Password: ")
		data, err := term.ReadPassword(int(f.Fd()))
		logErrln()
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func writeResult(w io.Writer, res strength.Result) error {
	label := lipgloss.NewStyle().Foreground(tierColors[res.Tier.Color()]).Bold(true).
		Render("Password strength: " + res.Tier.Label())
	if _, err := fmt.Fprintln(w, label); err != nil {
		return err
	}
	for _, rec := range res.Recommendations {
		if _, err := fmt.Fprintf(w, "  - %s\n", rec); err != nil {
			return err
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show generation history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N generations (0 = all)")
	cmd.Flags().StringVar(&historyTier, "tier", "", "tier filter (weak, medium, strong)")
	cmd.Flags().IntVar(&historyWindow, "window", defaultHistoryWindow, "moving average window for the score trend")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter := model.HistoryFilter{Last: historyLast}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	if historyTier != "" {
		tier, ok := strength.ParseTier(historyTier)
		if !ok {
			return fmt.Errorf("unknown tier %q (expected weak, medium or strong)", historyTier)
		}
		filter.Tier = tier.String()
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeHistory(st)

	report, err := stats.BuildReport(context.Background(), st, filter)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := stats.RenderReport(cmd.OutOrStdout(), report, historyWindow); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newSavedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved [file]",
		Short: "List passwords stored in a save file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSavedCmd,
	}
	cmd.Flags().StringVar(&savedDir, "save-dir", defaultSaveDir, "directory for saved password files")
	return cmd
}

func runSavedCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "save-dir", &savedDir, fileCfg.Generate.SaveDir)

	path := sink.SinglePath(savedDir)
	if len(args) == 1 {
		path = args[0]
	}
	lines, err := sink.ReadLines(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no saved passwords at %s", path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	out := cmd.OutOrStdout()
	for i, line := range lines {
		if _, err := fmt.Fprintf(out, "%3d  %s\n", i+1, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
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

// openHistory returns nil when history is disabled or unavailable.
func openHistory(cfg model.Config) *store.Store {
	if !cfg.History {
		return nil
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("history disabled: %v\n", err)
		return nil
	}
	return st
}

func closeHistory(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
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
	return fmt.Sprintf(`# tuipass configuration
# Uncomment a value to enable it. CLI flags override config values.

[generate]
# numbers = true          # Include digits (gen)
# letters = true          # Include letters (gen)
# special = true          # Include special characters (gen)
# both-cases = true       # Mix uppercase and lowercase letters (gen)
# length = %d             # Password length
# count = %d              # Default batch size in the interactive menu
# save-dir = %q          # Directory for saved password files
# legacy-pools = false    # Legacy digit pool and mixed-case guaranteed letter
# history = true          # Record generation metadata (never the passwords)
`,
		defaultLength,
		defaultBatchCount,
		defaultSaveDir,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Selection.Length < 0 {
		return fmt.Errorf("--length must be >= 0")
	}
	if cfg.Count <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	if cfg.SaveDir == "" {
		return fmt.Errorf("--save-dir must not be empty")
	}
	return nil
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
