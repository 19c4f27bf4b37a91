// Package main provides the CLI entrypoint for wortdrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wortdrill/internal/config"
	"github.com/verte-zerg/wortdrill/internal/generator"
	"github.com/verte-zerg/wortdrill/internal/model"
	"github.com/verte-zerg/wortdrill/internal/stats"
	"github.com/verte-zerg/wortdrill/internal/statsui"
	"github.com/verte-zerg/wortdrill/internal/store"
	"github.com/verte-zerg/wortdrill/internal/tui"
	"github.com/verte-zerg/wortdrill/internal/wordlist"
)

const (
	defaultCategory        = "nouns"
	defaultMode            = "translation"
	defaultQuestions       = 10
	defaultDifficulty      = "casual"
	defaultMinErrors       = 1
	defaultStrictMinErrors = 2
	defaultReviewLimit     = 20
	defaultHistoryLimit    = 20
	defaultExportFile      = "stats_export.txt"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)

var (
	practiceCategory   string
	practiceMode       string
	practiceQuestions  int
	practiceDifficulty string
	practiceLevel      int
	practiceDataDir    string
	practiceSeed       int64

	reviewMinErrors       int
	reviewStrictMinErrors int
	reviewLimit           int

	storeBackend string
	storePath    string
	logLevel     string
	logFormat    string

	statsPlain       bool
	statsCurveWindow int

	historyLimit int
	historyPage  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wortdrill",
		Short:         "German vocabulary drills for Italian speakers",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&storeBackend, "backend", store.BackendSQLite, "history backend")
	rootCmd.PersistentFlags().StringVar(&storePath, "db", "", "history database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", defaultLogFormat, "log format (text, json)")

	addPracticeFlags(rootCmd)
	rootCmd.Flags().IntVarP(&practiceQuestions, "questions", "n", defaultQuestions, "questions per session (0 = all)")
	rootCmd.Flags().StringVar(&practiceDifficulty, "difficulty", defaultDifficulty, "difficulty mode (casual, capped, focus)")
	rootCmd.Flags().IntVar(&practiceLevel, "level", 0, "frequency level 1-5 for capped/focus")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed (0 = time based)")

	rootCmd.AddCommand(newReviewCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&practiceCategory, "category", "c", defaultCategory, "word category (nouns, verbs, adjectives)")
	cmd.Flags().StringVarP(&practiceMode, "mode", "m", defaultMode, "question mode (translation, reverse, article, conjugation)")
	cmd.Flags().StringVar(&practiceDataDir, "data-dir", "", "directory with nomi.csv, verbi.csv and aggettivi.csv")
}

// settings is the resolved configuration after the file and flag overlay.
type settings struct {
	practice model.Config
	review   model.ReviewConfig
	store    store.Options
	log      logSettings
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "category", &practiceCategory, fileCfg.Practice.Category)
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyIntConfig(cmd, "questions", &practiceQuestions, fileCfg.Practice.Questions)
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, fileCfg.Practice.Difficulty)
	applyIntConfig(cmd, "level", &practiceLevel, fileCfg.Practice.Level)
	applyStringConfig(cmd, "data-dir", &practiceDataDir, fileCfg.Practice.DataDir)
	applyIntConfig(cmd, "min-errors", &reviewMinErrors, fileCfg.Review.MinErrors)
	applyIntConfig(cmd, "strict-min-errors", &reviewStrictMinErrors, fileCfg.Review.StrictMinErrors)
	applyIntConfig(cmd, "limit", &reviewLimit, fileCfg.Review.Limit)
	applyStringConfig(cmd, "backend", &storeBackend, fileCfg.Store.Backend)
	applyStringConfig(cmd, "db", &storePath, fileCfg.Store.Path)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)

	s := settings{
		review: model.ReviewConfig{
			MinErrors:       reviewMinErrors,
			StrictMinErrors: reviewStrictMinErrors,
			Limit:           reviewLimit,
		},
		store: store.Options{Backend: storeBackend, Path: storePath},
		log:   logSettings{Level: logLevel, Format: logFormat},
	}
	if s.store.Path == "" {
		s.store.Path = config.DefaultDBPath()
	}

	category, err := model.ParseCategory(practiceCategory)
	if err != nil {
		return settings{}, err
	}
	kind, err := model.ParseQuestionKind(practiceMode)
	if err != nil {
		return settings{}, err
	}
	difficulty, err := model.ParseDifficultyMode(practiceDifficulty)
	if err != nil {
		return settings{}, err
	}
	dataDir := practiceDataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	s.practice = model.Config{
		Category:   category,
		Kind:       kind,
		Questions:  practiceQuestions,
		Difficulty: model.DifficultySelection{Mode: difficulty, Level: practiceLevel},
		DataDir:    dataDir,
		Seed:       practiceSeed,
	}
	if err := validateConfig(s); err != nil {
		return settings{}, err
	}
	return s, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logs := newHeldWriter(os.Stderr)
	logger := newLogger(s.log, logs)

	repo := wordlist.NewRepository(s.practice.DataDir, logger)
	words := repo.Load(s.practice.Category)
	if len(words) == 0 {
		return wordListLoadError(repo, s.practice.Category)
	}
	words = wordlist.Filter(words, s.practice.Difficulty)
	if len(words) == 0 {
		return fmt.Errorf("%w: no %s at %s", model.ErrNoEligibleWords, s.practice.Category, s.practice.Difficulty)
	}

	questions, err := newGenerator(s.practice.Seed).Questions(words, s.practice.Kind, s.practice.Questions)
	if err != nil {
		return err
	}

	st, err := store.Open(s.store)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st, logger)

	gameType := model.GameType(s.practice.Category, s.practice.Kind, false)
	return runQuiz(logs, tui.Options{
		Questions: questions,
		GameType:  gameType,
		Mode:      s.practice.Difficulty.String(),
		Saver:     st,
		Logger:    logger.With("game_type", gameType),
	})
}

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review the words you miss most often",
		Args:  cobra.NoArgs,
		RunE:  runReviewCmd,
	}
	addPracticeFlags(cmd)
	cmd.Flags().IntVar(&reviewMinErrors, "min-errors", defaultMinErrors, "minimum recorded errors per word")
	cmd.Flags().IntVar(&reviewStrictMinErrors, "strict-min-errors", defaultStrictMinErrors, "threshold reported when nothing qualifies")
	cmd.Flags().IntVar(&reviewLimit, "limit", defaultReviewLimit, "maximum words per review (0 = all)")
	return cmd
}

// reviewSource is the part of the history store used by review selection.
type reviewSource interface {
	MostCommonErrorsByType(ctx context.Context, gameType string, minErrors int) ([]model.ErrorCount, error)
}

// selectReviewWords returns the review set for a category. When nothing
// qualifies it returns ErrNothingToReview and whether errors exist at the
// strict threshold.
func selectReviewWords(ctx context.Context, src reviewSource, words []model.Word, category model.Category, cfg model.ReviewConfig) ([]model.Word, bool, error) {
	counts, err := src.MostCommonErrorsByType(ctx, category.Label(), cfg.MinErrors)
	if err != nil {
		return nil, false, err
	}
	selected := stats.WordsToReview(words, stats.CountsByWord(counts), cfg.MinErrors, cfg.Limit)
	if len(selected) > 0 {
		return selected, false, nil
	}
	strict, err := src.MostCommonErrorsByType(ctx, category.Label(), cfg.StrictMinErrors)
	if err != nil {
		return nil, false, err
	}
	return nil, len(strict) > 0, model.ErrNothingToReview
}

func runReviewCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logs := newHeldWriter(os.Stderr)
	logger := newLogger(s.log, logs)

	repo := wordlist.NewRepository(s.practice.DataDir, logger)
	words := repo.Load(s.practice.Category)
	if len(words) == 0 {
		return wordListLoadError(repo, s.practice.Category)
	}

	st, err := store.Open(s.store)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st, logger)

	selected, strict, err := selectReviewWords(cmd.Context(), st, words, s.practice.Category, s.review)
	if errors.Is(err, model.ErrNothingToReview) {
		return printNothingToReview(cmd.OutOrStdout(), strict, s.review.StrictMinErrors)
	}
	if err != nil {
		return err
	}

	questions, err := newGenerator(0).Questions(selected, s.practice.Kind, 0)
	if err != nil {
		return err
	}
	gameType := model.GameType(s.practice.Category, s.practice.Kind, true)
	logger.Info("review selected", "category", string(s.practice.Category), "words", len(questions))
	return runQuiz(logs, tui.Options{
		Questions: questions,
		GameType:  gameType,
		Mode:      fmt.Sprintf("review %d", s.review.MinErrors),
		Saver:     st,
		Logger:    logger.With("game_type", gameType),
	})
}

func printNothingToReview(w io.Writer, strict bool, threshold int) error {
	var lines []string
	if strict {
		lines = []string{
			"Hai errori registrati, ma nessuna parola della lista attuale li raggiunge.",
			fmt.Sprintf("(Soglia: almeno %d errori per parola)", threshold),
			"Gioca altre partite per accumulare errori ripetuti.",
		}
	} else {
		lines = []string{
			"Complimenti! Non hai errori da ripassare.",
			"Gioca una partita normale per accumulare dati.",
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runQuiz(logs *heldWriter, opts tui.Options) error {
	logs.Hold()
	m := tui.NewModel(opts)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	logs.Release()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if summary, ok := m.Summary(); ok && summary.Answered {
		fmt.Printf("Risposte corrette: %d/%d · successo %.1f%%\n", summary.Correct, summary.Total, summary.SuccessRate)
	}
	if serr := m.SaveErr(); serr != nil {
		return fmt.Errorf("game not saved: %w", serr)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the statistics dashboard",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print plain text instead of the dashboard")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", stats.DefaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	logger, st, err := openForReading(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	cfg := model.StatsConfig{CurveWindow: statsCurveWindow, HardestLimit: stats.DefaultHardestLimit}
	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := stats.BuildReport(cmd.Context(), st, cfg, time.Now())
		if err != nil {
			return err
		}
		return stats.RenderDashboard(cmd.OutOrStdout(), report, terminalWidth())
	}
	program := tea.NewProgram(statsui.NewModel(st, cfg, time.Now), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past games",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryLimit, "games per page")
	cmd.Flags().IntVar(&historyPage, "page", 1, "page number")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLimit <= 0 {
		return fmt.Errorf("--limit must be > 0")
	}
	if historyPage <= 0 {
		return fmt.Errorf("--page must be > 0")
	}
	logger, st, err := openForReading(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	games, err := st.GameHistory(cmd.Context(), historyLimit, (historyPage-1)*historyLimit)
	if err != nil {
		return err
	}
	return stats.RenderHistory(cmd.OutOrStdout(), games)
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export statistics to a text file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportCmd,
	}
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	path := defaultExportFile
	if len(args) == 1 {
		path = args[0]
	}
	logger, st, err := openForReading(cmd)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	report, err := stats.BuildReport(cmd.Context(), st, model.StatsConfig{HardestLimit: stats.ExportHardestLimit}, time.Now())
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}
	if err := stats.RenderExport(f, report); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Statistiche esportate in '%s'\n", path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLevelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Show how many words each frequency level holds",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
	cmd.Flags().StringVar(&practiceDataDir, "data-dir", "", "directory with the word lists")
	return cmd
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(s.log, os.Stderr)
	repo := wordlist.NewRepository(s.practice.DataDir, logger)
	histograms := map[model.Category]map[int]int{}
	for _, c := range model.Categories {
		words := repo.Load(c)
		if len(words) == 0 {
			continue
		}
		histograms[c] = wordlist.Histogram(words)
	}
	return stats.RenderLevels(cmd.OutOrStdout(), histograms)
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

func openForReading(cmd *cobra.Command) (*slog.Logger, *store.Store, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(s.log, os.Stderr)
	st, err := store.Open(s.store)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return logger, st, nil
}

func closeStore(st *store.Store, logger *slog.Logger) {
	if err := st.Close(); err != nil {
		logger.Warn("failed to close db", "err", err)
	}
}

func newGenerator(seed int64) *generator.Generator {
	if seed != 0 {
		return generator.NewSeeded(seed)
	}
	return generator.New()
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wortdrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# category = %q       # nouns, verbs or adjectives
# mode = %q        # translation, reverse, article or conjugation
# questions = %d             # Questions per session (0 = all)
# difficulty = %q       # casual, capped or focus
# level = 1                  # Frequency level 1-5 for capped/focus
# data-dir = %q

[review]
# min-errors = %d             # Minimum recorded errors per word
# strict-min-errors = %d      # Threshold reported when nothing qualifies
# limit = %d                 # Maximum words per review (0 = all)

[store]
# backend = %q
# path = %q

[log]
# level = %q              # debug, info, warn or error
# format = %q             # text or json
`,
		defaultCategory,
		defaultMode,
		defaultQuestions,
		defaultDifficulty,
		config.DefaultDataDir(),
		defaultMinErrors,
		defaultStrictMinErrors,
		defaultReviewLimit,
		store.BackendSQLite,
		config.DefaultDBPath(),
		defaultLogLevel,
		defaultLogFormat,
	)
}

func validateConfig(s settings) error {
	cfg := s.practice
	if cfg.Questions < 0 {
		return fmt.Errorf("--questions must be >= 0")
	}
	if !cfg.Kind.Supports(cfg.Category) {
		return fmt.Errorf("mode %s is not available for %s", cfg.Kind, cfg.Category)
	}
	if cfg.Difficulty.Level != 0 && !model.ValidFrequency(cfg.Difficulty.Level) {
		return fmt.Errorf("--level must be between %d and %d", model.MinFrequency, model.MaxFrequency)
	}
	if cfg.Difficulty.Mode != model.DifficultyCasual && cfg.Difficulty.Level == 0 {
		return fmt.Errorf("--level is required for %s difficulty", cfg.Difficulty.Mode)
	}
	if s.review.MinErrors < 1 {
		return fmt.Errorf("--min-errors must be >= 1")
	}
	if s.review.StrictMinErrors < 1 {
		return fmt.Errorf("--strict-min-errors must be >= 1")
	}
	if s.review.Limit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	return nil
}

func wordListLoadError(repo *wordlist.Repository, c model.Category) error {
	lines := []string{
		fmt.Sprintf("%v: no %s found", model.ErrDataUnavailable, c),
		fmt.Sprintf("expected word list at: %s", repo.Path(c)),
		"Set [practice].data-dir in the config or pass --data-dir",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
