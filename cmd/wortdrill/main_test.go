package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/wortdrill/internal/config"
	"github.com/verte-zerg/wortdrill/internal/model"
)

type fakeReviewSource map[int][]model.ErrorCount

func (f fakeReviewSource) MostCommonErrorsByType(_ context.Context, _ string, minErrors int) ([]model.ErrorCount, error) {
	return f[minErrors], nil
}

func reviewWords() []model.Word {
	return []model.Word{
		model.Noun{Lemma: model.Lemma{Text: "Haus", Translation: "casa", Tier: 1}, Article: model.ArticleDas},
		model.Noun{Lemma: model.Lemma{Text: "Tisch", Translation: "tavolo", Tier: 1}, Article: model.ArticleDer},
	}
}

func TestSelectReviewWords(t *testing.T) {
	src := fakeReviewSource{
		2: {{German: "Haus", Italian: "casa", Count: 3}},
	}
	cfg := model.ReviewConfig{MinErrors: 2, StrictMinErrors: 2, Limit: 20}
	words, _, err := selectReviewWords(context.Background(), src, reviewWords(), model.CategoryNouns, cfg)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(words) != 1 || words[0].German() != "Haus" {
		t.Fatalf("unexpected selection: %v", words)
	}
}

func TestSelectReviewWordsNothingToReview(t *testing.T) {
	src := fakeReviewSource{
		1: {{German: "Gespenst", Italian: "fantasma", Count: 4}},
		2: {{German: "Gespenst", Italian: "fantasma", Count: 4}},
	}
	cfg := model.ReviewConfig{MinErrors: 1, StrictMinErrors: 2}
	_, strict, err := selectReviewWords(context.Background(), src, reviewWords(), model.CategoryNouns, cfg)
	if !errors.Is(err, model.ErrNothingToReview) {
		t.Fatalf("expected ErrNothingToReview, got %v", err)
	}
	if !strict {
		t.Fatalf("expected errors at the strict threshold")
	}

	_, strict, err = selectReviewWords(context.Background(), fakeReviewSource{}, reviewWords(), model.CategoryNouns, cfg)
	if !errors.Is(err, model.ErrNothingToReview) || strict {
		t.Fatalf("expected no errors at all, got strict=%v err=%v", strict, err)
	}
}

func TestPrintNothingToReview(t *testing.T) {
	var buf bytes.Buffer
	if err := printNothingToReview(&buf, true, 2); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "almeno 2 errori") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestValidateConfig(t *testing.T) {
	valid := settings{
		practice: model.Config{Category: model.CategoryNouns, Kind: model.KindArticle, Questions: 10},
		review:   model.ReviewConfig{MinErrors: 1, StrictMinErrors: 2, Limit: 20},
	}
	if err := validateConfig(valid); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*settings)
	}{
		{"negative questions", func(s *settings) { s.practice.Questions = -1 }},
		{"article for verbs", func(s *settings) { s.practice.Category = model.CategoryVerbs }},
		{"level out of range", func(s *settings) {
			s.practice.Difficulty = model.DifficultySelection{Mode: model.DifficultyCapped, Level: 6}
		}},
		{"focus without level", func(s *settings) {
			s.practice.Difficulty = model.DifficultySelection{Mode: model.DifficultyFocus}
		}},
		{"zero min errors", func(s *settings) { s.review.MinErrors = 0 }},
		{"negative limit", func(s *settings) { s.review.Limit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := validateConfig(s); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(logSettings{Level: "info", Format: "json"}, &buf)
	logger.Debug("hidden")
	logger.Warn("word list unavailable", "path", "nomi.csv")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"path":"nomi.csv"`) {
		t.Fatalf("expected structured attribute: %s", out)
	}
}

func TestHeldWriterBuffersUntilRelease(t *testing.T) {
	var out bytes.Buffer
	w := newHeldWriter(&out)
	w.Hold()
	if _, err := w.Write([]byte("late\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected output to be held")
	}
	w.Release()
	if out.String() != "late\n" {
		t.Fatalf("unexpected released output: %q", out.String())
	}
	if _, err := w.Write([]byte("now\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if out.String() != "late\nnow\n" {
		t.Fatalf("expected direct write after release: %q", out.String())
	}
}

func TestDefaultConfigTemplateKeysAreKnown(t *testing.T) {
	lines := strings.Split(defaultConfigTemplate(), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			lines[i] = strings.TrimPrefix(line, "# ")
		}
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load uncommented template: %v", err)
	}
	if cfg.Practice.Category == nil || *cfg.Practice.Category != defaultCategory {
		t.Fatalf("unexpected category: %v", cfg.Practice.Category)
	}
	if cfg.Store.Backend == nil || *cfg.Store.Backend != "sqlite" {
		t.Fatalf("unexpected backend: %v", cfg.Store.Backend)
	}
}
