package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/wortdrill/internal/model"
)

func played(ts ...time.Time) []model.GameRecord {
	out := make([]model.GameRecord, 0, len(ts))
	for _, t := range ts {
		out = append(out, model.GameRecord{PlayedAt: t, TotalQuestions: 10})
	}
	return out
}

func day(d, h int) time.Time {
	return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	games := []model.GameRecord{
		{TotalQuestions: 10, CorrectAnswers: 8, SuccessRate: 85},
		{TotalQuestions: 5, CorrectAnswers: 1, SuccessRate: 25},
	}
	o := Summarize(games)
	if o.Games != 2 || o.TotalQuestions != 15 || o.CorrectAnswers != 9 || o.AvgSuccess != 55 {
		t.Fatalf("unexpected overview: %+v", o)
	}
	if got := Summarize(nil); got != (Overview{}) {
		t.Fatalf("expected zero overview, got %+v", got)
	}
}

func TestBestGamePrefersEarliestOnTie(t *testing.T) {
	games := []model.GameRecord{
		{ID: 1, SuccessRate: 70},
		{ID: 2, SuccessRate: 90},
		{ID: 3, SuccessRate: 90},
	}
	best, ok := BestGame(games)
	if !ok || best.ID != 2 {
		t.Fatalf("expected game 2, got %+v", best)
	}
	if _, ok := BestGame(nil); ok {
		t.Fatalf("expected no best game")
	}
}

func TestWeekStartIsMonday(t *testing.T) {
	// 2024-03-10 is a Sunday.
	if got := WeekStart(day(10, 23)); !got.Equal(day(4, 0)) {
		t.Fatalf("expected 2024-03-04, got %v", got)
	}
	if got := WeekStart(day(11, 9)); !got.Equal(day(11, 0)) {
		t.Fatalf("expected 2024-03-11, got %v", got)
	}
}

func TestWeeklyProgressNewestFirst(t *testing.T) {
	games := []model.GameRecord{
		{PlayedAt: day(1, 10), SuccessRate: 40},
		{PlayedAt: day(5, 10), SuccessRate: 60},
		{PlayedAt: day(6, 10), SuccessRate: 80},
		{PlayedAt: day(12, 10), SuccessRate: 100},
	}
	weeks := WeeklyProgress(games, 2)
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	if !weeks[0].Start.Equal(day(11, 0)) || weeks[0].Games != 1 {
		t.Fatalf("unexpected newest week: %+v", weeks[0])
	}
	if !weeks[1].Start.Equal(day(4, 0)) || weeks[1].Games != 2 || weeks[1].AvgSuccess != 70 {
		t.Fatalf("unexpected second week: %+v", weeks[1])
	}
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name    string
		games   []model.GameRecord
		now     time.Time
		current int
		longest int
	}{
		{name: "none", now: day(10, 12)},
		{name: "today", games: played(day(10, 8), day(10, 9)), now: day(10, 12), current: 1, longest: 1},
		{name: "alive from yesterday", games: played(day(7, 8), day(8, 8), day(9, 8)), now: day(10, 12), current: 3, longest: 3},
		{name: "broken", games: played(day(1, 8), day(2, 8), day(3, 8), day(6, 8)), now: day(10, 12), current: 0, longest: 3},
		{name: "current shorter than longest", games: played(day(1, 8), day(2, 8), day(3, 8), day(9, 8), day(10, 8)), now: day(10, 12), current: 2, longest: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := Streaks(tt.games, tt.now)
			if current != tt.current || longest != tt.longest {
				t.Fatalf("expected %d/%d, got %d/%d", tt.current, tt.longest, current, longest)
			}
		})
	}
}

func TestGamesSince(t *testing.T) {
	now := day(10, 12)
	games := played(day(2, 12), day(3, 13), day(9, 8))
	if got := GamesSince(games, now.AddDate(0, 0, -7)); got != 2 {
		t.Fatalf("expected 2 games, got %d", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{10, 20, 30, 40}, 2)
	want := []float64{10, 15, 25, 35}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 50, 100}, 0); got != " +@" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{0, 50, 100}, 2); len(got) != 2 {
		t.Fatalf("expected width 2, got %q", got)
	}
	if got := Sparkline([]float64{5, 5}, 0); got != "++" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
}

func TestBar(t *testing.T) {
	if got := Bar(50, 10); got != "#####....." {
		t.Fatalf("unexpected bar: %q", got)
	}
	if got := Bar(150, 4); got != "####" {
		t.Fatalf("unexpected clamped bar: %q", got)
	}
}
