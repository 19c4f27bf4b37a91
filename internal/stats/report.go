package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/wortdrill/internal/model"
)

// Default dashboard sizes.
const (
	DefaultHardestLimit = 10
	ExportHardestLimit  = 20
	DefaultWeeks        = 4
	DefaultCurveWindow  = 5
)

// Source is the read side of the history store used by reports.
type Source interface {
	ListGames(ctx context.Context, since *time.Time) ([]model.GameRecord, error)
	StatsByType(ctx context.Context, gameType string) (model.TypeStats, bool, error)
	MostCommonErrors(ctx context.Context, limit int) ([]model.ErrorCount, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	GeneratedAt   time.Time
	Games         []model.GameRecord
	Overview      Overview
	Best          model.GameRecord
	HasBest       bool
	Weeks         []WeekProgress
	Categories    []model.TypeStats
	Hardest       []model.ErrorCount
	CurrentStreak int
	LongestStreak int
	GamesThisWeek int
	Curve         []float64
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig, now time.Time) (Report, error) {
	cfg = withDefaults(cfg)
	games, err := src.ListGames(ctx, nil)
	if err != nil {
		return Report{}, err
	}

	var categories []model.TypeStats
	for _, c := range model.Categories {
		st, ok, err := src.StatsByType(ctx, c.Label())
		if err != nil {
			return Report{}, err
		}
		if ok {
			categories = append(categories, st)
		}
	}

	hardest, err := src.MostCommonErrors(ctx, cfg.HardestLimit)
	if err != nil {
		return Report{}, err
	}

	best, hasBest := BestGame(games)
	current, longest := Streaks(games, now)
	return Report{
		GeneratedAt:   now,
		Games:         games,
		Overview:      Summarize(games),
		Best:          best,
		HasBest:       hasBest,
		Weeks:         WeeklyProgress(games, cfg.Weeks),
		Categories:    categories,
		Hardest:       hardest,
		CurrentStreak: current,
		LongestStreak: longest,
		GamesThisWeek: GamesSince(games, now.AddDate(0, 0, -7)),
		Curve:         SuccessCurve(games, cfg.CurveWindow),
	}, nil
}

func withDefaults(cfg model.StatsConfig) model.StatsConfig {
	if cfg.HardestLimit <= 0 {
		cfg.HardestLimit = DefaultHardestLimit
	}
	if cfg.Weeks <= 0 {
		cfg.Weeks = DefaultWeeks
	}
	if cfg.CurveWindow <= 0 {
		cfg.CurveWindow = DefaultCurveWindow
	}
	return cfg
}
