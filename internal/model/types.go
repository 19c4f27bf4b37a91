package model

import "time"

// Config defines practice settings.
type Config struct {
	Category   Category
	Kind       QuestionKind
	Questions  int
	Difficulty DifficultySelection
	DataDir    string
	Seed       int64
}

// ReviewConfig defines thresholds for review sessions.
type ReviewConfig struct {
	MinErrors       int
	StrictMinErrors int
	Limit           int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	HardestLimit int
	CurveWindow  int
	Weeks        int
}

// GameRecord is one persisted session.
type GameRecord struct {
	ID             int64
	PlayedAt       time.Time
	GameType       string
	Mode           string
	TotalQuestions int
	CorrectAnswers int
	SuccessRate    float64
	Errors         []ErrorRecord
}

// ErrorCount aggregates historical errors for one word.
type ErrorCount struct {
	German  string
	Italian string
	Count   int
}

// TypeStats aggregates games whose type matches a category.
type TypeStats struct {
	GameType       string
	Games          int
	AvgSuccess     float64
	TotalQuestions int
}
