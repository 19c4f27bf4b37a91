// Package session accumulates graded answers into session scores.
package session

import (
	"slices"

	"github.com/verte-zerg/wortdrill/internal/model"
)

// Answer is the word/answer pair a verdict was produced for.
type Answer struct {
	WordGerman    string
	WordItalian   string
	UserAnswer    string
	CorrectAnswer string
}

// AnswerFor builds an Answer for word.
func AnswerFor(word model.Word, userAnswer, correctAnswer string) Answer {
	return Answer{
		WordGerman:    word.German(),
		WordItalian:   word.Italian(),
		UserAnswer:    userAnswer,
		CorrectAnswer: correctAnswer,
	}
}

// State holds the running counts of one session.
type State struct {
	Total   int
	Correct int
	Errors  []model.ErrorRecord
	// Credit is the live score: 1 per exact answer, 0.5 per near miss.
	Credit float64
}

// Record adds one verdict to s. Non-exact verdicts append an error record.
func Record(s *State, v model.Verdict, a Answer) {
	s.Total++
	s.Credit += v.Credit()
	if v.Exact() {
		s.Correct++
		return
	}
	s.Errors = append(s.Errors, model.ErrorRecord{
		WordGerman:    a.WordGerman,
		WordItalian:   a.WordItalian,
		UserAnswer:    a.UserAnswer,
		CorrectAnswer: a.CorrectAnswer,
		Penalty:       v.Penalty,
	})
}

// Penalties sums the penalties of every recorded error.
func (s State) Penalties() float64 {
	var sum float64
	for _, e := range s.Errors {
		sum += e.Penalty
	}
	return sum
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	s.Errors = slices.Clone(s.Errors)
	return s
}

// Summary is the end-of-session result.
type Summary struct {
	// Answered is false when no question was answered; the scores are then zero.
	Answered       bool
	Total          int
	Correct        int
	Errors         int
	EffectiveScore float64
	SuccessRate    float64
}

// Finalize computes the effective score and success rate of s.
func Finalize(s State) Summary {
	if s.Total == 0 {
		return Summary{}
	}
	effective := Score(s, ScoringDeduction)
	return Summary{
		Answered:       true,
		Total:          s.Total,
		Correct:        s.Correct,
		Errors:         len(s.Errors),
		EffectiveScore: effective,
		SuccessRate:    effective / float64(s.Total) * 100,
	}
}

// ScoringMode selects how a score is derived.
type ScoringMode int

const (
	// ScoringDeduction starts from the question count and subtracts penalties.
	ScoringDeduction ScoringMode = iota
	// ScoringCumulative starts from zero and adds the credit of each answer.
	ScoringCumulative
)

// Score returns the score of s under mode. Both modes agree once every
// answer has been recorded.
func Score(s State, mode ScoringMode) float64 {
	if mode == ScoringCumulative {
		return s.Credit
	}
	return float64(s.Total) - s.Penalties()
}

// ScoreVerdicts scores a verdict sequence directly.
func ScoreVerdicts(verdicts []model.Verdict, mode ScoringMode) float64 {
	var score float64
	if mode == ScoringDeduction {
		score = float64(len(verdicts))
	}
	for _, v := range verdicts {
		if mode == ScoringDeduction {
			score -= v.Penalty
		} else {
			score += v.Credit()
		}
	}
	return score
}
