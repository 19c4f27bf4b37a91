package model

import (
	"fmt"
	"strings"
)

// QuestionKind selects which field is asked and which grading policy applies.
type QuestionKind int

const (
	KindTranslation QuestionKind = iota
	KindReverseTranslation
	KindArticle
	KindConjugation
)

func (k QuestionKind) String() string {
	switch k {
	case KindTranslation:
		return "translation"
	case KindReverseTranslation:
		return "reverse"
	case KindArticle:
		return "article"
	case KindConjugation:
		return "conjugation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Label returns the Italian mode name stored with each game.
func (k QuestionKind) Label() string {
	switch k {
	case KindTranslation:
		return "Traduzione"
	case KindReverseTranslation:
		return "Traduzione inversa"
	case KindArticle:
		return "Articoli"
	case KindConjugation:
		return "Coniugazioni"
	default:
		return k.String()
	}
}

// ParseQuestionKind parses a mode flag value.
func ParseQuestionKind(s string) (QuestionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "translation", "traduzione":
		return KindTranslation, nil
	case "reverse", "reverse-translation", "inversa":
		return KindReverseTranslation, nil
	case "article", "articles", "articoli":
		return KindArticle, nil
	case "conjugation", "coniugazioni":
		return KindConjugation, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want translation, reverse, article or conjugation)", s)
	}
}

// Supports reports whether the kind can be asked for words of category c.
func (k QuestionKind) Supports(c Category) bool {
	switch k {
	case KindArticle:
		return c == CategoryNouns
	case KindConjugation:
		return c == CategoryVerbs
	default:
		return true
	}
}

// Outcome classifies a graded answer.
type Outcome int

const (
	OutcomeExact Outcome = iota
	OutcomeNearMissCapitalization
	OutcomeNearMissUmlaut
	OutcomeWrong
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExact:
		return "exact"
	case OutcomeNearMissCapitalization:
		return "near_miss_capitalization"
	case OutcomeNearMissUmlaut:
		return "near_miss_umlaut"
	case OutcomeWrong:
		return "wrong"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// NearMiss reports whether the outcome earns half credit.
func (o Outcome) NearMiss() bool {
	return o == OutcomeNearMissCapitalization || o == OutcomeNearMissUmlaut
}

// Feedback is a stable code the presentation layer turns into a message.
type Feedback string

const (
	FeedbackCorrect            Feedback = "correct"
	FeedbackCapitalization     Feedback = "capitalization"
	FeedbackNounCapitalization Feedback = "noun_capitalization"
	FeedbackUmlaut             Feedback = "umlaut"
	FeedbackWrong              Feedback = "wrong"
	FeedbackRevealed           Feedback = "revealed"
)

// Penalties.
const (
	PenaltyNone = 0.0
	PenaltyHalf = 0.5
	PenaltyFull = 1.0
)

// Verdict is the result of grading one answer.
type Verdict struct {
	Outcome  Outcome
	Penalty  float64
	Feedback Feedback
	// Expected is the canonical answer, kept for feedback rendering.
	Expected string
}

// Exact reports whether the answer was fully correct.
func (v Verdict) Exact() bool {
	return v.Outcome == OutcomeExact
}

// Credit is the score earned in cumulative mode.
func (v Verdict) Credit() float64 {
	return PenaltyFull - v.Penalty
}

// ErrorRecord describes one non-exact answer.
type ErrorRecord struct {
	WordGerman    string
	WordItalian   string
	UserAnswer    string
	CorrectAnswer string
	Penalty       float64
}

// RevealedAnswer is stored as the user answer when the solution was revealed.
const RevealedAnswer = "(revealed)"

// DifficultyMode selects how frequency tiers restrict a word list.
type DifficultyMode int

const (
	DifficultyCasual DifficultyMode = iota
	DifficultyCapped
	DifficultyFocus
)

func (m DifficultyMode) String() string {
	switch m {
	case DifficultyCasual:
		return "casual"
	case DifficultyCapped:
		return "capped"
	case DifficultyFocus:
		return "focus"
	default:
		return fmt.Sprintf("difficulty(%d)", int(m))
	}
}

// ParseDifficultyMode parses a difficulty flag value.
func ParseDifficultyMode(s string) (DifficultyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "casual", "all":
		return DifficultyCasual, nil
	case "capped", "cap", "max":
		return DifficultyCapped, nil
	case "focus", "exact", "only":
		return DifficultyFocus, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q (want casual, capped or focus)", s)
	}
}

// DifficultySelection pairs a mode with an optional level. Level 0 means unset.
type DifficultySelection struct {
	Mode  DifficultyMode
	Level int
}

func (s DifficultySelection) String() string {
	if s.Mode == DifficultyCasual || s.Level == 0 {
		return DifficultyCasual.String()
	}
	return fmt.Sprintf("%s %d", s.Mode, s.Level)
}

// ReviewSuffix marks the game type of review sessions.
const ReviewSuffix = " (review)"

// GameType is the label stored with each game, e.g. "Nomi - Traduzione".
// Review games match their category by substring.
func GameType(c Category, k QuestionKind, review bool) string {
	label := c.Label() + " - " + k.Label()
	if review {
		label += ReviewSuffix
	}
	return label
}
