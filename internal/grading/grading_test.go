package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/wortdrill/internal/model"
	"github.com/verte-zerg/wortdrill/internal/normalize"
)

func TestGradeTranslation(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		correct  string
		outcome  model.Outcome
		penalty  float64
		feedback model.Feedback
	}{
		{"exact", "Hund", "Hund", model.OutcomeExact, 0.0, model.FeedbackCorrect},
		{"trimmed", "  Hund ", "Hund", model.OutcomeExact, 0.0, model.FeedbackCorrect},
		{"lowercased noun", "haus", "Haus", model.OutcomeWrong, 1.0, model.FeedbackNounCapitalization},
		{"uppercased word", "Schnell", "schnell", model.OutcomeNearMissCapitalization, 0.5, model.FeedbackCapitalization},
		{"inner case", "HAus", "Haus", model.OutcomeNearMissCapitalization, 0.5, model.FeedbackCapitalization},
		{"missing umlaut", "Madchen", "Mädchen", model.OutcomeNearMissUmlaut, 0.5, model.FeedbackUmlaut},
		{"eszett as ss", "Strasse", "Straße", model.OutcomeNearMissUmlaut, 0.5, model.FeedbackUmlaut},
		{"ascii digraph", "Maedchen", "Mädchen", model.OutcomeNearMissUmlaut, 0.5, model.FeedbackUmlaut},
		{"ascii digraph lowercased", "maedchen", "Mädchen", model.OutcomeWrong, 1.0, model.FeedbackNounCapitalization},
		{"decomposed umlaut", "Mu\u0308ll", "Müll", model.OutcomeExact, 0.0, model.FeedbackCorrect},
		{"unrelated", "Pfert", "Pferd", model.OutcomeWrong, 1.0, model.FeedbackWrong},
		{"empty", "", "Haus", model.OutcomeWrong, 1.0, model.FeedbackWrong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := Grade(model.KindTranslation, tc.answer, tc.correct)
			assert.Equal(t, tc.outcome, v.Outcome)
			assert.Equal(t, tc.penalty, v.Penalty)
			assert.Equal(t, tc.feedback, v.Feedback)
			assert.Equal(t, strings.TrimSpace(tc.correct), v.Expected)
		})
	}
}

func TestGradeReverseTranslationIsLenientOnCase(t *testing.T) {
	v := Grade(model.KindReverseTranslation, "casa", "Casa")
	assert.Equal(t, model.OutcomeNearMissCapitalization, v.Outcome)
	assert.Equal(t, 0.5, v.Penalty)

	v = Grade(model.KindReverseTranslation, "cane", "cane")
	assert.Equal(t, model.OutcomeExact, v.Outcome)

	v = Grade(model.KindReverseTranslation, "gatto", "cane")
	assert.Equal(t, model.OutcomeWrong, v.Outcome)
	assert.Equal(t, 1.0, v.Penalty)
}

func TestGradeUmlautNearMissSymmetry(t *testing.T) {
	for _, correct := range []string{"Mädchen", "Übung", "schön", "Fuß", "Brötchen", "müde", "Äpfel"} {
		answer := normalize.UmlautFold(correct)
		for _, kind := range []model.QuestionKind{model.KindTranslation, model.KindReverseTranslation} {
			v := Grade(kind, answer, correct)
			assert.Equal(t, model.OutcomeNearMissUmlaut, v.Outcome, "%s vs %s", answer, correct)
			assert.Equal(t, 0.5, v.Penalty)
		}
	}
}

func TestGradeArticleHasNoPartialCredit(t *testing.T) {
	assert.Equal(t, model.OutcomeExact, Grade(model.KindArticle, "der", "der").Outcome)
	assert.Equal(t, model.OutcomeExact, Grade(model.KindArticle, " DER ", "der").Outcome)
	for _, answer := range []string{"die", "das", "", "de", "dër"} {
		v := Grade(model.KindArticle, answer, "der")
		assert.Equal(t, model.OutcomeWrong, v.Outcome, answer)
		assert.Equal(t, 1.0, v.Penalty, answer)
	}
}

func TestGradeConjugationIsExact(t *testing.T) {
	assert.Equal(t, model.OutcomeExact, Grade(model.KindConjugation, "ging", "ging").Outcome)
	for _, answer := range []string{"Ging", "gieng", "gegangen", ""} {
		v := Grade(model.KindConjugation, answer, "ging")
		assert.Equal(t, model.OutcomeWrong, v.Outcome, answer)
		assert.Equal(t, 1.0, v.Penalty, answer)
	}
}

func TestReveal(t *testing.T) {
	v := Reveal("Katze")
	assert.Equal(t, model.OutcomeWrong, v.Outcome)
	assert.Equal(t, 1.0, v.Penalty)
	assert.Equal(t, model.FeedbackRevealed, v.Feedback)
	assert.Contains(t, Message(v), "Katze")
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Corretto!", Message(Grade(model.KindTranslation, "Hund", "Hund")))
	assert.Contains(t, Message(Grade(model.KindTranslation, "haus", "Haus")), "maiuscola")
	assert.Contains(t, Message(Grade(model.KindTranslation, "Madchen", "Mädchen")), "umlaut")
	assert.Equal(t, "Sbagliato! Risposta corretta: Pferd", Message(Grade(model.KindTranslation, "Pfert", "Pferd")))
	assert.Equal(t, "mezzo errore", PenaltyLabel(0.5))
	assert.Equal(t, "errore completo", PenaltyLabel(1.0))
}
