// Package grading classifies learner answers into verdicts.
package grading

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/wortdrill/internal/model"
	"github.com/verte-zerg/wortdrill/internal/normalize"
)

// Grade compares answer against correct under the policy of kind.
//
// Translation and reverse translation accept near misses: a case-only
// difference or a spelling that differs only in umlauts/ß (or their ASCII
// digraphs) costs half a point. For translation into German, writing a
// capitalized answer in lower case costs a full point. Articles are compared
// case-insensitively and conjugations exactly, both without partial credit.
// Empty answers are graded like any other mismatch.
func Grade(kind model.QuestionKind, answer, correct string) model.Verdict {
	answer = normalize.Clean(answer)
	correct = normalize.Clean(correct)

	switch kind {
	case model.KindArticle:
		if strings.EqualFold(answer, correct) {
			return exact(correct)
		}
		return wrong(correct)
	case model.KindConjugation:
		if answer == correct {
			return exact(correct)
		}
		return wrong(correct)
	default:
		return gradeFreeText(kind, answer, correct)
	}
}

func gradeFreeText(kind model.QuestionKind, answer, correct string) model.Verdict {
	if answer == correct {
		return exact(correct)
	}
	if strings.EqualFold(answer, correct) {
		return capitalization(kind, answer, correct)
	}
	if normalize.UmlautFold(answer) == normalize.UmlautFold(correct) {
		return umlaut(correct)
	}
	if normalize.EqualIgnoringSpellingVariants(answer, correct) {
		if lowercasedNoun(kind, answer, correct) {
			return capitalization(kind, answer, correct)
		}
		return umlaut(correct)
	}
	return wrong(correct)
}

func capitalization(kind model.QuestionKind, answer, correct string) model.Verdict {
	if lowercasedNoun(kind, answer, correct) {
		return model.Verdict{
			Outcome:  model.OutcomeWrong,
			Penalty:  model.PenaltyFull,
			Feedback: model.FeedbackNounCapitalization,
			Expected: correct,
		}
	}
	return model.Verdict{
		Outcome:  model.OutcomeNearMissCapitalization,
		Penalty:  model.PenaltyHalf,
		Feedback: model.FeedbackCapitalization,
		Expected: correct,
	}
}

// lowercasedNoun applies only to answers in German: Italian capitalization
// carries no grammatical meaning.
func lowercasedNoun(kind model.QuestionKind, answer, correct string) bool {
	if kind != model.KindTranslation {
		return false
	}
	return startsWith(correct, unicode.IsUpper) && startsWith(answer, unicode.IsLower)
}

func startsWith(s string, pred func(rune) bool) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return false
	}
	return pred(r)
}

// Reveal is the verdict recorded when the learner asks to see the answer.
func Reveal(correct string) model.Verdict {
	return model.Verdict{
		Outcome:  model.OutcomeWrong,
		Penalty:  model.PenaltyFull,
		Feedback: model.FeedbackRevealed,
		Expected: normalize.Clean(correct),
	}
}

func exact(correct string) model.Verdict {
	return model.Verdict{
		Outcome:  model.OutcomeExact,
		Penalty:  model.PenaltyNone,
		Feedback: model.FeedbackCorrect,
		Expected: correct,
	}
}

func umlaut(correct string) model.Verdict {
	return model.Verdict{
		Outcome:  model.OutcomeNearMissUmlaut,
		Penalty:  model.PenaltyHalf,
		Feedback: model.FeedbackUmlaut,
		Expected: correct,
	}
}

func wrong(correct string) model.Verdict {
	return model.Verdict{
		Outcome:  model.OutcomeWrong,
		Penalty:  model.PenaltyFull,
		Feedback: model.FeedbackWrong,
		Expected: correct,
	}
}

// Message renders the Italian feedback line for v.
func Message(v model.Verdict) string {
	switch v.Feedback {
	case model.FeedbackCorrect:
		return "Corretto!"
	case model.FeedbackCapitalization:
		return fmt.Sprintf("Quasi! Attenzione alle maiuscole: %s", v.Expected)
	case model.FeedbackNounCapitalization:
		return fmt.Sprintf("Sbagliato! In tedesco i sostantivi iniziano con la maiuscola: %s", v.Expected)
	case model.FeedbackUmlaut:
		return fmt.Sprintf("Quasi! Attenzione alle umlaut: %s", v.Expected)
	case model.FeedbackRevealed:
		return fmt.Sprintf("Risposta: %s (contata come errore)", v.Expected)
	default:
		return fmt.Sprintf("Sbagliato! Risposta corretta: %s", v.Expected)
	}
}

// PenaltyLabel describes a penalty in the error list.
func PenaltyLabel(penalty float64) string {
	if penalty == model.PenaltyHalf {
		return "mezzo errore"
	}
	return "errore completo"
}
