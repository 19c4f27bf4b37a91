// Package generator builds randomized quiz questions from word lists.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/wortdrill/internal/model"
)

// Form names the verb form asked by a conjugation question.
type Form int

const (
	FormNone Form = iota
	FormPrateritum
	FormParticiple
)

// Question is one prompt with its expected answer.
type Question struct {
	Word   model.Word
	Kind   model.QuestionKind
	Form   Form
	Prompt string
	Hint   string
	Answer string
}

// Generator produces randomized question sequences.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Sample returns min(n, len(words)) distinct words in random order. A
// non-positive n returns every word shuffled.
func (g *Generator) Sample(words []model.Word, n int) []model.Word {
	out := make([]model.Word, len(words))
	copy(out, words)
	g.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Questions samples n words and builds a question of the given kind for
// each. Words the kind cannot ask about are skipped before sampling.
func (g *Generator) Questions(words []model.Word, kind model.QuestionKind, n int) ([]Question, error) {
	eligible := make([]model.Word, 0, len(words))
	for _, w := range words {
		if kind.Supports(w.Category()) && askable(w, kind) {
			eligible = append(eligible, w)
		}
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: no %s questions available", model.ErrNoEligibleWords, kind)
	}
	sampled := g.Sample(eligible, n)
	questions := make([]Question, 0, len(sampled))
	for _, w := range sampled {
		questions = append(questions, g.Build(w, kind))
	}
	return questions, nil
}

// Build creates the question for one word. The word must support kind.
func (g *Generator) Build(w model.Word, kind model.QuestionKind) Question {
	q := Question{Word: w, Kind: kind}
	switch kind {
	case model.KindReverseTranslation:
		q.Prompt = fmt.Sprintf("Cosa significa '%s' in italiano?", w.German())
		q.Answer = w.Italian()
	case model.KindArticle:
		q.Prompt = fmt.Sprintf("Articolo di '%s'?", w.German())
		q.Hint = "der/die/das"
		if n, ok := w.(model.Noun); ok {
			q.Answer = string(n.Article)
		}
	case model.KindConjugation:
		v, _ := w.(model.Verb)
		q.Form = g.pickForm(v)
		if q.Form == FormPrateritum {
			q.Prompt = fmt.Sprintf("Coniuga '%s' (%s) al Präteritum", v.German(), v.Italian())
			q.Answer = v.Prateritum
		} else {
			q.Prompt = fmt.Sprintf("Participio passato di '%s' (%s)", v.German(), v.Italian())
			q.Answer = v.Participle
		}
	default:
		q.Prompt = fmt.Sprintf("Come si dice '%s' in tedesco?", w.Italian())
		q.Answer = w.German()
	}
	return q
}

func (g *Generator) pickForm(v model.Verb) Form {
	switch {
	case v.Prateritum == "":
		return FormParticiple
	case v.Participle == "":
		return FormPrateritum
	case g.rnd.Intn(2) == 0:
		return FormPrateritum
	default:
		return FormParticiple
	}
}

func askable(w model.Word, kind model.QuestionKind) bool {
	switch kind {
	case model.KindReverseTranslation:
		return w.Italian() != ""
	case model.KindTranslation:
		return w.Italian() != "" && w.German() != ""
	case model.KindConjugation:
		v, ok := w.(model.Verb)
		return ok && (v.Prateritum != "" || v.Participle != "")
	case model.KindArticle:
		n, ok := w.(model.Noun)
		return ok && n.Article != ""
	default:
		return false
	}
}
