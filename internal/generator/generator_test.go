package generator

import (
	"errors"
	"testing"

	"github.com/verte-zerg/wortdrill/internal/model"
)

func testWords() []model.Word {
	return []model.Word{
		model.Noun{Lemma: model.Lemma{Text: "Hund", Translation: "cane", Tier: 1}, Article: model.ArticleDer, Plural: "Hunde"},
		model.Noun{Lemma: model.Lemma{Text: "Katze", Translation: "gatto", Tier: 2}, Article: model.ArticleDie, Plural: "Katzen"},
		model.Noun{Lemma: model.Lemma{Text: "Pferd", Translation: "cavallo", Tier: 3}, Article: model.ArticleDas, Plural: "Pferde"},
	}
}

func TestSampleDistinct(t *testing.T) {
	g := NewSeeded(1)
	words := testWords()
	got := g.Sample(words, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 words, got %d", len(got))
	}
	if got[0].German() == got[1].German() {
		t.Fatalf("expected distinct words, got %v", got)
	}
	if all := g.Sample(words, 0); len(all) != 3 {
		t.Fatalf("expected every word, got %d", len(all))
	}
	if more := g.Sample(words, 10); len(more) != 3 {
		t.Fatalf("expected sample capped at 3, got %d", len(more))
	}
	if words[0].German() != "Hund" {
		t.Fatalf("input slice was modified")
	}
}

func TestSampleIsDeterministicForSeed(t *testing.T) {
	a := NewSeeded(42).Sample(testWords(), 0)
	b := NewSeeded(42).Sample(testWords(), 0)
	for i := range a {
		if a[i].German() != b[i].German() {
			t.Fatalf("expected identical order for identical seed")
		}
	}
}

func TestBuildPerKind(t *testing.T) {
	g := NewSeeded(1)
	hund := testWords()[0]

	q := g.Build(hund, model.KindTranslation)
	if q.Answer != "Hund" || q.Prompt != "Come si dice 'cane' in tedesco?" {
		t.Fatalf("unexpected translation question: %+v", q)
	}
	q = g.Build(hund, model.KindReverseTranslation)
	if q.Answer != "cane" {
		t.Fatalf("unexpected reverse answer: %q", q.Answer)
	}
	q = g.Build(hund, model.KindArticle)
	if q.Answer != "der" || q.Hint != "der/die/das" {
		t.Fatalf("unexpected article question: %+v", q)
	}
}

func TestConjugationFormsFallback(t *testing.T) {
	g := NewSeeded(7)
	onlyParticiple := model.Verb{Lemma: model.Lemma{Text: "gehen", Translation: "andare", Tier: 1}, Participle: "gegangen"}
	for i := 0; i < 10; i++ {
		q := g.Build(onlyParticiple, model.KindConjugation)
		if q.Form != FormParticiple || q.Answer != "gegangen" {
			t.Fatalf("unexpected question: %+v", q)
		}
	}

	both := model.Verb{Lemma: model.Lemma{Text: "gehen", Translation: "andare", Tier: 1}, Prateritum: "ging", Participle: "gegangen"}
	seen := map[Form]bool{}
	for i := 0; i < 50; i++ {
		q := g.Build(both, model.KindConjugation)
		seen[q.Form] = true
	}
	if !seen[FormPrateritum] || !seen[FormParticiple] {
		t.Fatalf("expected both forms to be asked, got %v", seen)
	}
}

func TestQuestionsRejectsUnsupportedKind(t *testing.T) {
	_, err := NewSeeded(1).Questions(testWords(), model.KindConjugation, 5)
	if !errors.Is(err, model.ErrNoEligibleWords) {
		t.Fatalf("expected ErrNoEligibleWords, got %v", err)
	}
	qs, err := NewSeeded(1).Questions(testWords(), model.KindArticle, 2)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
}
