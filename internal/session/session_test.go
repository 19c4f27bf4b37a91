package session

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wortdrill/internal/grading"
	"github.com/verte-zerg/wortdrill/internal/model"
	"github.com/verte-zerg/wortdrill/internal/wordlist"
)

func TestRecordAndFinalize(t *testing.T) {
	var s State
	Record(&s, model.Verdict{Outcome: model.OutcomeExact}, Answer{WordGerman: "Hund"})
	Record(&s, model.Verdict{Outcome: model.OutcomeNearMissUmlaut, Penalty: 0.5}, Answer{WordGerman: "Mädchen", UserAnswer: "Madchen"})
	Record(&s, model.Verdict{Outcome: model.OutcomeWrong, Penalty: 1.0}, Answer{WordGerman: "Pferd", UserAnswer: "Pfert"})

	require.Equal(t, 3, s.Total)
	require.Equal(t, 1, s.Correct)
	require.Len(t, s.Errors, 2)
	assert.Equal(t, "Madchen", s.Errors[0].UserAnswer)
	assert.Equal(t, 0.5, s.Errors[0].Penalty)

	sum := Finalize(s)
	assert.True(t, sum.Answered)
	assert.Equal(t, 1.5, sum.EffectiveScore)
	assert.InDelta(t, 50.0, sum.SuccessRate, 1e-9)
	assert.Equal(t, 2, sum.Errors)
}

func TestFinalizeWithoutAnswers(t *testing.T) {
	sum := Finalize(State{})
	assert.False(t, sum.Answered)
	assert.Zero(t, sum.SuccessRate)
	assert.Zero(t, sum.EffectiveScore)
}

func TestScoringModesAgree(t *testing.T) {
	outcomes := []model.Verdict{
		{Outcome: model.OutcomeExact, Penalty: 0},
		{Outcome: model.OutcomeNearMissCapitalization, Penalty: 0.5},
		{Outcome: model.OutcomeNearMissUmlaut, Penalty: 0.5},
		{Outcome: model.OutcomeWrong, Penalty: 1},
	}
	rnd := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		n := rnd.Intn(30)
		verdicts := make([]model.Verdict, n)
		var s State
		for i := range verdicts {
			verdicts[i] = outcomes[rnd.Intn(len(outcomes))]
			Record(&s, verdicts[i], Answer{})
		}
		assert.Equal(t, ScoreVerdicts(verdicts, ScoringDeduction), ScoreVerdicts(verdicts, ScoringCumulative))
		assert.Equal(t, Score(s, ScoringDeduction), Score(s, ScoringCumulative))
		if n > 0 {
			assert.Equal(t, Finalize(s).EffectiveScore, s.Credit)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := New("nouns", "Traduzione", 2)
	require.Equal(t, PhaseIdle, s.Phase())

	err := s.Record(model.Verdict{}, Answer{})
	require.True(t, errors.Is(err, model.ErrInvalidPhase))
	_, err = s.Finalize()
	require.ErrorIs(t, err, model.ErrInvalidPhase)

	require.NoError(t, s.Start(time.Unix(0, 0)))
	require.ErrorIs(t, s.Start(time.Unix(0, 0)), model.ErrInvalidPhase)
	require.NoError(t, s.Record(model.Verdict{Outcome: model.OutcomeExact}, Answer{}))
	assert.Equal(t, PhaseInProgress, s.Phase())
	assert.Equal(t, 1.0, s.Live())
	require.NoError(t, s.Record(model.Verdict{Outcome: model.OutcomeWrong, Penalty: 1}, Answer{WordGerman: "Katze"}))
	assert.Equal(t, PhaseCompleted, s.Phase())
	require.ErrorIs(t, s.Record(model.Verdict{}, Answer{}), model.ErrInvalidPhase)

	sum, err := s.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 1.0, sum.EffectiveScore)

	game, err := s.Game(time.Unix(100, 0))
	require.NoError(t, err)
	assert.Equal(t, "nouns", game.GameType)
	assert.Equal(t, 2, game.TotalQuestions)
	assert.Equal(t, 1, game.CorrectAnswers)
	assert.InDelta(t, 50.0, game.SuccessRate, 1e-9)
	require.Len(t, game.Errors, 1)

	id := s.ID
	s.Reset()
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Zero(t, s.State().Total)
	assert.NotEqual(t, id, s.ID)
}

func TestSessionCompleteEarly(t *testing.T) {
	s := New("verbs", "Coniugazioni", 0)
	require.ErrorIs(t, s.Complete(), model.ErrInvalidPhase)
	require.NoError(t, s.Start(time.Now()))
	require.NoError(t, s.Complete())
	require.NoError(t, s.Complete())
	sum, err := s.Finalize()
	require.NoError(t, err)
	assert.False(t, sum.Answered)
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := New("nouns", "Traduzione", 0)
	require.NoError(t, s.Start(time.Now()))
	require.NoError(t, s.Record(model.Verdict{Outcome: model.OutcomeWrong, Penalty: 1}, Answer{WordGerman: "Haus"}))
	snapshot := s.State()
	snapshot.Errors[0].WordGerman = "changed"
	assert.Equal(t, "Haus", s.State().Errors[0].WordGerman)
}

func TestTranslationScenario(t *testing.T) {
	data := "Sostantivo,Articolo,Plurale,Significato,Frequenza\n" +
		"Hund,der,Hunde,cane,1\nKatze,die,Katzen,gatto,2\nPferd,das,Pferde,cavallo,3\n"
	nouns, _, err := wordlist.ParseNouns(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, nouns, 3)

	answers := []string{"Hund", "katze", "Pfert"}
	want := []struct {
		outcome model.Outcome
		penalty float64
	}{
		{model.OutcomeExact, 0.0},
		{model.OutcomeWrong, 1.0},
		{model.OutcomeWrong, 1.0},
	}

	s := New(string(model.CategoryNouns), model.KindTranslation.Label(), len(nouns))
	require.NoError(t, s.Start(time.Now()))
	for i, noun := range nouns {
		v := grading.Grade(model.KindTranslation, answers[i], noun.German())
		assert.Equal(t, want[i].outcome, v.Outcome, noun.German())
		assert.Equal(t, want[i].penalty, v.Penalty, noun.German())
		require.NoError(t, s.Record(v, AnswerFor(noun, answers[i], noun.German())))
	}
	require.Equal(t, PhaseCompleted, s.Phase())

	sum, err := s.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 1.0, sum.EffectiveScore)
	assert.InDelta(t, 33.3, sum.SuccessRate, 0.05)
	assert.Equal(t, 1.0, s.Live())
}
