package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/wortdrill/internal/model"
)

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInProgress
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in_progress"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session owns the State of one interactive drill.
type Session struct {
	ID        string
	GameType  string
	Mode      string
	Planned   int
	StartedAt time.Time

	phase Phase
	state State
}

// New returns an idle session. When planned > 0 the session completes on
// its own after that many answers.
func New(gameType, mode string, planned int) *Session {
	return &Session{
		ID:       uuid.NewString(),
		GameType: gameType,
		Mode:     mode,
		Planned:  planned,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Start moves an idle session to in progress.
func (s *Session) Start(now time.Time) error {
	if s.phase != PhaseIdle {
		return fmt.Errorf("%w: start from %s", model.ErrInvalidPhase, s.phase)
	}
	s.phase = PhaseInProgress
	s.StartedAt = now
	return nil
}

// Record adds a verdict. It completes the session when the plan is exhausted.
func (s *Session) Record(v model.Verdict, a Answer) error {
	if s.phase != PhaseInProgress {
		return fmt.Errorf("%w: record in %s", model.ErrInvalidPhase, s.phase)
	}
	Record(&s.state, v, a)
	if s.Planned > 0 && s.state.Total >= s.Planned {
		s.phase = PhaseCompleted
	}
	return nil
}

// Complete ends the session early.
func (s *Session) Complete() error {
	switch s.phase {
	case PhaseInProgress:
		s.phase = PhaseCompleted
		return nil
	case PhaseCompleted:
		return nil
	default:
		return fmt.Errorf("%w: complete from %s", model.ErrInvalidPhase, s.phase)
	}
}

// Finalize returns the summary of a completed session.
func (s *Session) Finalize() (Summary, error) {
	if s.phase != PhaseCompleted {
		return Summary{}, fmt.Errorf("%w: finalize in %s", model.ErrInvalidPhase, s.phase)
	}
	return Finalize(s.state), nil
}

// Reset discards the state and returns to idle with a fresh ID.
func (s *Session) Reset() {
	s.phase = PhaseIdle
	s.state = State{}
	s.StartedAt = time.Time{}
	s.ID = uuid.NewString()
}

// State returns a copy of the running state.
func (s *Session) State() State {
	return s.state.Clone()
}

// Live is the running cumulative score.
func (s *Session) Live() float64 {
	return s.state.Credit
}

// Game builds the history record of a completed session.
func (s *Session) Game(playedAt time.Time) (model.GameRecord, error) {
	summary, err := s.Finalize()
	if err != nil {
		return model.GameRecord{}, err
	}
	return model.GameRecord{
		PlayedAt:       playedAt,
		GameType:       s.GameType,
		Mode:           s.Mode,
		TotalQuestions: summary.Total,
		CorrectAnswers: summary.Correct,
		SuccessRate:    summary.SuccessRate,
		Errors:         s.state.Clone().Errors,
	}, nil
}
