// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wortdrill/internal/generator"
	"github.com/verte-zerg/wortdrill/internal/grading"
	"github.com/verte-zerg/wortdrill/internal/model"
	"github.com/verte-zerg/wortdrill/internal/session"
)

// QuitSentinel typed alone ends the session early.
const QuitSentinel = "n"

// Saver persists finished games.
type Saver interface {
	SaveGame(ctx context.Context, game model.GameRecord) (int64, error)
}

// Options configures a quiz.
type Options struct {
	Questions []generator.Question
	GameType  string
	Mode      string
	Saver     Saver
	Logger    *slog.Logger
	Now       func() time.Time
}

type savedMsg struct {
	id  int64
	err error
}

// Model implements the Bubble Tea quiz UI.
type Model struct {
	questions []generator.Question
	index     int
	session   *session.Session
	saver     Saver
	logger    *slog.Logger
	now       func() time.Time

	input  textinput.Model
	width  int
	height int

	last *model.Verdict

	summary session.Summary
	game    model.GameRecord
	saving  bool
	saved   bool
	saveErr error
}

var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	exactStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	nearMissStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a quiz model and starts its session.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "la tua risposta"
	input.CharLimit = 128
	input.Focus()

	m := &Model{
		questions: opts.Questions,
		session:   session.New(opts.GameType, opts.Mode, len(opts.Questions)),
		saver:     opts.Saver,
		logger:    opts.Logger,
		now:       opts.Now,
		input:     input,
	}
	if err := m.session.Start(m.now()); err != nil {
		m.logger.Error("start session", "err", err)
	}
	m.logger.Debug("session started", "session", m.session.ID, "game_type", opts.GameType, "questions", len(opts.Questions))
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width/2)
		return m, nil
	case savedMsg:
		return m.handleSaved(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.session.Phase() == session.PhaseCompleted {
			return m.handleSummaryKey(msg)
		}
		if m.index >= len(m.questions) {
			return m, m.finish()
		}
		switch msg.Type {
		case tea.KeyEsc:
			return m, m.finish()
		case tea.KeyCtrlR:
			m.answer(grading.Reveal(m.current().Answer), model.RevealedAnswer)
			return m, m.advance()
		case tea.KeyEnter:
			return m, m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.session.Phase() == session.PhaseCompleted {
		content = m.renderSummary()
	} else {
		content = m.renderQuestion()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

// Summary returns the final summary once the session is completed.
func (m *Model) Summary() (session.Summary, bool) {
	if m.session.Phase() != session.PhaseCompleted {
		return session.Summary{}, false
	}
	return m.summary, true
}

// SaveErr returns the last persistence failure, if any.
func (m *Model) SaveErr() error {
	return m.saveErr
}

func (m *Model) current() generator.Question {
	return m.questions[m.index]
}

func (m *Model) submit() tea.Cmd {
	raw := m.input.Value()
	if strings.EqualFold(strings.TrimSpace(raw), QuitSentinel) {
		return m.finish()
	}
	q := m.current()
	m.answer(grading.Grade(q.Kind, raw, q.Answer), strings.TrimSpace(raw))
	return m.advance()
}

func (m *Model) answer(v model.Verdict, userAnswer string) {
	q := m.current()
	if err := m.session.Record(v, session.AnswerFor(q.Word, userAnswer, q.Answer)); err != nil {
		m.logger.Error("record answer", "session", m.session.ID, "err", err)
		return
	}
	m.last = &v
	m.input.SetValue("")
}

func (m *Model) advance() tea.Cmd {
	if m.session.Phase() == session.PhaseCompleted {
		return m.finalize()
	}
	m.index++
	if m.index >= len(m.questions) {
		return m.finish()
	}
	return nil
}

func (m *Model) finish() tea.Cmd {
	if err := m.session.Complete(); err != nil {
		m.logger.Error("complete session", "session", m.session.ID, "err", err)
		return tea.Quit
	}
	return m.finalize()
}

func (m *Model) finalize() tea.Cmd {
	summary, err := m.session.Finalize()
	if err != nil {
		m.logger.Error("finalize session", "session", m.session.ID, "err", err)
		return nil
	}
	m.summary = summary
	m.input.Blur()
	if !summary.Answered {
		return nil
	}
	game, err := m.session.Game(m.now())
	if err != nil {
		m.logger.Error("build game record", "session", m.session.ID, "err", err)
		return nil
	}
	m.game = game
	return m.save()
}

func (m *Model) save() tea.Cmd {
	if m.saver == nil {
		return nil
	}
	m.saving = true
	m.saveErr = nil
	saver := m.saver
	game := m.game
	return func() tea.Msg {
		id, err := saver.SaveGame(context.Background(), game)
		return savedMsg{id: id, err: err}
	}
}

func (m *Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.saveErr = msg.err
		m.logger.Warn("failed to save game", "session", m.session.ID, "err", msg.err)
		return m, nil
	}
	m.saved = true
	m.logger.Debug("game saved", "session", m.session.ID, "id", msg.id)
	return m, nil
}

func (m *Model) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch msg.String() {
	case "r":
		if m.saveErr != nil {
			return m, m.save()
		}
	case "q", "esc", "enter":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) renderQuestion() string {
	if len(m.questions) == 0 || m.index >= len(m.questions) {
		return ""
	}
	q := m.current()
	lines := []string{}
	if m.last != nil {
		lines = append(lines, feedbackStyle(*m.last).Render(grading.Message(*m.last)), "")
	}
	lines = append(lines,
		titleStyle.Render(fmt.Sprintf("Domanda %d/%d", m.index+1, len(m.questions))),
		promptStyle.Render(m.truncate(q.Prompt)),
	)
	if q.Hint != "" {
		lines = append(lines, hintStyle.Render("("+q.Hint+")"))
	}
	lines = append(lines, "", m.input.View(), "",
		hintStyle.Render("invio conferma · ctrl+r mostra risposta · n o esc termina"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderSummary() string {
	lines := []string{}
	if m.last != nil {
		lines = append(lines, feedbackStyle(*m.last).Render(grading.Message(*m.last)), "")
	}
	lines = append(lines, titleStyle.Render("Risultati"))
	if !m.summary.Answered {
		lines = append(lines, "Nessuna domanda risposta.", "", hintStyle.Render("q per uscire"))
		return strings.Join(lines, "\n")
	}
	lines = append(lines,
		fmt.Sprintf("Risposte corrette: %d/%d", m.summary.Correct, m.summary.Total),
		fmt.Sprintf("Errori totali: %d", m.summary.Errors),
		fmt.Sprintf("Punteggio: %.1f", m.summary.EffectiveScore),
		fmt.Sprintf("Percentuale di successo: %.1f%%", m.summary.SuccessRate),
	)
	if len(m.game.Errors) > 0 {
		lines = append(lines, "", titleStyle.Render("Errori da ripassare"))
		for i, e := range m.game.Errors {
			lines = append(lines,
				fmt.Sprintf("%d. %s → %s", i+1, e.WordItalian, e.CorrectAnswer),
				hintStyle.Render(fmt.Sprintf("   Hai risposto: %s (%s)", e.UserAnswer, grading.PenaltyLabel(e.Penalty))),
			)
		}
	}
	lines = append(lines, "", m.saveStatus())
	return strings.Join(lines, "\n")
}

func (m *Model) saveStatus() string {
	switch {
	case m.saving:
		return hintStyle.Render("Salvataggio in corso...")
	case m.saveErr != nil:
		return wrongStyle.Render("Salvataggio non riuscito. r per riprovare · q per uscire senza salvare")
	case m.saved:
		return hintStyle.Render("Partita salvata. q per uscire")
	default:
		return hintStyle.Render("q per uscire")
	}
}

func (m *Model) renderFooter() string {
	total := len(m.questions)
	if total == 0 {
		return ""
	}
	state := m.session.State()
	progress := int(float64(state.Total) / float64(total) * 100)
	segments := []string{
		fmt.Sprintf("Progresso %d%%", progress),
		fmt.Sprintf("Punteggio %.1f/%d", session.Score(state, session.ScoringCumulative), state.Total),
		fmt.Sprintf("Errori %d", len(state.Errors)),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) truncate(s string) string {
	if m.width <= 4 {
		return s
	}
	return runewidth.Truncate(s, m.width-4, "…")
}

func feedbackStyle(v model.Verdict) lipgloss.Style {
	switch {
	case v.Exact():
		return exactStyle
	case v.Outcome.NearMiss():
		return nearMissStyle
	default:
		return wrongStyle
	}
}
