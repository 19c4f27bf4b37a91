// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wortdrill/internal/model"
	"github.com/verte-zerg/wortdrill/internal/stats"
)

const (
	tabOverview = iota
	tabCategories
	tabHardest
	tabHistory
)

const (
	barWidth      = 20
	defaultWidth  = 80
	dateTimeShort = "2006-01-02 15:04"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	src stats.Source
	cfg model.StatsConfig
	now func() time.Time

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	viewports map[int]viewport.Model
	tables    map[int]table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(src stats.Source, cfg model.StatsConfig, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	m := &Model{
		src:  src,
		cfg:  cfg,
		now:  now,
		tabs: []string{"Panoramica", "Categorie", "Parole difficili", "Cronologia"},
		viewports: map[int]viewport.Model{
			tabOverview:   viewport.New(0, 0),
			tabCategories: viewport.New(0, 0),
		},
		tables: map[int]table.Model{
			tabHardest: newTable(hardestColumns()),
			tabHistory: newTable(historyColumns()),
		},
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refreshReport()
			return m, nil
		case "g", "home":
			m.gotoEdge(true)
			return m, nil
		case "G", "end":
			m.gotoEdge(false)
			return m, nil
		}
		return m, m.forward(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if t, ok := m.tables[m.activeTab]; ok {
		t, cmd = t.Update(msg)
		m.tables[m.activeTab] = t
		return cmd
	}
	vp := m.viewports[m.activeTab]
	vp, cmd = vp.Update(msg)
	m.viewports[m.activeTab] = vp
	return cmd
}

func (m *Model) gotoEdge(top bool) {
	if t, ok := m.tables[m.activeTab]; ok {
		if top {
			t.GotoTop()
		} else {
			t.GotoBottom()
		}
		m.tables[m.activeTab] = t
		return
	}
	vp := m.viewports[m.activeTab]
	if top {
		vp.GotoTop()
	} else {
		vp.GotoBottom()
	}
	m.viewports[m.activeTab] = vp
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(1, lipgloss.Height(activeNavStyle.Render("X")))
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i, vp := range m.viewports {
		vp.Width = m.width
		vp.Height = bodyHeight
		m.viewports[i] = vp
	}
	for i, t := range m.tables {
		t.SetWidth(m.width)
		t.SetHeight(max(1, bodyHeight-1))
		m.tables[i] = t
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	for i, t := range m.tables {
		if i == m.activeTab {
			t.Focus()
		} else {
			t.Blur()
		}
		m.tables[i] = t
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: sinistra/destra  Scorri: su/giù  Ricarica: r  Esci: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if t, ok := m.tables[m.activeTab]; ok {
		if len(t.Rows()) == 0 {
			return "Nessun dato."
		}
		return tableMutedStyle.Render(t.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.src, m.cfg, m.now())
	if err != nil {
		m.errMsg = err.Error()
		for i, vp := range m.viewports {
			vp.SetContent("Impossibile caricare le statistiche.")
			m.viewports[i] = vp
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.setTableRows(tabHardest, hardestRows(report.Hardest))
	m.setTableRows(tabHistory, historyRows(report.Games))
	m.renderTabContents()
}

func (m *Model) setTableRows(tab int, rows []table.Row) {
	t := m.tables[tab]
	t.SetRows(rows)
	m.tables[tab] = t
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	overview := m.viewports[tabOverview]
	overview.SetContent(renderOverview(m.report, width))
	m.viewports[tabOverview] = overview

	categories := m.viewports[tabCategories]
	categories.SetContent(renderCategories(m.report.Categories))
	m.viewports[tabCategories] = categories
}

func renderOverview(r stats.Report, width int) string {
	if r.Overview.Games == 0 {
		return "Nessuna partita giocata ancora."
	}
	cards := []string{
		metricCard("Partite", strconv.Itoa(r.Overview.Games)),
		metricCard("Domande", strconv.Itoa(r.Overview.TotalQuestions)),
		metricCard("Corrette", strconv.Itoa(r.Overview.CorrectAnswers)),
		metricCard("Media", fmt.Sprintf("%.1f%%", r.Overview.AvgSuccess)),
		metricCard("Streak", fmt.Sprintf("%d / %d giorni", r.CurrentStreak, r.LongestStreak)),
		metricCard("Ultimi 7 giorni", strconv.Itoa(r.GamesThisWeek)),
	}
	var grid string
	if width < 60 {
		grid = lipgloss.JoinVertical(lipgloss.Left, cards...)
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
		grid = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}

	var buf bytes.Buffer
	if r.HasBest {
		fmt.Fprintf(&buf, "Miglior partita: %.1f%% (%s - %s)\n\n",
			r.Best.SuccessRate, r.Best.PlayedAt.Format(dateTimeShort), r.Best.GameType)
	}
	if err := stats.RenderWeeks(&buf, r.Weeks); err != nil {
		return fmt.Sprintf("Impossibile mostrare le settimane: %v", err)
	}
	buf.WriteString("Andamento\n")
	buf.WriteString(stats.Sparkline(r.Curve, max(1, width-2)))
	return strings.TrimRight(grid+"\n\n"+buf.String(), "\n")
}

func renderCategories(categories []model.TypeStats) string {
	if len(categories) == 0 {
		return "Nessuna partita giocata ancora."
	}
	lines := make([]string, 0, len(categories)*4)
	for _, c := range categories {
		lines = append(lines,
			cardValueStyle.Render(c.GameType),
			fmt.Sprintf("  Partite: %d  Parole studiate: %d", c.Games, c.TotalQuestions),
			fmt.Sprintf("  %s %.1f%%", stats.Bar(c.AvgSuccess, barWidth), c.AvgSuccess),
			"",
		)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(1),
	)
	t.SetStyles(tableStyles())
	return t
}

func hardestColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Parola", Width: 22},
		{Title: "Significato", Width: 22},
		{Title: "Errori", Width: 6},
	}
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Data", Width: 16},
		{Title: "Tipo", Width: 34},
		{Title: "Modalità", Width: 10},
		{Title: "Domande", Width: 7},
		{Title: "Successo", Width: 8},
	}
}

func hardestRows(hardest []model.ErrorCount) []table.Row {
	rows := make([]table.Row, 0, len(hardest))
	for i, ec := range hardest {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			truncateCell(ec.German, 22),
			truncateCell(ec.Italian, 22),
			strconv.Itoa(ec.Count),
		})
	}
	return rows
}

// historyRows lists games most recent first.
func historyRows(games []model.GameRecord) []table.Row {
	rows := make([]table.Row, 0, len(games))
	for i := len(games) - 1; i >= 0; i-- {
		g := games[i]
		rows = append(rows, table.Row{
			g.PlayedAt.Format(dateTimeShort),
			truncateCell(g.GameType, 34),
			g.Mode,
			strconv.Itoa(g.TotalQuestions),
			fmt.Sprintf("%.1f%%", g.SuccessRate),
		})
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func truncateCell(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
