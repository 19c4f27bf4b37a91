package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/wortdrill/internal/model"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
	rule           = "============================================================"
	sparkLabel     = "Andamento: "
)

// RenderDashboard prints every dashboard section. Width sizes the sparkline;
// zero leaves it unbounded.
func RenderDashboard(w io.Writer, r Report, width int) error {
	if err := RenderOverview(w, r); err != nil {
		return err
	}
	if r.Overview.Games == 0 {
		return nil
	}
	if err := RenderWeeks(w, r.Weeks); err != nil {
		return err
	}
	if err := RenderCategories(w, r.Categories); err != nil {
		return err
	}
	if err := RenderHardest(w, r.Hardest); err != nil {
		return err
	}
	if err := RenderStreaks(w, r); err != nil {
		return err
	}
	sparkWidth := 0
	if width > 0 {
		sparkWidth = max(1, width-len(sparkLabel))
	}
	return writeLines(w, "Curva di apprendimento", sparkLabel+Sparkline(r.Curve, sparkWidth), "")
}

// RenderOverview prints the general totals and the best game.
func RenderOverview(w io.Writer, r Report) error {
	if r.Overview.Games == 0 {
		return writeLines(w, "Statistiche generali", "Nessuna partita giocata ancora.", "")
	}
	lines := []string{
		"Statistiche generali",
		fmt.Sprintf("Partite giocate: %d", r.Overview.Games),
		fmt.Sprintf("Domande totali: %d", r.Overview.TotalQuestions),
		fmt.Sprintf("Risposte corrette: %d", r.Overview.CorrectAnswers),
		fmt.Sprintf("Media successo: %.1f%%", r.Overview.AvgSuccess),
	}
	if r.HasBest {
		lines = append(lines, fmt.Sprintf("Miglior partita: %.1f%% (%s - %s)",
			r.Best.SuccessRate, r.Best.PlayedAt.Format(dateTimeLayout), r.Best.GameType))
	}
	return writeLines(w, append(lines, "")...)
}

// RenderWeeks prints weekly progress, newest week first.
func RenderWeeks(w io.Writer, weeks []WeekProgress) error {
	lines := []string{fmt.Sprintf("Ultime %d settimane", len(weeks))}
	for _, wk := range weeks {
		lines = append(lines, fmt.Sprintf("Settimana del %s: %d partite, media %.1f%%",
			wk.Start.Format(dateLayout), wk.Games, wk.AvgSuccess))
	}
	return writeLines(w, append(lines, "")...)
}

// RenderCategories prints the per-category breakdown.
func RenderCategories(w io.Writer, categories []model.TypeStats) error {
	if len(categories) == 0 {
		return nil
	}
	headers := []string{"Categoria", "Partite", "Media", "Parole studiate"}
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{
			c.GameType,
			strconv.Itoa(c.Games),
			fmt.Sprintf("%.1f%%", c.AvgSuccess),
			strconv.Itoa(c.TotalQuestions),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true})
	lines = append([]string{"Analisi per categoria"}, lines...)
	return writeLines(w, append(lines, "")...)
}

// RenderHardest prints the words with the most recorded errors.
func RenderHardest(w io.Writer, hardest []model.ErrorCount) error {
	if len(hardest) == 0 {
		return writeLines(w, "Parole più difficili", "Nessun errore registrato!", "")
	}
	lines := formatTable([]string{"#", "Parola", "Significato", "Errori"}, hardestRows(hardest), map[int]bool{0: true, 3: true})
	lines = append([]string{"Parole più difficili"}, lines...)
	return writeLines(w, append(lines, "")...)
}

func hardestRows(hardest []model.ErrorCount) [][]string {
	rows := make([][]string, 0, len(hardest))
	for i, ec := range hardest {
		rows = append(rows, []string{strconv.Itoa(i + 1), ec.German, ec.Italian, strconv.Itoa(ec.Count)})
	}
	return rows
}

// RenderStreaks prints streaks and recent activity.
func RenderStreaks(w io.Writer, r Report) error {
	return writeLines(w,
		"Streak e record",
		fmt.Sprintf("Streak corrente: %d giorni", r.CurrentStreak),
		fmt.Sprintf("Miglior streak: %d giorni", r.LongestStreak),
		fmt.Sprintf("Partite questa settimana: %d", r.GamesThisWeek),
		"",
	)
}

// RenderExport writes the plain-text statistics export.
func RenderExport(w io.Writer, r Report) error {
	if err := writeLines(w,
		rule,
		"STATISTICHE APPRENDIMENTO TEDESCO",
		"Generato il: "+r.GeneratedAt.Format(dateTimeLayout),
		rule,
		"",
	); err != nil {
		return err
	}
	if r.Overview.Games == 0 {
		return writeLines(w, "Nessuna partita giocata ancora.")
	}
	if err := writeLines(w,
		"STATISTICHE GENERALI",
		fmt.Sprintf("Partite giocate: %d", r.Overview.Games),
		fmt.Sprintf("Domande totali: %d", r.Overview.TotalQuestions),
		fmt.Sprintf("Risposte corrette: %d", r.Overview.CorrectAnswers),
		fmt.Sprintf("Media successo: %.1f%%", r.Overview.AvgSuccess),
		"",
		"PAROLE PIÙ DIFFICILI",
	); err != nil {
		return err
	}
	for i, ec := range r.Hardest {
		if _, err := fmt.Fprintf(w, "%d. %s (%s) - %d errori\n", i+1, ec.German, ec.Italian, ec.Count); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints one page of games as a table.
func RenderHistory(w io.Writer, games []model.GameRecord) error {
	if len(games) == 0 {
		return writeLines(w, "Nessuna partita trovata.")
	}
	headers := []string{"Data", "Tipo", "Modalità", "Domande", "Corrette", "Successo"}
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{
			g.PlayedAt.Format(dateTimeLayout),
			g.GameType,
			g.Mode,
			strconv.Itoa(g.TotalQuestions),
			strconv.Itoa(g.CorrectAnswers),
			fmt.Sprintf("%.1f%%", g.SuccessRate),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{3: true, 4: true, 5: true})...)
}

// RenderLevels prints the frequency tier histogram of each category.
func RenderLevels(w io.Writer, histograms map[model.Category]map[int]int) error {
	headers := []string{"Categoria"}
	for tier := model.MinFrequency; tier <= model.MaxFrequency; tier++ {
		headers = append(headers, "Livello "+strconv.Itoa(tier))
	}
	headers = append(headers, "Totale")
	rows := make([][]string, 0, len(model.Categories))
	right := map[int]bool{}
	for _, c := range model.Categories {
		counts, ok := histograms[c]
		if !ok {
			continue
		}
		row := []string{c.Label()}
		total := 0
		for tier := model.MinFrequency; tier <= model.MaxFrequency; tier++ {
			row = append(row, strconv.Itoa(counts[tier]))
			total += counts[tier]
			right[len(row)-1] = true
		}
		right[len(row)] = true
		rows = append(rows, append(row, strconv.Itoa(total)))
	}
	if len(rows) == 0 {
		return writeLines(w, "Nessuna parola disponibile.")
	}
	return writeLines(w, formatTable(headers, rows, right)...)
}

// Bar renders a proportional bar of width cells for a percentage.
func Bar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}
