// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/wortdrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Overview holds totals across all games.
type Overview struct {
	Games          int
	TotalQuestions int
	CorrectAnswers int
	AvgSuccess     float64
}

// WeekProgress aggregates the games of one Monday-based week.
type WeekProgress struct {
	Start      time.Time
	Games      int
	AvgSuccess float64
}

// Summarize computes totals and the mean success rate.
func Summarize(games []model.GameRecord) Overview {
	var o Overview
	if len(games) == 0 {
		return o
	}
	var sum float64
	for _, g := range games {
		o.TotalQuestions += g.TotalQuestions
		o.CorrectAnswers += g.CorrectAnswers
		sum += g.SuccessRate
	}
	o.Games = len(games)
	o.AvgSuccess = sum / float64(len(games))
	return o
}

// BestGame returns the game with the highest success rate; the earliest wins
// a tie.
func BestGame(games []model.GameRecord) (model.GameRecord, bool) {
	if len(games) == 0 {
		return model.GameRecord{}, false
	}
	best := games[0]
	for _, g := range games[1:] {
		if g.SuccessRate > best.SuccessRate {
			best = g
		}
	}
	return best, true
}

// WeekStart returns midnight of the Monday starting t's week.
func WeekStart(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeeklyProgress groups games by week and returns the most recent weeks
// that have games, newest first.
func WeeklyProgress(games []model.GameRecord, weeks int) []WeekProgress {
	if len(games) == 0 || weeks <= 0 {
		return nil
	}
	type acc struct {
		games int
		sum   float64
	}
	byWeek := map[time.Time]*acc{}
	for _, g := range games {
		key := WeekStart(g.PlayedAt)
		a, ok := byWeek[key]
		if !ok {
			a = &acc{}
			byWeek[key] = a
		}
		a.games++
		a.sum += g.SuccessRate
	}
	out := make([]WeekProgress, 0, len(byWeek))
	for start, a := range byWeek {
		out = append(out, WeekProgress{
			Start:      start,
			Games:      a.games,
			AvgSuccess: a.sum / float64(a.games),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.After(out[j].Start)
	})
	if len(out) > weeks {
		out = out[:weeks]
	}
	return out
}

// Streaks counts consecutive play days. The current streak is alive while
// the last game was played today or yesterday.
func Streaks(games []model.GameRecord, now time.Time) (current, longest int) {
	if len(games) == 0 {
		return 0, 0
	}
	seen := map[time.Time]struct{}{}
	for _, g := range games {
		seen[startOfDay(g.PlayedAt.In(now.Location()))] = struct{}{}
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	today := startOfDay(now)
	if days[0].Equal(today) || days[0].Equal(today.AddDate(0, 0, -1)) {
		current = 1
		for i := 0; i+1 < len(days); i++ {
			if !consecutive(days[i+1], days[i]) {
				break
			}
			current++
		}
	}

	longest = 1
	run := 1
	for i := 0; i+1 < len(days); i++ {
		if consecutive(days[i+1], days[i]) {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 1
	}
	return current, longest
}

// GamesSince counts games played strictly after since.
func GamesSince(games []model.GameRecord, since time.Time) int {
	count := 0
	for _, g := range games {
		if g.PlayedAt.After(since) {
			count++
		}
	}
	return count
}

// SuccessCurve returns success rates in play order smoothed over window.
func SuccessCurve(games []model.GameRecord, window int) []float64 {
	values := make([]float64, len(games))
	for i, g := range games {
		values[i] = g.SuccessRate
	}
	return MovingAverage(values, window)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func consecutive(earlier, later time.Time) bool {
	return earlier.AddDate(0, 0, 1).Equal(later)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values. A positive
// width keeps only the most recent values that fit.
func Sparkline(values []float64, width int) string {
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
