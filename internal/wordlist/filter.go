package wordlist

import (
	"github.com/samber/lo"

	"github.com/verte-zerg/wortdrill/internal/model"
)

// Filter restricts words to the selected frequency tiers, preserving order.
// Casual, or a capped/focus selection without a level, keeps every word.
// A focus level with no matching word yields an empty slice.
func Filter[W model.Word](words []W, sel model.DifficultySelection) []W {
	if sel.Level == 0 {
		return words
	}
	switch sel.Mode {
	case model.DifficultyCapped:
		return lo.Filter(words, func(w W, _ int) bool {
			return w.Frequency() <= sel.Level
		})
	case model.DifficultyFocus:
		return lo.Filter(words, func(w W, _ int) bool {
			return w.Frequency() == sel.Level
		})
	default:
		return words
	}
}

// Histogram counts words per frequency tier.
func Histogram[W model.Word](words []W) map[int]int {
	return lo.Reduce(words, func(acc map[int]int, w W, _ int) map[int]int {
		acc[w.Frequency()]++
		return acc
	}, map[int]int{})
}
