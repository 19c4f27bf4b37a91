package stats

import (
	"sort"

	"github.com/samber/lo"

	"github.com/verte-zerg/wortdrill/internal/model"
)

// WordsToReview selects words with at least minErrors recorded errors, most
// errors first, truncated to limit after sorting. Counts for words missing
// from the repository are ignored. A limit <= 0 keeps every candidate.
func WordsToReview[W model.Word](words []W, counts map[string]int, minErrors, limit int) []W {
	if len(words) == 0 || len(counts) == 0 {
		return nil
	}
	byGerman := lo.KeyBy(words, func(w W) string {
		return w.German()
	})

	type candidate struct {
		word  W
		count int
	}
	candidates := make([]candidate, 0, len(counts))
	for german, count := range counts {
		if count < minErrors {
			continue
		}
		word, ok := byGerman[german]
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{word: word, count: count})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count == candidates[j].count {
			return candidates[i].word.German() < candidates[j].word.German()
		}
		return candidates[i].count > candidates[j].count
	})
	if limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}
	if len(candidates) == 0 {
		return nil
	}
	return lo.Map(candidates, func(c candidate, _ int) W {
		return c.word
	})
}

// CountsByWord turns aggregated error counts into a lookup keyed by the
// German form.
func CountsByWord(counts []model.ErrorCount) map[string]int {
	return lo.Associate(counts, func(ec model.ErrorCount) (string, int) {
		return ec.German, ec.Count
	})
}
