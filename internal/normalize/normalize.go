// Package normalize makes German spelling variants comparable.
//
// Two directions exist and they are not inverses. Normalize expands ASCII
// substitutes into umlauts and ß so flexible input can be compared with the
// canonical spelling. UmlautFold goes the other way and is only used to spot
// answers that are close but spelled without umlauts.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// expansions are applied in order, each as one non-overlapping pass.
var expansions = []struct{ from, to string }{
	{"ae", "ä"},
	{"oe", "ö"},
	{"ue", "ü"},
	{"ss", "ß"},
}

var folder = strings.NewReplacer(
	"ä", "a", "ö", "o", "ü", "u",
	"Ä", "A", "Ö", "O", "Ü", "U",
	"ß", "ss",
)

// Clean composes text to NFC and trims surrounding whitespace, so a
// decomposed "u" plus combining diaeresis equals "ü".
func Clean(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}

// Normalize lowercases and trims text, then expands ae, oe, ue and ss.
// Empty input is returned unchanged.
func Normalize(text string) string {
	if text == "" {
		return text
	}
	out := strings.ToLower(Clean(text))
	for _, e := range expansions {
		out = strings.ReplaceAll(out, e.from, e.to)
	}
	return out
}

// ComparisonForms returns the trimmed original and, when different, its
// normalized form. Both count as valid spellings.
func ComparisonForms(text string) []string {
	if text == "" {
		return []string{text}
	}
	original := Clean(text)
	normalized := Normalize(text)
	if original == normalized {
		return []string{original}
	}
	return []string{original, normalized}
}

// UmlautFold maps ä, ö, ü (either case) to their base vowel and ß to ss.
func UmlautFold(text string) string {
	return folder.Replace(norm.NFC.String(text))
}

// EqualIgnoringSpellingVariants reports whether any comparison form of a
// equals any comparison form of b.
func EqualIgnoringSpellingVariants(a, b string) bool {
	if a == "" || b == "" {
		return a == b
	}
	for _, fa := range ComparisonForms(a) {
		for _, fb := range ComparisonForms(b) {
			if fa == fb {
				return true
			}
		}
	}
	return false
}
