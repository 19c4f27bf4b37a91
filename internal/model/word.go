// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// Category identifies a word list.
type Category string

const (
	CategoryNouns      Category = "nouns"
	CategoryVerbs      Category = "verbs"
	CategoryAdjectives Category = "adjectives"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryNouns, CategoryVerbs, CategoryAdjectives}

// ParseCategory accepts the English name or the Italian label.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nouns", "noun", "nomi":
		return CategoryNouns, nil
	case "verbs", "verb", "verbi":
		return CategoryVerbs, nil
	case "adjectives", "adjective", "aggettivi":
		return CategoryAdjectives, nil
	default:
		return "", fmt.Errorf("unknown category %q (want nouns, verbs or adjectives)", s)
	}
}

// Label returns the Italian label shown to the learner.
func (c Category) Label() string {
	switch c {
	case CategoryNouns:
		return "Nomi"
	case CategoryVerbs:
		return "Verbi"
	case CategoryAdjectives:
		return "Aggettivi"
	default:
		return string(c)
	}
}

// Frequency tiers run from 1 (most common) to 5.
const (
	MinFrequency = 1
	MaxFrequency = 5
)

// ValidFrequency reports whether f is a known tier.
func ValidFrequency(f int) bool {
	return f >= MinFrequency && f <= MaxFrequency
}

// Word is the capability set shared by nouns, verbs and adjectives.
// The German form is the natural key.
type Word interface {
	German() string
	Italian() string
	Frequency() int
	Category() Category
}

// Lemma holds the fields common to every word kind.
type Lemma struct {
	Text        string
	Translation string
	Tier        int
}

// German returns the German form.
func (l Lemma) German() string { return l.Text }

// Italian returns the Italian meaning.
func (l Lemma) Italian() string { return l.Translation }

// Frequency returns the frequency tier.
func (l Lemma) Frequency() int { return l.Tier }

// Article is a German definite article.
type Article string

const (
	ArticleDer Article = "der"
	ArticleDie Article = "die"
	ArticleDas Article = "das"
)

// ParseArticle normalizes an article read from a word list.
func ParseArticle(s string) (Article, bool) {
	switch Article(strings.ToLower(strings.TrimSpace(s))) {
	case ArticleDer:
		return ArticleDer, true
	case ArticleDie:
		return ArticleDie, true
	case ArticleDas:
		return ArticleDas, true
	}
	return "", false
}

// Noun is a German noun.
type Noun struct {
	Lemma
	Article Article
	Plural  string
}

// Category implements Word.
func (Noun) Category() Category { return CategoryNouns }

func (n Noun) String() string {
	return fmt.Sprintf("%s %s (%s)", n.Article, n.Text, n.Plural)
}

// Verb is a German verb with its principal parts.
type Verb struct {
	Lemma
	Regular        bool
	Prateritum     string
	Participle     string
	PerfectAux     string
	CaseGovernment string
	Reflexive      bool
}

// Category implements Word.
func (Verb) Category() Category { return CategoryVerbs }

func (v Verb) String() string {
	return fmt.Sprintf("%s (%s, %s)", v.Text, v.Prateritum, v.Participle)
}

// Adjective is a German adjective with its comparison forms.
type Adjective struct {
	Lemma
	Comparative string
	Superlative string
}

// Category implements Word.
func (Adjective) Category() Category { return CategoryAdjectives }

func (a Adjective) String() string {
	return fmt.Sprintf("%s (%s, %s)", a.Text, a.Comparative, a.Superlative)
}
