// Package wordlist loads word lists from CSV files and filters them by
// frequency tier.
package wordlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/wortdrill/internal/model"
)

// File names inside the data directory.
const (
	NounsFile      = "nomi.csv"
	VerbsFile      = "verbi.csv"
	AdjectivesFile = "aggettivi.csv"
)

// Column headers.
const (
	colNoun        = "Sostantivo"
	colArticle     = "Articolo"
	colPlural      = "Plurale"
	colMeaning     = "Significato"
	colFrequency   = "Frequenza"
	colVerb        = "Verbo"
	colRegular     = "Regolare"
	colPrateritum  = "Präteritum"
	colParticiple  = "Participio passato"
	colPerfect     = "Perfetto"
	colCase        = "Caso"
	colReflexive   = "Riflessivo"
	colAdjective   = "Aggettivo"
	colComparative = "Comparativo"
	colSuperlative = "Superlativo"
)

// Repository reads word lists from a directory. Missing or unreadable files
// yield empty lists and a warning.
type Repository struct {
	dir    string
	logger *slog.Logger
}

// NewRepository returns a Repository rooted at dir.
func NewRepository(dir string, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{dir: dir, logger: logger}
}

// Dir returns the data directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Path returns the file backing category c.
func (r *Repository) Path(c model.Category) string {
	switch c {
	case model.CategoryVerbs:
		return filepath.Join(r.dir, VerbsFile)
	case model.CategoryAdjectives:
		return filepath.Join(r.dir, AdjectivesFile)
	default:
		return filepath.Join(r.dir, NounsFile)
	}
}

// LoadNouns returns every valid noun.
func (r *Repository) LoadNouns() []model.Noun {
	return load(r, model.CategoryNouns, ParseNouns)
}

// LoadVerbs returns every valid verb.
func (r *Repository) LoadVerbs() []model.Verb {
	return load(r, model.CategoryVerbs, ParseVerbs)
}

// LoadAdjectives returns every valid adjective.
func (r *Repository) LoadAdjectives() []model.Adjective {
	return load(r, model.CategoryAdjectives, ParseAdjectives)
}

// Load returns the words of category c behind the Word interface.
func (r *Repository) Load(c model.Category) []model.Word {
	switch c {
	case model.CategoryVerbs:
		return asWords(r.LoadVerbs())
	case model.CategoryAdjectives:
		return asWords(r.LoadAdjectives())
	default:
		return asWords(r.LoadNouns())
	}
}

func asWords[W model.Word](in []W) []model.Word {
	out := make([]model.Word, len(in))
	for i, w := range in {
		out[i] = w
	}
	return out
}

type parseFunc[W model.Word] func(io.Reader) ([]W, int, error)

func load[W model.Word](r *Repository, c model.Category, parse parseFunc[W]) []W {
	path := r.Path(c)
	words, skipped, err := loadFile(path, parse)
	if err != nil {
		r.logger.Warn("word list unavailable", "category", string(c), "path", path, "err", err)
		return nil
	}
	if skipped > 0 {
		r.logger.Warn("skipped invalid rows", "category", string(c), "path", path, "rows", skipped)
	}
	r.logger.Debug("word list loaded", "category", string(c), "path", path, "words", len(words))
	return words
}

func loadFile[W model.Word](path string, parse parseFunc[W]) ([]W, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", model.ErrDataUnavailable, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	words, skipped, err := parse(file)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %w", model.ErrDataUnavailable, path, err)
	}
	return words, skipped, nil
}

// table is a CSV body addressed by header name.
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader, required ...string) (table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return table{}, fmt.Errorf("missing header row")
		}
		return table{}, fmt.Errorf("read header: %w", err)
	}
	t := table{index: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		t.index[name] = i
	}
	for _, name := range required {
		if _, ok := t.index[name]; !ok {
			return table{}, fmt.Errorf("missing column %q", name)
		}
	}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("read row: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

func (t table) get(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t table) lemma(row []string, germanColumn string) (model.Lemma, bool) {
	german := t.get(row, germanColumn)
	if german == "" {
		return model.Lemma{}, false
	}
	freq, err := strconv.Atoi(t.get(row, colFrequency))
	if err != nil || !model.ValidFrequency(freq) {
		return model.Lemma{}, false
	}
	return model.Lemma{
		Text:        german,
		Translation: t.get(row, colMeaning),
		Tier:        freq,
	}, true
}

// ParseNouns decodes a noun CSV. It returns the valid nouns and the number
// of skipped rows.
func ParseNouns(r io.Reader) ([]model.Noun, int, error) {
	t, err := readTable(r, colNoun, colArticle, colMeaning, colFrequency)
	if err != nil {
		return nil, 0, err
	}
	nouns := make([]model.Noun, 0, len(t.rows))
	skipped := 0
	for _, row := range t.rows {
		lemma, ok := t.lemma(row, colNoun)
		article, aok := model.ParseArticle(t.get(row, colArticle))
		if !ok || !aok {
			skipped++
			continue
		}
		nouns = append(nouns, model.Noun{
			Lemma:   lemma,
			Article: article,
			Plural:  t.get(row, colPlural),
		})
	}
	return nouns, skipped, nil
}

// ParseVerbs decodes a verb CSV.
func ParseVerbs(r io.Reader) ([]model.Verb, int, error) {
	t, err := readTable(r, colVerb, colMeaning, colPrateritum, colParticiple, colFrequency)
	if err != nil {
		return nil, 0, err
	}
	verbs := make([]model.Verb, 0, len(t.rows))
	skipped := 0
	for _, row := range t.rows {
		lemma, ok := t.lemma(row, colVerb)
		if !ok {
			skipped++
			continue
		}
		verbs = append(verbs, model.Verb{
			Lemma:          lemma,
			Regular:        parseFlag(t.get(row, colRegular)),
			Prateritum:     t.get(row, colPrateritum),
			Participle:     t.get(row, colParticiple),
			PerfectAux:     t.get(row, colPerfect),
			CaseGovernment: t.get(row, colCase),
			Reflexive:      parseFlag(t.get(row, colReflexive)),
		})
	}
	return verbs, skipped, nil
}

// ParseAdjectives decodes an adjective CSV.
func ParseAdjectives(r io.Reader) ([]model.Adjective, int, error) {
	t, err := readTable(r, colAdjective, colMeaning, colFrequency)
	if err != nil {
		return nil, 0, err
	}
	adjectives := make([]model.Adjective, 0, len(t.rows))
	skipped := 0
	for _, row := range t.rows {
		lemma, ok := t.lemma(row, colAdjective)
		if !ok {
			skipped++
			continue
		}
		adjectives = append(adjectives, model.Adjective{
			Lemma:       lemma,
			Comparative: t.get(row, colComparative),
			Superlative: t.get(row, colSuperlative),
		})
	}
	return adjectives, skipped, nil
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sì", "si", "s", "yes", "y", "true", "x", "1":
		return true
	default:
		return false
	}
}
