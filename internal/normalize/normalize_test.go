package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Haus ", "haus"},
		{"Maedchen", "mädchen"},
		{"schoen", "schön"},
		{"Tuer", "tür"},
		{"Strasse", "straße"},
		{"STRASSE", "straße"},
		{"Mädchen", "mädchen"},
		{"aee", "äe"},
		{"ssss", "ßß"},
		{"über", "über"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

func TestNormalizeOrderAppliesOnRewrittenText(t *testing.T) {
	assert.Equal(t, "blaü", Normalize("blaue"))
	assert.Equal(t, "pöt", Normalize("poet"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", " ", "Haus", "Maedchen", "aaee", "oeue", "Strassse", "Ärger",
		"GROSSE", "Fuesse", "queen", "Moebel ", "ae oe ue ss", "ẞ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestComparisonForms(t *testing.T) {
	assert.Equal(t, []string{""}, ComparisonForms(""))
	assert.Equal(t, []string{"tür"}, ComparisonForms(" tür "))
	assert.Equal(t, []string{"Tuer", "tür"}, ComparisonForms("Tuer"))
}

func TestUmlautFold(t *testing.T) {
	assert.Equal(t, "Madchen", UmlautFold("Mädchen"))
	assert.Equal(t, "Ubung", UmlautFold("Übung"))
	assert.Equal(t, "Strasse", UmlautFold("Straße"))
	assert.Equal(t, "schon", UmlautFold("schön"))
	assert.Equal(t, "Haus", UmlautFold("Haus"))
	assert.Equal(t, "uber", UmlautFold("über"))
}

func TestEqualIgnoringSpellingVariants(t *testing.T) {
	require.True(t, EqualIgnoringSpellingVariants("Tuer", "Tür"))
	require.True(t, EqualIgnoringSpellingVariants("Strasse", "Straße"))
	require.True(t, EqualIgnoringSpellingVariants("Haus", "Haus"))
	require.False(t, EqualIgnoringSpellingVariants("Hund", "Katze"))
	require.False(t, EqualIgnoringSpellingVariants("", "Haus"))
	require.True(t, EqualIgnoringSpellingVariants("", ""))
}
