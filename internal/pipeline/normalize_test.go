package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/coverage-cli/internal/model"
)

// Inputs use explicit escapes because several mojibake sequences end in
// invisible control bytes.
func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		expect  string
		changed int
	}{
		{"clean text untouched", "Netflix orders new drama", "Netflix orders new drama", 0},
		{"possessive", "the network\u0192?Ts slate", "the network's slate", 1},
		{"smart quotes", "\u00e2\u20ac\u0153quality first\u00e2\u20ac\u009d", `"quality first"`, 2},
		{"smart apostrophe", "it\u00e2\u20ac\u0099s official", "it's official", 1},
		{"em dash", "renewed \u00e2\u20ac\u201d again", "renewed -- again", 1},
		{"en dash", "2024\u00e2\u20ac\u201c2026", "2024-2026", 1},
		{"stray padding byte", "deal\u00c2 signed", "deal signed", 1},
		{"empty", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := NormalizeText(tt.input)
			assert.Equal(t, tt.expect, got)
			assert.Equal(t, tt.changed, n)
		})
	}
}

func TestNormalizeArticle(t *testing.T) {
	article := model.Article{
		Title:   "Netflix\u0192?Ts big quarter",
		Content: "The CEO said \u00e2\u20ac\u0153more to come\u00e2\u20ac\u009d.",
	}

	got, n := NormalizeArticle(article)
	assert.Equal(t, "Netflix's big quarter", got.Title)
	assert.Equal(t, `The CEO said "more to come".`, got.Content)
	assert.Equal(t, 3, n)
}
