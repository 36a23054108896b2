package matcher

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/coverage-cli/internal/model"
)

func testConfig() Config {
	return Config{Buyers: []Keywords{
		{Buyer: "Netflix", Terms: []string{"netflix"}},
		{Buyer: "Max", Terms: []string{"max", "hbo"}},
		{Buyer: "Paramount", Terms: []string{"paramount", "cbs"}},
	}}
}

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := New(testConfig())
	require.NoError(t, err)
	return m
}

func article(title, body string) model.Article {
	published := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	return model.Article{
		Title:       title,
		URL:         "https://example.com/article",
		Content:     body,
		PublishedAt: &published,
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Buyers: []Keywords{{Buyer: "", Terms: []string{"x"}}}})
	assert.Error(t, err)

	_, err = New(Config{Buyers: []Keywords{{Buyer: "Empty", Terms: []string{" "}}}})
	assert.Error(t, err)
}

func TestInfer_TitleBeatsBodyFrequency(t *testing.T) {
	m := newTestMatcher(t)

	body := strings.Repeat("paramount said paramount would paramount. ", 20) + "netflix"
	buyer, strength := m.Infer(article("Netflix orders new drama", body))
	assert.Equal(t, "Netflix", buyer)
	assert.Equal(t, model.MatchStrong, strength)
}

func TestInfer_LeadIsStrong(t *testing.T) {
	m := newTestMatcher(t)

	buyer, strength := m.Infer(article("Streaming wars continue", "Netflix announced a slate of renewals today."))
	assert.Equal(t, "Netflix", buyer)
	assert.Equal(t, model.MatchStrong, strength)
}

func TestInfer_BodyOnlyIsWeak(t *testing.T) {
	m := newTestMatcher(t)

	body := strings.Repeat("filler text about television industry trends. ", 20) + "netflix was mentioned in passing."
	buyer, strength := m.Infer(article("Industry roundup", body))
	assert.Equal(t, "Netflix", buyer)
	assert.Equal(t, model.MatchWeak, strength)
}

func TestInfer_NoMatch(t *testing.T) {
	m := newTestMatcher(t)

	buyer, strength := m.Infer(article("Local news", "Nothing relevant here."))
	assert.Equal(t, Unknown, buyer)
	assert.Equal(t, model.MatchNone, strength)
}

func TestInfer_HostCountsAsTitleTier(t *testing.T) {
	m := newTestMatcher(t)

	a := article("A headline with no keywords", "No keywords in the body either.")
	a.URL = "https://about.netflix.com/news/something"
	buyer, strength := m.Infer(a)
	assert.Equal(t, "Netflix", buyer)
	assert.Equal(t, model.MatchStrong, strength)
}

func TestInfer_EarlierTitleHitWins(t *testing.T) {
	m := newTestMatcher(t)

	buyer, _ := m.Infer(article("Paramount and Netflix strike deal", "details follow."))
	assert.Equal(t, "Paramount", buyer)
}

func TestMatch_SplitsStrongAndWeak(t *testing.T) {
	m := newTestMatcher(t)

	body := strings.Repeat("lots of words before anything interesting happens here today. ", 10) + "cbs announced something."
	res := m.Match(article("Netflix earnings beat expectations", body))
	assert.Equal(t, []string{"Netflix"}, res.Strong)
	assert.Equal(t, []string{"Paramount"}, res.Weak)
}

func TestFindWord_NoSubstringMatches(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		expect   int
	}{
		{"whole word", "max announced a new series", "max", 0},
		{"embedded in longer word", "maxwell announced a new series", "max", -1},
		{"suffix of longer word", "climax of the season", "max", -1},
		{"word after skipped embedding", "maxwell said max agreed", "max", 13},
		{"punctuation boundary", "deal with max.", "max", 10},
		{"empty needle", "anything", "", -1},
		{"empty haystack", "", "max", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, findWord(tt.haystack, tt.needle))
		})
	}
}

func TestMatchText(t *testing.T) {
	m := newTestMatcher(t)

	got := m.MatchText("HBO and CBS both covered the Maxwell trial")
	assert.Equal(t, []string{"Max", "Paramount"}, got)
}
