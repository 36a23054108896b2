package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/coverage-cli/internal/model"
	"github.com/sells-group/coverage-cli/internal/router"
)

func TestSplitBullets(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			"dash bullets",
			"- first line\n- second line",
			[]string{"first line", "second line"},
		},
		{
			"mixed glyphs and blanks",
			"• one\n\n* two\n– three\n",
			[]string{"one", "two", "three"},
		},
		{
			"plain lines kept",
			"Exit: Jane Doe, President\nNote: served twelve years",
			[]string{"Exit: Jane Doe, President", "Note: served twelve years"},
		},
		{
			"glyph-only lines dropped",
			"-\n- real content",
			[]string{"real content"},
		},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, splitBullets(tt.input))
		})
	}
}

func TestApplyExecChangeQualifiers(t *testing.T) {
	article := model.Article{
		Title:   "Shakeup at the network",
		Content: "The company said former President of Content Jane Doe will depart this month.",
	}

	tests := []struct {
		name   string
		bullet string
		expect string
	}{
		{
			"former restored from article text",
			"Exit: Jane Doe, President of Content",
			"Exit: Jane Doe, former President of Content",
		},
		{
			"already qualified left alone",
			"Exit: Jane Doe, former President of Content",
			"Exit: Jane Doe, former President of Content",
		},
		{
			"name not qualified in article",
			"Hiring: Pat Quinn, Chief Financial Officer",
			"Hiring: Pat Quinn, Chief Financial Officer",
		},
		{
			"non-header bullet untouched",
			"served twelve years at the company",
			"served twelve years at the company",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyExecChangeQualifiers([]string{tt.bullet}, article)
			require.Len(t, got, 1)
			assert.Equal(t, tt.expect, got[0])
		})
	}
}

func TestSummarize_AppliesQualifiersForExecRoutes(t *testing.T) {
	ai := &mockClient{responses: map[string]string{
		"summarizer": "- Exit: Jane Doe, President of Content\n- Note: served twelve years",
	}}
	p := newTestPipeline(t, ai)

	article := testArticle()
	article.Content = "Former President of Content Jane Doe is leaving."

	route := router.Route{Rule: "exec_changes", Style: router.StyleExecChange, Prompt: router.PromptExecChanges}
	bullets, _, err := p.summarize(context.Background(), article, route)
	require.NoError(t, err)
	require.Len(t, bullets, 2)
	assert.Equal(t, "Exit: Jane Doe, former President of Content", bullets[0])
	assert.Equal(t, "Note: served twelve years", bullets[1])

	req := ai.requests[0]
	assert.Equal(t, "summarizer", req.Model)
	assert.Contains(t, req.Messages[0].Content, "Published: 2026-02-10T12:00:00Z")
}

func TestPromptFor_FallsBackToGeneral(t *testing.T) {
	assert.Equal(t, summaryPrompts[router.PromptGeneralNews], promptFor("no_such_prompt"))
	assert.NotEqual(t, summaryPrompts[router.PromptGeneralNews], promptFor(router.PromptInterview))
}
