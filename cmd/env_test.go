package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/coverage-cli/internal/model"
)

func TestLoadArticleFile_Object(t *testing.T) {
	path := filepath.Join(t.TempDir(), "article.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"title": "Netflix orders drama",
		"source": "Variety",
		"url": "https://example.com/a",
		"content": "body text",
		"published_at": "2026-02-10T12:00:00Z"
	}`), 0o644))

	article, err := loadArticleFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Netflix orders drama", article.Title)
	assert.Equal(t, "https://example.com/a", article.URL)
	require.NotNil(t, article.PublishedAt)
	assert.Equal(t, 2026, article.PublishedAt.Year())
}

func TestLoadArticleFile_SingleElementArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "article.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "t", "url": "https://example.com/a", "content": "c"}]`), 0o644))

	article, err := loadArticleFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", article.URL)
}

func TestLoadArticleFile_Errors(t *testing.T) {
	_, err := loadArticleFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	multi := filepath.Join(t.TempDir(), "multi.json")
	require.NoError(t, os.WriteFile(multi, []byte(`[{"url": "https://a"}, {"url": "https://b"}]`), 0o644))
	_, err = loadArticleFile(multi)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o644))
	_, err = loadArticleFile(bad)
	assert.Error(t, err)
}

func TestCollectArticlePaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "notes.txt", "c.JSON"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	paths, err := collectArticlePaths(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "a.json"), paths[0])
	assert.Equal(t, filepath.Join(dir, "b.json"), paths[1])
	assert.Equal(t, filepath.Join(dir, "c.JSON"), paths[2])
}

func TestFormatRunsList(t *testing.T) {
	var buf bytes.Buffer
	formatRunsList(&buf, []model.Run{{
		ID:         "run-1",
		ArticleURL: "https://example.com/a",
		Company:    "Netflix",
		Quarter:    "2026 Q1",
		Status:     model.RunStatusComplete,
		Facts:      3,
		StartedAt:  time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
	}})

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "complete")
	assert.Contains(t, out, "2026 Q1")
}
