package pipeline

import (
	"strings"

	"github.com/sells-group/coverage-cli/internal/model"
)

// mojibakeReplacements maps known bad encoding sequences to ASCII-safe
// punctuation. Feed exports double-encode smart quotes and dashes; the
// sequences below cover every variant seen in production captures. Escapes
// are explicit because several sequences end in invisible control bytes.
var mojibakeReplacements = []struct {
	raw     string
	cleaned string
}{
	{"\u0192?Ts", "'s"},
	{"\u0192?~s", "'s"},
	{"\u0192?s", "'s"},
	{"\u0192?T", "'"},
	{"\u0192?o", `"`},
	{"\u0192??", `"`},
	{"\u0192?\u00dd", "--"},
	{"\u00e2\u20ac\u0153", `"`}, // smart open quote
	{"\u00e2\u20ac\u009d", `"`}, // smart close quote
	{"\u00e2\u20ac\u0099", "'"}, // smart apostrophe
	{"\u00e2\u20ac\u0098", "'"}, // smart open single quote
	{"\u00e2\u20ac\u201d", "--"}, // em dash
	{"\u00e2\u20ac\u201c", "-"},  // en dash
	{"\u00c2", ""}, // stray padding byte
}

// NormalizeText rewrites mojibake sequences and reports how many
// replacements were made.
func NormalizeText(text string) (string, int) {
	if text == "" {
		return text, 0
	}
	replacements := 0
	for _, r := range mojibakeReplacements {
		if n := strings.Count(text, r.raw); n > 0 {
			replacements += n
			text = strings.ReplaceAll(text, r.raw, r.cleaned)
		}
	}
	return text, replacements
}

// NormalizeArticle returns the article with title and content cleaned, plus
// the total replacement count for logging.
func NormalizeArticle(article model.Article) (model.Article, int) {
	title, titleCount := NormalizeText(article.Title)
	content, contentCount := NormalizeText(article.Content)
	article.Title = title
	article.Content = content
	return article, titleCount + contentCount
}
