package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/coverage-cli/internal/model"
	"github.com/sells-group/coverage-cli/internal/router"
	"github.com/sells-group/coverage-cli/pkg/anthropic"
)

// summarize calls the summarizer model with the routed prompt and returns
// cleaned bullet lines.
func (p *Pipeline) summarize(ctx context.Context, article model.Article, route router.Route) ([]string, anthropic.TokenUsage, error) {
	published := "unknown"
	if article.PublishedAt != nil {
		published = article.PublishedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	userPrompt := fmt.Sprintf("Title: %s\nSource: %s\nPublished: %s\n\n%s",
		article.Title, article.Source, published, article.Content)

	resp, err := p.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.cfg.Anthropic.SummarizerModel,
		MaxTokens: p.cfg.Anthropic.MaxTokens,
		System:    anthropic.CachedSystemBlocks(promptFor(route.Prompt)),
		Messages:  []anthropic.Message{{Role: "user", Content: userPrompt}},
	})
	if err != nil {
		return nil, anthropic.TokenUsage{}, eris.Wrapf(err, "pipeline: summarize with %s", route.Prompt)
	}

	bullets := splitBullets(resp.Text())
	if route.Prompt == router.PromptExecChanges || route.Prompt == router.PromptExecChangesNoNote {
		bullets = applyExecChangeQualifiers(bullets, article)
	}
	return bullets, resp.Usage, nil
}

// splitBullets breaks model output into trimmed lines, stripping any leading
// bullet glyphs.
func splitBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		stripped = strings.TrimSpace(strings.TrimLeft(stripped, "-•–—* "))
		if stripped != "" {
			bullets = append(bullets, stripped)
		}
	}
	return bullets
}

// execHeaderRe matches "<Label>: <Name>, <role>" exec-change headers.
var execHeaderRe = regexp.MustCompile(`^(Exit|Promotion|Hiring|New Role):\s+([^,]+),\s+([^()]+)`)

// applyExecChangeQualifiers restores a "former" qualifier the model dropped.
// The qualifier is only added when the article text uses "former" near the
// person's name.
func applyExecChangeQualifiers(bullets []string, article model.Article) []string {
	if len(bullets) == 0 {
		return bullets
	}
	text := strings.ToLower(article.Title + "\n" + article.Content)
	updated := make([]string, 0, len(bullets))
	for _, bullet := range bullets {
		if strings.Contains(strings.ToLower(bullet), "former") {
			updated = append(updated, bullet)
			continue
		}
		m := execHeaderRe.FindStringSubmatch(bullet)
		if m == nil {
			updated = append(updated, bullet)
			continue
		}
		name := strings.ToLower(strings.TrimSpace(m[2]))
		if name == "" {
			updated = append(updated, bullet)
			continue
		}
		nearName := regexp.MustCompile(`former\s+[^\n]{0,60}` + regexp.QuoteMeta(name))
		if nearName.MatchString(text) {
			prefix, rest, ok := strings.Cut(bullet, ",")
			if ok {
				bullet = prefix + ", former " + strings.TrimLeft(rest, " ")
			}
		}
		updated = append(updated, bullet)
	}
	return updated
}
