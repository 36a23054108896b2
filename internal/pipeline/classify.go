package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/coverage-cli/internal/model"
	"github.com/sells-group/coverage-cli/pkg/anthropic"
)

// classifyContentLimit caps how much article body the classifier sees.
const classifyContentLimit = 4000

// classifierResponse is the expected JSON shape of the classifier output.
type classifierResponse struct {
	Category   string   `json:"category"`
	Confidence *float64 `json:"confidence"`
}

// parseClassifierOutput accepts either the JSON object the prompt asks for or
// a bare category path. Older fine-tunes answered with the path alone, so a
// parse failure is not an error here.
func parseClassifierOutput(text string) (string, *float64) {
	text = strings.TrimSpace(text)
	if stripped, ok := strings.CutPrefix(text, "```json"); ok {
		text = strings.TrimSpace(strings.TrimSuffix(stripped, "```"))
	} else if stripped, ok := strings.CutPrefix(text, "```"); ok {
		text = strings.TrimSpace(strings.TrimSuffix(stripped, "```"))
	}

	if strings.HasPrefix(text, "{") {
		var resp classifierResponse
		if err := json.Unmarshal([]byte(text), &resp); err == nil {
			return strings.TrimSpace(resp.Category), resp.Confidence
		}
	}
	return text, nil
}

// classify calls the classifier model and returns the raw classification.
func (p *Pipeline) classify(ctx context.Context, article model.Article) (model.Classification, anthropic.TokenUsage, error) {
	content := article.Content
	if len(content) > classifyContentLimit {
		content = content[:classifyContentLimit]
	}
	userPrompt := fmt.Sprintf("Title: %s\nSource: %s\nContent: %s",
		article.Title, article.Source, content)

	temperature := 0.0
	resp, err := p.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       p.cfg.Anthropic.ClassifierModel,
		MaxTokens:   200,
		System:      anthropic.CachedSystemBlocks(classifySystemPrompt),
		Messages:    []anthropic.Message{{Role: "user", Content: userPrompt}},
		Temperature: &temperature,
	})
	if err != nil {
		return model.Classification{}, anthropic.TokenUsage{}, eris.Wrap(err, "pipeline: classify article")
	}

	category, confidence := parseClassifierOutput(resp.Text())
	return model.Classification{
		CategoryPath: category,
		Confidence:   confidence,
	}, resp.Usage, nil
}
