package pipeline

import "github.com/sells-group/coverage-cli/internal/router"

// classifySystemPrompt drives the category classifier. The model must answer
// with a single JSON object; plain category paths are tolerated downstream.
const classifySystemPrompt = `You are a news-trade classifier.
Return exactly one JSON object with two keys:

{"category":"<full_path_string>", "confidence":<0-1 float>}

Use the exact category spelling and arrows -> from the allowed set:
- Highlights From The Quarter
- Org -> Exec Changes
- Content, Deals & Distribution -> <Film|TV|Specials|International|Sports|Podcasts> -> <Development|Greenlights|Pickups|Dating|Renewals|Cancellations|General News & Strategy>
- Strategy & Miscellaneous News -> <Strategy|Misc. News|General News & Strategy>
- Investor Relations -> <Quarterly Earnings|Company Materials|News Coverage|IR Conferences|Analyst Perspective|General News & Strategy>
- M&A

confidence = probability (0-1) that the chosen category is correct,
rounded to two decimals.

No other keys, no extra text.`

const generalNewsPrompt = `Summarize this entertainment-trade article as short bullet points.
One complete sentence per bullet, most newsworthy first, at most five bullets.
When a bullet belongs to a specific category, prefix it with the category label
and a colon (for example "Greenlights: ..." or "Exec Changes: ...").
If a detail belongs in another section of the quarterly report, prefix that
line with the full category path and a colon
(for example "M&A: ..." or "Investor Relations Quarterly Earnings: ...").
No markdown, no preamble.`

const execChangesPrompt = `Summarize the executive moves in this article.
Start each move on its own line with exactly one of these labels:
Exit:, Promotion:, Hiring:, New Role:
Format: <Label>: <Name>, <new title or role> (<company>).
Keep the word "former" when the article uses it for a person's prior role.
Add supporting context on a following line prefixed "Note:".
No markdown, no preamble.`

const execChangesUnprefixedNotePrompt = `Summarize the executive moves in this article.
Start each move on its own line with exactly one of these labels:
Exit:, Promotion:, Hiring:, New Role:
Format: <Label>: <Name>, <new title or role> (<company>).
Keep the word "former" when the article uses it for a person's prior role.
Add supporting context on following lines without any prefix.
No markdown, no preamble.`

const interviewPrompt = `This article is an interview.
First line: "Interview: <person>, <role> - <topic>".
Then one line per notable statement, paraphrased as a complete sentence.
No markdown, no preamble.`

const commentaryPrompt = `This article is commentary or strategy analysis.
First line: "Commentary: <author or outlet> - <thesis>".
Then one line per key argument, paraphrased as a complete sentence.
No markdown, no preamble.`

const contentFormatterPrompt = `This article announces programming moves.
One line per title, formatted as "<Title>: <one-sentence description>".
Optionally add one "Note:" line after a title with extra context.
If a detail belongs to a different medium or subheading, prefix the line with
it (for example "TV Greenlights: ..." or "Film GNS: ...").
No markdown, no preamble.`

const contentDealsPrompt = `This article covers international content deals or slates.
One line per title or package, formatted as "<Title>: <one-sentence description>".
Preserve every title mentioned; do not collapse a slate into one line.
Optionally add one "Note:" line after a title with extra context.
No markdown, no preamble.`

// summaryPrompts maps router prompt names to prompt text.
var summaryPrompts = map[string]string{
	router.PromptGeneralNews:       generalNewsPrompt,
	router.PromptExecChanges:       execChangesPrompt,
	router.PromptExecChangesNoNote: execChangesUnprefixedNotePrompt,
	router.PromptInterview:         interviewPrompt,
	router.PromptCommentary:        commentaryPrompt,
	router.PromptContentFormatter:  contentFormatterPrompt,
	router.PromptContentDeals:      contentDealsPrompt,
}

// promptFor returns the summarizer prompt for a route, falling back to the
// general prompt for unknown names.
func promptFor(name string) string {
	if text, ok := summaryPrompts[name]; ok {
		return text
	}
	return generalNewsPrompt
}
