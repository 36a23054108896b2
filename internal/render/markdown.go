// Package render turns an aggregated coverage document into delivery
// artifacts: a markdown report and a needs-review spreadsheet.
package render

import (
	"fmt"
	"strings"

	"github.com/sells-group/coverage-cli/internal/aggregator"
	"github.com/sells-group/coverage-cli/internal/model"
	"github.com/sells-group/coverage-cli/internal/taxonomy"
)

// monthRanges maps a quarter token to its display month range.
var monthRanges = map[string]string{
	"Q1": "January – March",
	"Q2": "April – June",
	"Q3": "July – September",
	"Q4": "October – December",
}

// Markdown renders the full report document. Structure follows the delivery
// format: numbered section headings, medium headings inside the content and
// strategy sections, bold subheading labels, and one line per entry with an
// (M/D) date suffix followed by its note lines.
func Markdown(doc aggregator.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s News & Updates\n\n", doc.Quarter)
	fmt.Fprintf(&b, "%s\n\n", monthRangeText(doc.Quarter))

	for _, section := range doc.Sections {
		fmt.Fprintf(&b, "## %d. %s\n\n", section.Number, section.Title)

		grouped := section.Key == taxonomy.SectionContent || section.Key == taxonomy.SectionStrategy
		for _, medium := range section.Media {
			if grouped {
				fmt.Fprintf(&b, "### %s\n\n", medium.Name)
				for _, sub := range medium.Subheadings {
					fmt.Fprintf(&b, "**%s**\n\n", sub.Name)
					for _, entry := range sub.Entries {
						writeEntryLine(&b, entry)
						for _, note := range entry.NoteLines {
							fmt.Fprintf(&b, "%s\n", note)
						}
						b.WriteString("\n")
					}
				}
				continue
			}

			for _, sub := range medium.Subheadings {
				if section.Key != taxonomy.SectionHighlights {
					fmt.Fprintf(&b, "### %s\n\n", sub.Name)
				}
				for _, entry := range sub.Entries {
					writeBulletEntry(&b, section.Key, sub.Name, entry)
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// writeEntryLine renders a content-section entry. Title items keep their
// label prefix; interview and commentary labels render italic.
func writeEntryLine(b *strings.Builder, entry aggregator.Entry) {
	date := formatMD(entry.PublishedAt)
	label, rest, ok := strings.Cut(entry.Title, ":")
	if !ok {
		fmt.Fprintf(b, "%s (%s)\n", entry.Title, date)
		return
	}
	label = strings.TrimSpace(label)
	rest = strings.TrimLeft(rest, " ")
	switch strings.ToLower(label) {
	case "interview", "commentary":
		fmt.Fprintf(b, "*%s:* **%s (%s)**\n", label, rest, date)
	default:
		fmt.Fprintf(b, "***%s:*** %s (%s)\n", label, rest, date)
	}
}

// writeBulletEntry renders a non-content entry as a bullet. Exec-change
// entries inline their first note after the date.
func writeBulletEntry(b *strings.Builder, sectionKey, subheading string, entry aggregator.Entry) {
	date := formatMD(entry.PublishedAt)
	notes := entry.NoteLines
	inline := ""
	if sectionKey == taxonomy.SectionOrg && strings.TrimSpace(subheading) == "Exec Changes" && len(notes) > 0 {
		inline = strings.TrimSpace(notes[0])
		notes = notes[1:]
	}
	if inline != "" {
		fmt.Fprintf(b, "- %s (%s) %s\n", entry.Title, date, inline)
	} else {
		fmt.Fprintf(b, "- %s (%s)\n", entry.Title, date)
	}
	for _, note := range notes {
		if note = strings.TrimSpace(note); note != "" {
			fmt.Fprintf(b, "  %s\n", note)
		}
	}
}

// ReviewsText renders the consolidated needs-review list, one line per item.
func ReviewsText(items []aggregator.ReviewItem) string {
	if len(items) == 0 {
		return "No review items.\n"
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s: %s (%s) -- %s\n", item.Buyer, item.Title, item.URL, item.Reason)
	}
	return b.String()
}

func formatMD(d model.Date) string {
	return fmt.Sprintf("%d/%d", d.Month, d.Day)
}

func monthRangeText(quarter string) string {
	fields := strings.Fields(quarter)
	if len(fields) < 2 {
		return "January – March"
	}
	months, ok := monthRanges[fields[1]]
	if !ok {
		months = "January – March"
	}
	return months + " " + fields[0]
}
