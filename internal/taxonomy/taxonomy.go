// Package taxonomy holds the fixed report taxonomy: sections, their allowed
// subheadings, and the medium lanes used by the content-heavy sections. The
// tables are package constants; callers never mutate them.
package taxonomy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical section keys.
const (
	SectionHighlights = "Highlights"
	SectionOrg        = "Org"
	SectionContent    = "Content / Deals / Distribution"
	SectionStrategy   = "Strategy & Miscellaneous News"
	SectionInvestor   = "Investor Relations"
	SectionMA         = "M&A"
)

// GeneralSubheading is the catch-all subheading used when a path carries none.
const GeneralSubheading = "General News & Strategy"

// SectionOrder is the fixed report ordering of sections, with display titles.
var SectionOrder = []struct {
	Key   string
	Title string
}{
	{SectionHighlights, "Highlights From The Quarter"},
	{SectionOrg, "Org"},
	{SectionContent, "Content, Deals & Distribution"},
	{SectionStrategy, "Strategy & Miscellaneous News"},
	{SectionInvestor, "Investor Relations"},
	{SectionMA, "M&A"},
}

// MediumOrder is the fixed ordering of medium lanes within content-heavy
// sections. "General" is the lane for entries with no specific medium.
var MediumOrder = []string{"Film", "TV", "Specials", "International", "Sports/Podcasts", "General"}

// SubheadingOrder is the preferred ordering of subheadings inside one medium
// lane; subheadings not listed here sort alphabetically after these.
var SubheadingOrder = []string{
	GeneralSubheading,
	"Development",
	"Pickups",
	"Dating",
	"Greenlights",
	"Renewals",
	"Cancellations",
}

// ContentListSubheadings are the subheadings whose generated output is a list
// of title items rather than prose.
var ContentListSubheadings = map[string]bool{
	"Development":   true,
	"Greenlights":   true,
	"Pickups":       true,
	"Dating":        true,
	"Renewals":      true,
	"Cancellations": true,
}

// MediumLanes maps recognized medium tokens to their canonical lane name.
var MediumLanes = map[string]string{
	"tv":            "TV",
	"film":          "Film",
	"specials":      "Specials",
	"international": "International",
	"sports":        "Sports/Podcasts",
	"podcasts":      "Sports/Podcasts",
}

var allowedSubheadings = map[string]bool{
	GeneralSubheading:     true,
	"Exec Changes":        true,
	"Development":         true,
	"Greenlights":         true,
	"Pickups":             true,
	"Dating":              true,
	"Renewals":            true,
	"Cancellations":       true,
	"Film":                true,
	"TV":                  true,
	"International":       true,
	"Sports":              true,
	"Podcasts":            true,
	"Strategy":            true,
	"Misc. News":          true,
	"Quarterly Earnings":  true,
	"Company Materials":   true,
	"News Coverage":       true,
	"Analyst Perspective": true,
	"IR Conferences":      true,
	"None":                true,
}

var sectionAliases = map[string]string{
	"Content, Deals & Distribution":  SectionContent,
	SectionContent:                   SectionContent,
	SectionStrategy:                  SectionStrategy,
	SectionInvestor:                  SectionInvestor,
	SectionOrg:                       SectionOrg,
	SectionMA:                        SectionMA,
	"Highlights From The Quarter":    SectionHighlights,
	"Highlights From This Quarter":   SectionHighlights,
	SectionHighlights:                SectionHighlights,
}

var titleCaser = cases.Title(language.AmericanEnglish)

// TitleCase canonicalizes a lowercased taxonomy token ("greenlights" ->
// "Greenlights", "misc. news" -> "Misc. News").
func TitleCase(token string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(token)))
}

// Normalize canonicalizes an arrow-delimited category path: segments trimmed,
// empties dropped, joined with " -> ".
func Normalize(path string) string {
	parts := strings.Split(path, "->")
	kept := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " -> ")
}

// ParsePath maps a classifier category path to a (section, subheading) pair.
// Unknown sections pass through untouched; unknown or missing subheadings
// collapse to the general catch-all. An empty path lands in Strategy & Misc.
func ParsePath(path string) (section, subheading string) {
	if strings.TrimSpace(path) == "" {
		return SectionStrategy, GeneralSubheading
	}
	parts := strings.Split(path, "->")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	section = parts[0]
	if canonical, ok := sectionAliases[section]; ok {
		section = canonical
	}
	if strings.HasPrefix(strings.ToLower(section), "highlights") {
		section = SectionHighlights
	}

	if len(parts) > 1 {
		subheading = parts[len(parts)-1]
	}
	if subheading == section {
		subheading = ""
	}
	if subheading == "" && len(parts) > 1 {
		subheading = parts[1]
	}
	if subheading == "" {
		return section, ""
	}

	lowered := strings.ToLower(subheading)
	switch {
	case strings.HasPrefix(lowered, "analyst"):
		subheading = "Analyst Perspective"
	case strings.Contains(lowered, "conference"):
		subheading = "IR Conferences"
	case strings.Contains(lowered, "misc"):
		subheading = "Misc. News"
	case strings.HasPrefix(lowered, "strategy"):
		subheading = "Strategy"
	}
	if !allowedSubheadings[subheading] {
		subheading = GeneralSubheading
	}
	return section, subheading
}

// InferMedium maps a category path to its medium lane for report grouping.
func InferMedium(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.Contains(lower, "film"), strings.Contains(lower, "movie"), strings.Contains(lower, "theatrical"):
		return "Film"
	case strings.Contains(lower, "tv"), strings.Contains(lower, "television"), strings.Contains(lower, "series"):
		return "TV"
	case strings.Contains(lower, "specials"):
		return "Specials"
	case strings.Contains(lower, "international"):
		return "International"
	case strings.Contains(lower, "sports"), strings.Contains(lower, "podcast"):
		return "Sports/Podcasts"
	default:
		return "General"
	}
}

// IsContentList reports whether a (section, subheading) pair denotes a
// title-item list category (greenlights, pickups, and so on).
func IsContentList(section, subheading string) bool {
	return section == SectionContent && ContentListSubheadings[subheading]
}

// FormatDisplay renders a category path for delivery output. The top-level
// content section renders with commas, slash-joined segments split apart, and
// empty paths fall back to the general label.
func FormatDisplay(path string) string {
	if path == "" {
		return GeneralSubheading
	}
	raw := strings.Split(path, "->")
	var parts []string
	for i, part := range raw {
		part = strings.TrimSpace(part)
		if i == 0 && strings.HasPrefix(part, "Content, Deals & Distribution") {
			parts = append(parts, "Content, Deals, Distribution")
			continue
		}
		if part == "Deals & Distribution" {
			parts = append(parts, "Deals, Distribution")
			continue
		}
		if strings.Contains(part, "/") {
			for _, sub := range strings.Split(part, "/") {
				if sub = strings.TrimSpace(sub); sub != "" {
					parts = append(parts, sub)
				}
			}
			continue
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " -> ")
}
