// Package aggregator folds stored coverage records into an ordered report
// document for one buyer and quarter, plus a needs-review list for entries
// that cannot be placed confidently. Build is pure: the same records always
// produce the same document.
package aggregator

import (
	"sort"
	"strings"

	"github.com/sells-group/coverage-cli/internal/model"
	"github.com/sells-group/coverage-cli/internal/taxonomy"
)

// Entry is one placed coverage item: a headline line plus optional follow-on
// note lines.
type Entry struct {
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	PublishedAt model.Date `json:"published_at"`
	Section     string     `json:"section"`
	Subheading  string     `json:"subheading"`
	Medium      string     `json:"medium"`
	NoteLines   []string   `json:"note_lines,omitempty"`
}

// SubheadingGroup holds one subheading's entries, newest first.
type SubheadingGroup struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// MediumGroup holds one medium lane inside a section.
type MediumGroup struct {
	Name        string            `json:"name"`
	Subheadings []SubheadingGroup `json:"subheadings"`
}

// SectionGroup is one report section in fixed order.
type SectionGroup struct {
	Key    string        `json:"key"`
	Title  string        `json:"title"`
	Media  []MediumGroup `json:"media"`
	Number int           `json:"number"`
}

// Document is the fully ordered report model for one buyer and quarter.
type Document struct {
	Buyer    string         `json:"buyer"`
	Quarter  string         `json:"quarter"`
	Sections []SectionGroup `json:"sections"`
}

// ReviewItem flags an article a human must place or confirm.
type ReviewItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Buyer  string `json:"buyer"`
	Reason string `json:"reason"`
}

// Review reasons.
const (
	ReasonMissingDate = "Missing published date; cannot place."
	ReasonWeakMatch   = "Weak keyword match; please confirm inclusion."
)

// Result pairs the document with its review list.
type Result struct {
	Document Document     `json:"document"`
	Reviews  []ReviewItem `json:"reviews,omitempty"`
}

// mediumSections are the sections whose entries group into medium lanes.
// Everything else collapses into the General lane.
var mediumSections = map[string]bool{
	taxonomy.SectionContent:  true,
	taxonomy.SectionStrategy: true,
}

var nonContentSections = map[string]bool{
	taxonomy.SectionOrg:        true,
	taxonomy.SectionMA:         true,
	taxonomy.SectionInvestor:   true,
	taxonomy.SectionHighlights: true,
}

// Build aggregates records into the report document for one buyer/quarter.
// Records with only a weak company match divert whole to needs-review, and
// facts without any usable date divert individually.
func Build(records []model.Record, buyer, quarter string) Result {
	res := Result{Document: Document{Buyer: buyer, Quarter: quarter}}

	buckets := map[bucketKey][]Entry{}

	for _, rec := range records {
		if rec.CompanyMatch == model.MatchWeak {
			res.Reviews = append(res.Reviews, ReviewItem{
				Title:  rec.Title,
				URL:    rec.URL,
				Buyer:  buyer,
				Reason: ReasonWeakMatch,
			})
			continue
		}
		for _, fact := range rec.Facts {
			entry, ok := buildEntry(rec, fact)
			if !ok {
				res.Reviews = append(res.Reviews, ReviewItem{
					Title:  rec.Title,
					URL:    rec.URL,
					Buyer:  buyer,
					Reason: ReasonMissingDate,
				})
				continue
			}
			key := bucketKey{entry.Section, entry.Medium, entry.Subheading}
			buckets[key] = append(buckets[key], entry)
		}
	}

	for number, sec := range taxonomy.SectionOrder {
		group := SectionGroup{Key: sec.Key, Title: sec.Title, Number: number}

		mediumOrder := []string{"General"}
		if mediumSections[sec.Key] {
			mediumOrder = taxonomy.MediumOrder
		}
		for _, medium := range mediumOrder {
			var subs []SubheadingGroup
			for _, name := range orderedSubheadings(buckets, sec.Key, medium) {
				entries := buckets[bucketKey{sec.Key, medium, name}]
				// Newest first; ties keep record order.
				sort.SliceStable(entries, func(i, j int) bool {
					return entries[j].PublishedAt.Before(entries[i].PublishedAt)
				})
				subs = append(subs, SubheadingGroup{Name: name, Entries: entries})
			}
			if len(subs) > 0 {
				group.Media = append(group.Media, MediumGroup{Name: medium, Subheadings: subs})
			}
		}
		if len(group.Media) > 0 {
			res.Document.Sections = append(res.Document.Sections, group)
		}
	}
	return res
}

// buildEntry converts one fact into a placed entry. The second return value
// is false when no publish date is available.
func buildEntry(rec model.Record, fact model.Fact) (Entry, bool) {
	published := fact.PublishedAt
	if published.IsZero() {
		published = rec.PublishedAt
	}
	if published.IsZero() {
		return Entry{}, false
	}

	content := strings.TrimSpace(fact.ContentLine)
	bullets := trimmed(fact.SummaryBullets)

	title := content
	var notes []string
	switch {
	case isListFact(fact, content):
		notes = sliceRange(bullets, 1, 2)
	case isInterviewFact(content):
		if title == "" {
			title = rec.Title
		}
		notes = sliceRange(bullets, 1, len(bullets))
	case isGeneralNewsFact(fact, content), isNonContentFact(fact, content):
		notes = sliceRange(bullets, 1, 4)
	default:
		title = rec.Title
		if joined := strings.Join(sliceRange(bullets, 0, 3), " "); joined != "" {
			notes = []string{joined}
		}
	}

	medium := "General"
	if mediumSections[fact.Section] {
		medium = taxonomy.InferMedium(fact.CategoryPath)
	}
	subheading := strings.TrimSpace(fact.Subheading)
	if subheading == "" {
		subheading = taxonomy.GeneralSubheading
	}
	return Entry{
		Title:       title,
		URL:         rec.URL,
		PublishedAt: published,
		Section:     fact.Section,
		Subheading:  subheading,
		Medium:      medium,
		NoteLines:   notes,
	}, true
}

// isListFact reports whether the fact renders as a title item line. The
// colon check keeps malformed list output on the plain-entry path.
func isListFact(fact model.Fact, content string) bool {
	return taxonomy.IsContentList(fact.Section, fact.Subheading) && strings.Contains(content, ":")
}

func isInterviewFact(content string) bool {
	lower := strings.ToLower(content)
	return strings.HasPrefix(lower, "interview:") || strings.HasPrefix(lower, "commentary:")
}

func isGeneralNewsFact(fact model.Fact, content string) bool {
	return fact.Subheading == taxonomy.GeneralSubheading &&
		mediumSections[fact.Section] && content != ""
}

func isNonContentFact(fact model.Fact, content string) bool {
	return nonContentSections[fact.Section] && content != ""
}

type bucketKey struct {
	section    string
	medium     string
	subheading string
}

// orderedSubheadings lists the populated subheadings of one section/medium
// lane: the preferred ordering first, then extras alphabetically.
func orderedSubheadings(buckets map[bucketKey][]Entry, section, medium string) []string {
	present := map[string]bool{}
	for key := range buckets {
		if key.section == section && key.medium == medium {
			present[key.subheading] = true
		}
	}
	var ordered []string
	for _, name := range taxonomy.SubheadingOrder {
		if present[name] {
			ordered = append(ordered, name)
			delete(present, name)
		}
	}
	var extras []string
	for name := range present {
		extras = append(extras, name)
	}
	sort.Strings(extras)
	return append(ordered, extras...)
}

func trimmed(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// sliceRange returns lines[from:to] clamped to bounds.
func sliceRange(lines []string, from, to int) []string {
	if from > len(lines) {
		from = len(lines)
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return nil
	}
	return append([]string(nil), lines[from:to]...)
}
