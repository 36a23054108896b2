package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/coverage-cli/internal/model"
	"github.com/sells-group/coverage-cli/internal/taxonomy"
)

func day(d int) model.Date {
	return model.Date{Year: 2026, Month: time.February, Day: d}
}

func record(title, url string, facts ...model.Fact) model.Record {
	return model.Record{
		ID:           url,
		Company:      "Netflix",
		Quarter:      "2026 Q1",
		Title:        title,
		URL:          url,
		PublishedAt:  day(10),
		CompanyMatch: model.MatchStrong,
		Facts:        facts,
	}
}

func listFact(content string, d model.Date) model.Fact {
	return model.Fact{
		CategoryPath:   "Content, Deals & Distribution -> TV -> Greenlights",
		Section:        taxonomy.SectionContent,
		Subheading:     "Greenlights",
		PublishedAt:    d,
		ContentLine:    content,
		SummaryBullets: []string{content, "premieres this fall", "ignored third bullet"},
	}
}

func TestBuild_ListFactEntry(t *testing.T) {
	res := Build([]model.Record{
		record("Netflix orders drama", "https://example.com/1", listFact("Show A: drama ordered", day(10))),
	}, "Netflix", "2026 Q1")

	require.Empty(t, res.Reviews)
	require.Len(t, res.Document.Sections, 1)

	sec := res.Document.Sections[0]
	assert.Equal(t, taxonomy.SectionContent, sec.Key)
	assert.Equal(t, 2, sec.Number)
	require.Len(t, sec.Media, 1)
	assert.Equal(t, "TV", sec.Media[0].Name)
	require.Len(t, sec.Media[0].Subheadings, 1)

	entries := sec.Media[0].Subheadings[0].Entries
	require.Len(t, entries, 1)
	assert.Equal(t, "Show A: drama ordered", entries[0].Title)
	// A list entry keeps exactly one note line.
	assert.Equal(t, []string{"premieres this fall"}, entries[0].NoteLines)
}

func TestBuild_InterviewFactKeepsAllNotes(t *testing.T) {
	fact := model.Fact{
		CategoryPath: "Strategy & Miscellaneous News -> Interview",
		Section:      taxonomy.SectionStrategy,
		Subheading:   taxonomy.GeneralSubheading,
		PublishedAt:  day(12),
		ContentLine:  "Interview: CEO on the year ahead",
		SummaryBullets: []string{
			"Interview: CEO on the year ahead",
			"Discussed the ad tier",
			"Sees international growth",
			"Expects flat content spend",
		},
	}
	res := Build([]model.Record{record("CEO interview", "https://example.com/2", fact)}, "Netflix", "2026 Q1")

	require.Len(t, res.Document.Sections, 1)
	entries := res.Document.Sections[0].Media[0].Subheadings[0].Entries
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].NoteLines, 3)
}

func TestBuild_GeneralNewsCapsNotesAtThree(t *testing.T) {
	fact := model.Fact{
		CategoryPath: "Strategy & Miscellaneous News -> General News & Strategy",
		Section:      taxonomy.SectionStrategy,
		Subheading:   taxonomy.GeneralSubheading,
		PublishedAt:  day(12),
		ContentLine:  "Company reorganized its ad sales group",
		SummaryBullets: []string{
			"Company reorganized its ad sales group",
			"one", "two", "three", "four",
		},
	}
	res := Build([]model.Record{record("Reorg news", "https://example.com/3", fact)}, "Netflix", "2026 Q1")

	entries := res.Document.Sections[0].Media[0].Subheadings[0].Entries
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"one", "two", "three"}, entries[0].NoteLines)
}

func TestBuild_MalformedListFactFallsBackToRecordTitle(t *testing.T) {
	fact := listFact("no colon in this line", day(10))
	res := Build([]model.Record{record("Netflix orders drama", "https://example.com/4", fact)}, "Netflix", "2026 Q1")

	entries := res.Document.Sections[0].Media[0].Subheadings[0].Entries
	require.Len(t, entries, 1)
	assert.Equal(t, "Netflix orders drama", entries[0].Title)
	require.Len(t, entries[0].NoteLines, 1)
	assert.Contains(t, entries[0].NoteLines[0], "no colon in this line")
}

func TestBuild_WeakMatchDivertsWholeRecord(t *testing.T) {
	rec := record("Passing mention", "https://example.com/5", listFact("Show A: ordered", day(10)))
	rec.CompanyMatch = model.MatchWeak

	res := Build([]model.Record{rec}, "Netflix", "2026 Q1")

	assert.Empty(t, res.Document.Sections)
	require.Len(t, res.Reviews, 1)
	assert.Equal(t, ReasonWeakMatch, res.Reviews[0].Reason)
	assert.Equal(t, "Netflix", res.Reviews[0].Buyer)
}

func TestBuild_MissingDateDivertsFact(t *testing.T) {
	rec := record("Undated news", "https://example.com/6",
		listFact("Show A: ordered", model.Date{}),
		listFact("Show B: ordered", day(11)),
	)
	rec.PublishedAt = model.Date{}

	res := Build([]model.Record{rec}, "Netflix", "2026 Q1")

	require.Len(t, res.Reviews, 1)
	assert.Equal(t, ReasonMissingDate, res.Reviews[0].Reason)

	entries := res.Document.Sections[0].Media[0].Subheadings[0].Entries
	require.Len(t, entries, 1)
	assert.Equal(t, "Show B: ordered", entries[0].Title)
}

func TestBuild_FactDateFallsBackToRecordDate(t *testing.T) {
	res := Build([]model.Record{
		record("Dated record", "https://example.com/7", listFact("Show A: ordered", model.Date{})),
	}, "Netflix", "2026 Q1")

	require.Empty(t, res.Reviews)
	entries := res.Document.Sections[0].Media[0].Subheadings[0].Entries
	require.Len(t, entries, 1)
	assert.Equal(t, day(10), entries[0].PublishedAt)
}

func TestBuild_NewestFirstWithinSubheading(t *testing.T) {
	res := Build([]model.Record{
		record("older", "https://example.com/8", listFact("Show A: ordered", day(3))),
		record("newer", "https://example.com/9", listFact("Show B: ordered", day(20))),
		record("middle", "https://example.com/10", listFact("Show C: ordered", day(11))),
	}, "Netflix", "2026 Q1")

	entries := res.Document.Sections[0].Media[0].Subheadings[0].Entries
	require.Len(t, entries, 3)
	assert.Equal(t, "Show B: ordered", entries[0].Title)
	assert.Equal(t, "Show C: ordered", entries[1].Title)
	assert.Equal(t, "Show A: ordered", entries[2].Title)
}

func TestBuild_SubheadingPreferredOrder(t *testing.T) {
	mk := func(sub, content string) model.Fact {
		f := listFact(content, day(10))
		f.Subheading = sub
		f.CategoryPath = "Content, Deals & Distribution -> TV -> " + sub
		return f
	}
	res := Build([]model.Record{
		record("mixed", "https://example.com/11",
			mk("Renewals", "Show A: renewed"),
			mk("Development", "Show B: in development"),
			mk("Greenlights", "Show C: ordered"),
		),
	}, "Netflix", "2026 Q1")

	subs := res.Document.Sections[0].Media[0].Subheadings
	require.Len(t, subs, 3)
	assert.Equal(t, "Development", subs[0].Name)
	assert.Equal(t, "Greenlights", subs[1].Name)
	assert.Equal(t, "Renewals", subs[2].Name)
}

func TestBuild_NonContentSectionUsesGeneralLane(t *testing.T) {
	fact := model.Fact{
		CategoryPath:   "Org -> Exec Changes",
		Section:        taxonomy.SectionOrg,
		Subheading:     "Exec Changes",
		PublishedAt:    day(10),
		ContentLine:    "Exit: Jane Doe, President, exited",
		SummaryBullets: []string{"Exit: Jane Doe, President, exited", "served twelve years"},
	}
	res := Build([]model.Record{record("Exec news", "https://example.com/12", fact)}, "Netflix", "2026 Q1")

	require.Len(t, res.Document.Sections, 1)
	sec := res.Document.Sections[0]
	assert.Equal(t, taxonomy.SectionOrg, sec.Key)
	assert.Equal(t, 1, sec.Number)
	require.Len(t, sec.Media, 1)
	assert.Equal(t, "General", sec.Media[0].Name)
	entries := sec.Media[0].Subheadings[0].Entries
	assert.Equal(t, []string{"served twelve years"}, entries[0].NoteLines)
}

func TestBuild_IsPure(t *testing.T) {
	records := []model.Record{
		record("a", "https://example.com/13", listFact("Show A: ordered", day(3))),
		record("b", "https://example.com/14", listFact("Show B: ordered", day(20))),
	}

	first := Build(records, "Netflix", "2026 Q1")
	second := Build(records, "Netflix", "2026 Q1")
	assert.Equal(t, first, second)
}
