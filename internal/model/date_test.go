package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterOf(t *testing.T) {
	tests := []struct {
		month  time.Month
		expect string
	}{
		{time.January, "2026 Q1"},
		{time.March, "2026 Q1"},
		{time.April, "2026 Q2"},
		{time.June, "2026 Q2"},
		{time.July, "2026 Q3"},
		{time.October, "2026 Q4"},
		{time.December, "2026 Q4"},
	}

	for _, tt := range tests {
		ts := time.Date(2026, tt.month, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.expect, QuarterOf(ts))
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := Date{Year: 2026, Month: time.February, Day: 5}

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-02-05"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)
}

func TestDate_ZeroRoundTrip(t *testing.T) {
	raw, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.IsZero())
}

func TestDate_UnmarshalVariants(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-02-05T13:45:00Z"`), &d))
	assert.Equal(t, Date{Year: 2026, Month: time.February, Day: 5}, d)

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"02/05/2026"`), &d))
}

func TestDate_Ordering(t *testing.T) {
	a := Date{Year: 2026, Month: time.January, Day: 31}
	b := Date{Year: 2026, Month: time.February, Day: 1}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2026, 2, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Date{Year: 2026, Month: time.February, Day: 10}, DateOf(ts))
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	rec := Record{
		ID:          "abc",
		Company:     "Netflix",
		Quarter:     "2026 Q1",
		Title:       "Netflix orders drama",
		URL:         "https://example.com/a",
		PublishedAt: Date{Year: 2026, Month: time.February, Day: 10},
		CapturedAt:  time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC),
		Facts: []Fact{{
			FactID:         "fact-1",
			CategoryPath:   "Org -> Exec Changes",
			Section:        "Org",
			Subheading:     "Exec Changes",
			Company:        "Netflix",
			Quarter:        "2026 Q1",
			PublishedAt:    Date{Year: 2026, Month: time.February, Day: 10},
			ContentLine:    "Exit: Jane Doe, President, exited",
			SummaryBullets: []string{"Exit: Jane Doe, President, exited"},
		}},
	}

	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var back Record
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, rec, back)
}
