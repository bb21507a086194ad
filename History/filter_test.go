package History_test

import (
	"testing"
	"time"

	"Quill/History"
	"Quill/Models"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func sampleEmails() []Models.EmailRecord {
	return []Models.EmailRecord{
		{Id: 1, Subject: "Q1 Report", Body: "Numbers attached", Tone: "Formal", Timestamp: now.AddDate(0, 0, -2)},
		{Id: 2, Subject: "Thanks", Body: "Appreciate the help", Tone: "Friendly", Timestamp: now.AddDate(0, 0, -20)},
		{Id: 3, Subject: "Deadline", Body: "This requires immediate attention", Tone: "Assertive", Timestamp: now.AddDate(0, -14, 0)},
	}
}

func TestApplySearch(t *testing.T) {
	t.Run("case-insensitive subject match", func(t *testing.T) {
		result := History.Apply(sampleEmails(), History.Filter{Search: "report"}, now)
		require.Len(t, result, 1)
		require.Equal(t, "Q1 Report", result[0].Subject)
	})

	t.Run("matches body too", func(t *testing.T) {
		result := History.Apply(sampleEmails(), History.Filter{Search: "IMMEDIATE"}, now)
		require.Len(t, result, 1)
		require.Equal(t, "Deadline", result[0].Subject)
	})

	t.Run("no match", func(t *testing.T) {
		result := History.Apply(sampleEmails(), History.Filter{Search: "invoice"}, now)
		require.Empty(t, result)
	})
}

func TestApplyTone(t *testing.T) {
	result := History.Apply(sampleEmails(), History.Filter{Tone: "friendly"}, now)
	require.Len(t, result, 1)
	require.Equal(t, "Thanks", result[0].Subject)
}

func TestApplyDateRange(t *testing.T) {
	cases := map[string]int{
		"all":   3,
		"week":  1,
		"month": 2,
		"year":  2,
	}
	for dateRange, expected := range cases {
		result := History.Apply(sampleEmails(), History.Filter{Range: dateRange}, now)
		require.Len(t, result, expected, "range %q", dateRange)
	}
}

func TestFiltersComposeWithAnd(t *testing.T) {
	result := History.Apply(sampleEmails(), History.Filter{Search: "t", Tone: "Friendly", Range: "month"}, now)
	require.Len(t, result, 1)
	require.Equal(t, "Thanks", result[0].Subject)
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	emails := sampleEmails()
	History.Apply(emails, History.Filter{Search: "report"}, now)
	require.Equal(t, sampleEmails(), emails)
}

func TestSortToggles(t *testing.T) {
	emails := []Models.EmailRecord{
		{Subject: "Thanks", Tone: "Friendly", Timestamp: now.AddDate(0, 0, -1)},
		{Subject: "Q1 Report", Tone: "Formal", Timestamp: now.AddDate(0, 0, -2)},
	}

	var state History.SortState
	state.Select("subject")
	sorted := History.Sort(emails, state)
	require.Equal(t, "Q1 Report", sorted[0].Subject)
	require.Equal(t, "Thanks", sorted[1].Subject)

	// Reselecting the same key flips the direction
	state.Select("subject")
	sorted = History.Sort(emails, state)
	require.Equal(t, "Thanks", sorted[0].Subject)
	require.Equal(t, "Q1 Report", sorted[1].Subject)

	// A different key resets to ascending
	state.Select("timestamp")
	require.False(t, state.Descending)
	sorted = History.Sort(emails, state)
	require.Equal(t, "Q1 Report", sorted[0].Subject)
}

func TestSortDoesNotMutateSource(t *testing.T) {
	emails := sampleEmails()
	History.Sort(emails, History.SortState{Key: "subject"})
	require.Equal(t, sampleEmails(), emails)
}
