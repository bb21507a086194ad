package History

import (
	"sort"
	"strings"
	"time"

	"Quill/Models"
)

// Filter describes which archived emails to keep. Zero values disable the
// corresponding check; all active checks must pass.
type Filter struct {
	Search string
	Tone   string
	Range  string // "all", "week", "month" or "year"
}

// Apply returns the emails matching the filter. The source slice is never
// mutated; now anchors the date-range cutoff so the function stays pure.
func Apply(emails []Models.EmailRecord, filter Filter, now time.Time) []Models.EmailRecord {
	cutoff, hasCutoff := rangeCutoff(filter.Range, now)
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	result := make([]Models.EmailRecord, 0, len(emails))
	for _, email := range emails {
		if search != "" &&
			!strings.Contains(strings.ToLower(email.Subject), search) &&
			!strings.Contains(strings.ToLower(email.Body), search) {
			continue
		}
		if filter.Tone != "" && !strings.EqualFold(email.Tone, filter.Tone) {
			continue
		}
		if hasCutoff && email.Timestamp.Before(cutoff) {
			continue
		}
		result = append(result, email)
	}
	return result
}

func rangeCutoff(dateRange string, now time.Time) (time.Time, bool) {
	switch dateRange {
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// SortState remembers the selected sort key and direction. Selecting the same
// key again toggles the direction; a new key resets to ascending.
type SortState struct {
	Key        string // "timestamp", "subject" or "tone"
	Descending bool
}

func (s *SortState) Select(key string) {
	if s.Key == key {
		s.Descending = !s.Descending
		return
	}
	s.Key = key
	s.Descending = false
}

// Sort returns a sorted copy of emails according to the sort state.
func Sort(emails []Models.EmailRecord, state SortState) []Models.EmailRecord {
	sorted := make([]Models.EmailRecord, len(emails))
	copy(sorted, emails)

	less := func(a, b Models.EmailRecord) bool {
		switch state.Key {
		case "subject":
			return strings.ToLower(a.Subject) < strings.ToLower(b.Subject)
		case "tone":
			return strings.ToLower(a.Tone) < strings.ToLower(b.Tone)
		default:
			return a.Timestamp.Before(b.Timestamp)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if state.Descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}
