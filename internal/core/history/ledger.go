// Package history keeps the per-day count of completed focus intervals.
package history

import (
	"time"
)

// DateKeyLayout formats a local calendar day as YYYY-MM-DD.
const DateKeyLayout = "2006-01-02"

// DateKey returns the calendar day of t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ValidDateKey reports whether key parses as a YYYY-MM-DD day.
func ValidDateKey(key string) bool {
	parsed, err := time.Parse(DateKeyLayout, key)
	return err == nil && parsed.Format(DateKeyLayout) == key
}

// Day is one entry of a LastNDays listing.
type Day struct {
	Key   string
	Count int
}

// Ledger maps date keys to completed focus counts. The zero value is not
// usable; create one with New or FromMap.
type Ledger struct {
	counts map[string]int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{counts: make(map[string]int)}
}

// FromMap builds a ledger from persisted data. Keys that are not valid date
// keys and non-positive counts are dropped.
func FromMap(counts map[string]int) *Ledger {
	ledger := New()
	for key, count := range counts {
		if count <= 0 || !ValidDateKey(key) {
			continue
		}
		ledger.counts[key] = count
	}
	return ledger
}

// Increment adds one completion to dateKey and returns the new day count.
func (ledger *Ledger) Increment(dateKey string) int {
	ledger.counts[dateKey]++
	return ledger.counts[dateKey]
}

// Get returns the count for dateKey, zero when absent.
func (ledger *Ledger) Get(dateKey string) int {
	return ledger.counts[dateKey]
}

// Total returns the number of completions across all days.
func (ledger *Ledger) Total() int {
	total := 0
	for _, count := range ledger.counts {
		total += count
	}
	return total
}

// LastNDays lists the n calendar days ending at reference, most recent first.
// Days without entries are reported with a zero count.
func (ledger *Ledger) LastNDays(n int, reference time.Time) []Day {
	if n <= 0 {
		return nil
	}
	days := make([]Day, 0, n)
	year, month, day := reference.Date()
	for offset := 0; offset < n; offset++ {
		// Midday anchors keep DST transitions from skipping or repeating a day.
		date := time.Date(year, month, day-offset, 12, 0, 0, 0, reference.Location())
		key := DateKey(date)
		days = append(days, Day{Key: key, Count: ledger.counts[key]})
	}
	return days
}

// Snapshot returns a copy of the underlying map.
func (ledger *Ledger) Snapshot() map[string]int {
	out := make(map[string]int, len(ledger.counts))
	for key, count := range ledger.counts {
		out[key] = count
	}
	return out
}

// Clone returns an independent copy of the ledger.
func (ledger *Ledger) Clone() *Ledger {
	return &Ledger{counts: ledger.Snapshot()}
}
