package history

import "time"

// SummaryDays is the window shown in the history panel.
const SummaryDays = 7

// Summary holds the figures displayed next to the timer.
type Summary struct {
	Today     int
	Yesterday int
	Week      int
	Total     int
	Days      []Day
}

// Summarize computes the history panel figures for the day of reference.
func (ledger *Ledger) Summarize(reference time.Time) Summary {
	days := ledger.LastNDays(SummaryDays, reference)
	summary := Summary{
		Today:     days[0].Count,
		Yesterday: days[1].Count,
		Total:     ledger.Total(),
		Days:      days,
	}
	for _, day := range days {
		summary.Week += day.Count
	}
	return summary
}
