package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementAndGet(t *testing.T) {
	ledger := New()

	assert.Zero(t, ledger.Get("2026-01-02"))
	assert.Equal(t, 1, ledger.Increment("2026-01-02"))
	assert.Equal(t, 2, ledger.Increment("2026-01-02"))
	assert.Equal(t, 1, ledger.Increment("2026-01-03"))
	assert.Equal(t, 2, ledger.Get("2026-01-02"))
	assert.Equal(t, 3, ledger.Total())
}

func TestDateKeyUsesLocalCalendarDay(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	instant := time.Date(2026, time.July, 1, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-07-01", DateKey(instant))
	assert.Equal(t, "2026-06-30", DateKey(instant.In(zone)))
}

func TestValidDateKey(t *testing.T) {
	assert.True(t, ValidDateKey("2026-02-28"))
	assert.False(t, ValidDateKey("2026-02-30"))
	assert.False(t, ValidDateKey("2026-2-3"))
	assert.False(t, ValidDateKey("yesterday"))
}

func TestFromMapDropsInvalidEntries(t *testing.T) {
	ledger := FromMap(map[string]int{
		"2026-01-01": 3,
		"2026-01-02": 0,
		"2026-01-03": -4,
		"not-a-date": 7,
	})

	assert.Equal(t, map[string]int{"2026-01-01": 3}, ledger.Snapshot())
}

func TestLastNDaysZeroFillsMostRecentFirst(t *testing.T) {
	ledger := FromMap(map[string]int{
		"2026-03-01": 2,
		"2026-02-27": 1,
		"2026-02-20": 9,
	})

	days := ledger.LastNDays(4, time.Date(2026, time.March, 1, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, []Day{
		{Key: "2026-03-01", Count: 2},
		{Key: "2026-02-28", Count: 0},
		{Key: "2026-02-27", Count: 1},
		{Key: "2026-02-26", Count: 0},
	}, days)
	assert.Nil(t, ledger.LastNDays(0, time.Now()))
}

func TestLastNDaysAcrossDSTChange(t *testing.T) {
	location, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	reference := time.Date(2026, time.March, 30, 0, 30, 0, 0, location)

	days := New().LastNDays(3, reference)
	require.Len(t, days, 3)
	assert.Equal(t, "2026-03-30", days[0].Key)
	assert.Equal(t, "2026-03-29", days[1].Key)
	assert.Equal(t, "2026-03-28", days[2].Key)
}

func TestSnapshotIsACopy(t *testing.T) {
	ledger := New()
	ledger.Increment("2026-01-01")

	snapshot := ledger.Snapshot()
	snapshot["2026-01-01"] = 100
	clone := ledger.Clone()
	clone.Increment("2026-01-01")

	assert.Equal(t, 1, ledger.Get("2026-01-01"))
}

func TestSummarize(t *testing.T) {
	ledger := FromMap(map[string]int{
		"2026-05-10": 4,
		"2026-05-09": 3,
		"2026-05-04": 1,
		"2026-05-03": 6,
	})

	summary := ledger.Summarize(time.Date(2026, time.May, 10, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, 4, summary.Today)
	assert.Equal(t, 3, summary.Yesterday)
	assert.Equal(t, 8, summary.Week)
	assert.Equal(t, 14, summary.Total)
	assert.Len(t, summary.Days, SummaryDays)
}
