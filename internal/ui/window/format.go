package window

import (
	"fmt"
	"time"

	"pomodoro/internal/core/history"
	"pomodoro/internal/core/timekeeper"
)

// FormatRemaining renders seconds as m:ss with unpadded minutes.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatClock renders a 24-hour wall time.
func FormatClock(now time.Time) string {
	return now.Format("15:04:05")
}

// DayLine renders one row of the history panel.
func DayLine(day history.Day) string {
	label := day.Key
	if parsed, err := time.Parse(history.DateKeyLayout, day.Key); err == nil {
		label = parsed.Format("Mon 01-02")
	}
	return fmt.Sprintf("%s    %d", label, day.Count)
}

// WindowTitle mirrors the countdown in the title bar while running.
func WindowTitle(snapshot timekeeper.Snapshot) string {
	if !snapshot.Running {
		return "Pomodoro"
	}
	return fmt.Sprintf("%s · %s", FormatRemaining(snapshot.RemainingSeconds), snapshot.Mode.Label())
}
