package window

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/history"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

func TestFormatRemaining(t *testing.T) {
	cases := map[int]string{
		0:    "0:00",
		5:    "0:05",
		59:   "0:59",
		60:   "1:00",
		1500: "25:00",
		1499: "24:59",
		7200: "120:00",
		-3:   "0:00",
	}
	for seconds, want := range cases {
		assert.Equal(t, want, FormatRemaining(seconds), seconds)
	}
}

func TestFormatClock(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 4, 9, 0, time.UTC)
	assert.Equal(t, "07:04:09", FormatClock(now))
}

func TestDayLine(t *testing.T) {
	assert.Equal(t, "Tue 03-10    4", DayLine(history.Day{Key: "2026-03-10", Count: 4}))
	assert.Equal(t, "garbage    1", DayLine(history.Day{Key: "garbage", Count: 1}))
}

func TestWindowTitle(t *testing.T) {
	idle := timekeeper.Snapshot{Mode: model.ModeFocus, RemainingSeconds: 1500}
	assert.Equal(t, "Pomodoro", WindowTitle(idle))

	running := timekeeper.Snapshot{Mode: model.ModeShortBreak, RemainingSeconds: 299, Running: true}
	assert.Equal(t, "4:59 · "+model.ModeShortBreak.Label(), WindowTitle(running))
}

func TestTimerPanelLayoutStacksClockUnderTimer(t *testing.T) {
	test.NewTempApp(t)

	timer := canvas.NewRectangle(nil)
	timer.SetMinSize(fyne.NewSize(220, 90))
	clock := canvas.NewRectangle(nil)
	clock.SetMinSize(fyne.NewSize(90, 20))

	layout := &timerPanelLayout{}
	objects := []fyne.CanvasObject{timer, clock}
	layout.Layout(objects, fyne.NewSize(400, 300))

	assert.Equal(t, fyne.NewSize(400, 90), timer.Size())
	assert.Equal(t, fyne.NewSize(400, 20), clock.Size())
	assert.Equal(t, float32(92.5), timer.Position().Y)
	assert.Equal(t, float32(187.5), clock.Position().Y)
	assert.Equal(t, fyne.NewSize(240, 139), layout.MinSize(objects))
}
