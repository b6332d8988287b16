package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

type fakeDesktop struct {
	menu  *fyne.Menu
	icons []fyne.Resource
}

func (desktop *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) { desktop.menu = menu }

func (desktop *fakeDesktop) SetSystemTrayIcon(icon fyne.Resource) {
	desktop.icons = append(desktop.icons, icon)
}

func (desktop *fakeDesktop) SetSystemTrayWindow(fyne.Window) {}

func TestStatusLine(t *testing.T) {
	running := timekeeper.Snapshot{Mode: model.ModeFocus, RemainingSeconds: 754, Running: true}
	assert.Equal(t, model.ModeFocus.Label()+" 12:34", StatusLine(running))

	paused := timekeeper.Snapshot{Mode: model.ModeLongBreak, RemainingSeconds: 900}
	assert.Equal(t, model.ModeLongBreak.Label()+" 15:00 (paused)", StatusLine(paused))
}

func TestRenderUpdatesMenuAndIcon(t *testing.T) {
	active := fyne.NewStaticResource("active.svg", []byte("<svg/>"))
	paused := fyne.NewStaticResource("paused.svg", []byte("<svg/>"))
	fake := &fakeDesktop{}

	var toggled int
	manager := New(fake, "Pomodoro", Icons{Active: active, Paused: paused}, Callbacks{
		OnToggleRun: func() { toggled++ },
	})
	require.NotNil(t, fake.menu)
	require.Equal(t, []fyne.Resource{paused}, fake.icons)

	manager.Render(timekeeper.Snapshot{Mode: model.ModeShortBreak, RemainingSeconds: 300, Running: true})
	assert.Equal(t, "Pause", manager.runItem.Label)
	assert.True(t, manager.modeItems[model.ModeShortBreak].Checked)
	assert.False(t, manager.modeItems[model.ModeFocus].Checked)
	assert.Equal(t, []fyne.Resource{paused, active}, fake.icons)

	manager.Render(timekeeper.Snapshot{Mode: model.ModeShortBreak, RemainingSeconds: 299, Running: true})
	assert.Len(t, fake.icons, 2)
	assert.Equal(t, model.ModeShortBreak.Label()+" 4:59", manager.Status())

	manager.runItem.Action()
	assert.Equal(t, 1, toggled)
}
