// Package tray drives the system tray icon and menu.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnToggleRun   func()
	OnReset       func()
	OnSelectMode  func(model.Mode)
	OnQuit        func()
}

// Icons are the tray icons for each run state.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	title      string
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	runItem    *fyne.MenuItem
	modeItems  map[model.Mode]*fyne.MenuItem
	menu       *fyne.Menu
	running    bool
	status     string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		icons:     icons,
		callbacks: callbacks,
		modeItems: make(map[model.Mode]*fyne.MenuItem, len(model.Modes)),
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.runItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggleRun != nil {
			manager.callbacks.OnToggleRun()
		}
	})

	reset := fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	modeMenu := fyne.NewMenu("")
	for _, mode := range model.Modes {
		item := fyne.NewMenuItem(mode.Label(), manager.selectHandler(mode))
		manager.modeItems[mode] = item
		modeMenu.Items = append(modeMenu.Items, item)
	}
	switchMode := fyne.NewMenuItem("Switch to", nil)
	switchMode.ChildMenu = modeMenu

	show := fyne.NewMenuItem("Show timer", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})

	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(title,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.runItem,
		reset,
		switchMode,
		fyne.NewMenuItemSeparator(),
		show,
		preferences,
		quit,
	)
	app.SetSystemTrayMenu(manager.menu)
	manager.applyIcon()

	return manager
}

// Render updates status, run item, mode checkmarks and icon from a snapshot.
// Call on the UI goroutine.
func (manager *Manager) Render(snapshot timekeeper.Snapshot) {
	manager.status = StatusLine(snapshot)
	manager.statusItem.Label = "Status: " + manager.status
	if snapshot.Running {
		manager.runItem.Label = "Pause"
	} else {
		manager.runItem.Label = "Start"
	}
	for mode, item := range manager.modeItems {
		item.Checked = mode == snapshot.Mode
	}
	if manager.running != snapshot.Running {
		manager.running = snapshot.Running
		manager.applyIcon()
	}
	manager.app.SetSystemTrayMenu(manager.menu)
}

// Status returns the last rendered status line.
func (manager *Manager) Status() string {
	return manager.status
}

// StatusLine renders the tray status, e.g. "Focus 12:34 (paused)".
func StatusLine(snapshot timekeeper.Snapshot) string {
	remaining := snapshot.RemainingSeconds
	if remaining < 0 {
		remaining = 0
	}
	line := fmt.Sprintf("%s %d:%02d", snapshot.Mode.Label(), remaining/60, remaining%60)
	if !snapshot.Running {
		line += " (paused)"
	}
	return line
}

func (manager *Manager) selectHandler(mode model.Mode) func() {
	return func() {
		if manager.callbacks.OnSelectMode != nil {
			manager.callbacks.OnSelectMode(mode)
		}
	}
}

func (manager *Manager) applyIcon() {
	icon := manager.icons.Paused
	if manager.running {
		icon = manager.icons.Active
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}
