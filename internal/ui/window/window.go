// Package window is the main timer window.
package window

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/history"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/ui/themes"
)

// Callbacks defines window action handlers.
type Callbacks struct {
	OnSelectMode  func(model.Mode)
	OnToggleRun   func()
	OnReset       func()
	OnToggleTheme func()
	OnPreferences func()
}

// Window manages the main timer UI.
type Window struct {
	app            fyne.App
	window         fyne.Window
	callbacks      Callbacks
	modes          map[model.Mode]*widget.Button
	timerLabel     *canvas.Text
	clockLabel     *canvas.Text
	progress       *widget.ProgressBar
	runButton      *widget.Button
	themeButton    *widget.Button
	todayLabel     *widget.Label
	yesterdayLabel *widget.Label
	weekLabel      *widget.Label
	dayLabels      []*widget.Label
	mode           model.Mode
	preference     model.Theme
}

const (
	timerTextSize = 72
	clockTextSize = 16
)

// New creates the main window. It is not shown until Show is called.
func New(app fyne.App, title string, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timerLabel := canvas.NewText(FormatRemaining(0), foreground(model.DefaultTheme))
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = timerTextSize

	clockLabel := canvas.NewText("--:--:--", themes.Accent(model.ModeFocus))
	clockLabel.Alignment = fyne.TextAlignCenter
	clockLabel.TextStyle = fyne.TextStyle{Monospace: true}
	clockLabel.TextSize = clockTextSize

	view := &Window{
		app:            app,
		window:         window,
		callbacks:      callbacks,
		modes:          make(map[model.Mode]*widget.Button, len(model.Modes)),
		timerLabel:     timerLabel,
		clockLabel:     clockLabel,
		progress:       widget.NewProgressBar(),
		todayLabel:     widget.NewLabel(""),
		yesterdayLabel: widget.NewLabel(""),
		weekLabel:      widget.NewLabel(""),
		mode:           model.ModeFocus,
		preference:     model.DefaultTheme,
	}
	view.progress.TextFormatter = func() string { return "" }

	modeRow := container.NewGridWithColumns(len(model.Modes))
	for _, mode := range model.Modes {
		button := widget.NewButton(mode.Label(), view.selectHandler(mode))
		view.modes[mode] = button
		modeRow.Add(button)
	}

	view.runButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if view.callbacks.OnToggleRun != nil {
			view.callbacks.OnToggleRun()
		}
	})
	view.runButton.Importance = widget.HighImportance
	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if view.callbacks.OnReset != nil {
			view.callbacks.OnReset()
		}
	})
	view.themeButton = widget.NewButton(themeButtonLabel(view.preference), func() {
		if view.callbacks.OnToggleTheme != nil {
			view.callbacks.OnToggleTheme()
		}
	})
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if view.callbacks.OnPreferences != nil {
			view.callbacks.OnPreferences()
		}
	})

	header := container.NewBorder(nil, nil, nil, container.NewHBox(settingsButton, view.themeButton), modeRow)
	timerPanel := container.New(&timerPanelLayout{}, timerLabel, clockLabel)
	controls := container.NewGridWithColumns(2, view.runButton, resetButton)

	view.dayLabels = make([]*widget.Label, history.SummaryDays)
	days := container.NewVBox()
	for index := range view.dayLabels {
		view.dayLabels[index] = widget.NewLabel("")
		days.Add(view.dayLabels[index])
	}
	totals := container.NewGridWithColumns(3, view.todayLabel, view.yesterdayLabel, view.weekLabel)
	stats := widget.NewCard("Focus sessions", "", container.NewVBox(totals, widget.NewSeparator(), days))

	content := container.NewVBox(header, timerPanel, view.progress, controls, stats)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(460, 640))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	view.renderModeUnsafe(view.mode)
	view.SetSummaryUnsafe(history.Summary{Days: make([]history.Day, history.SummaryDays)})
	return view
}

// Window exposes the underlying fyne window, e.g. as a dialog parent.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays and focuses the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window; the app keeps running.
func (view *Window) Hide() {
	view.window.Hide()
}

// Render updates the window from a timer snapshot. Safe from any goroutine.
func (view *Window) Render(snapshot timekeeper.Snapshot) {
	fyne.Do(func() {
		view.RenderUnsafe(snapshot)
	})
}

// RenderUnsafe is Render for callers already on the UI goroutine.
func (view *Window) RenderUnsafe(snapshot timekeeper.Snapshot) {
	view.timerLabel.Text = FormatRemaining(snapshot.RemainingSeconds)
	view.timerLabel.Refresh()
	view.progress.SetValue(snapshot.Progress())

	if snapshot.Running {
		view.runButton.SetText("Pause")
		view.runButton.SetIcon(theme.MediaPauseIcon())
	} else {
		view.runButton.SetText("Start")
		view.runButton.SetIcon(theme.MediaPlayIcon())
	}

	if snapshot.Mode != view.mode {
		view.renderModeUnsafe(snapshot.Mode)
	}
	view.window.SetTitle(WindowTitle(snapshot))
}

// SetSummary updates the history panel. Safe from any goroutine.
func (view *Window) SetSummary(summary history.Summary) {
	fyne.Do(func() {
		view.SetSummaryUnsafe(summary)
	})
}

// SetSummaryUnsafe is SetSummary for callers on the UI goroutine.
func (view *Window) SetSummaryUnsafe(summary history.Summary) {
	view.todayLabel.SetText(fmt.Sprintf("Today %d", summary.Today))
	view.yesterdayLabel.SetText(fmt.Sprintf("Yesterday %d", summary.Yesterday))
	view.weekLabel.SetText(fmt.Sprintf("7 days %d", summary.Week))
	for index, label := range view.dayLabels {
		if index < len(summary.Days) {
			label.SetText(DayLine(summary.Days[index]))
			continue
		}
		label.SetText("")
	}
}

// SetClock shows the current wall time. Safe from any goroutine.
func (view *Window) SetClock(now time.Time) {
	fyne.Do(func() {
		view.clockLabel.Text = FormatClock(now)
		view.clockLabel.Refresh()
	})
}

// SetTheme applies the theme preference to the whole app. Call on the UI
// goroutine.
func (view *Window) SetTheme(preference model.Theme) {
	view.preference = preference
	view.themeButton.SetText(themeButtonLabel(preference))
	view.applyThemeUnsafe()
}

// ConfirmNotifications asks whether completion notifications may be shown.
// Safe from any goroutine.
func (view *Window) ConfirmNotifications(onAnswer func(bool)) {
	fyne.Do(func() {
		confirm := dialog.NewConfirm(
			"Notifications",
			"Show a system notification when an interval ends?",
			onAnswer,
			view.window,
		)
		confirm.SetConfirmText("Allow")
		confirm.SetDismissText("Not now")
		confirm.Show()
	})
}

func (view *Window) selectHandler(mode model.Mode) func() {
	return func() {
		if view.callbacks.OnSelectMode != nil {
			view.callbacks.OnSelectMode(mode)
		}
	}
}

func (view *Window) renderModeUnsafe(mode model.Mode) {
	view.mode = mode
	for candidate, button := range view.modes {
		if candidate == mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Refresh()
	}
	view.applyThemeUnsafe()
}

func (view *Window) applyThemeUnsafe() {
	view.app.Settings().SetTheme(themes.New(view.preference, view.mode))
	view.timerLabel.Color = foreground(view.preference)
	view.timerLabel.Refresh()
	view.clockLabel.Color = themes.Accent(view.mode)
	view.clockLabel.Refresh()
}

func foreground(preference model.Theme) color.Color {
	variant := theme.VariantDark
	if preference == model.ThemeLight {
		variant = theme.VariantLight
	}
	return theme.DefaultTheme().Color(theme.ColorNameForeground, variant)
}

func themeButtonLabel(preference model.Theme) string {
	if preference == model.ThemeLight {
		return "Dark"
	}
	return "Light"
}
