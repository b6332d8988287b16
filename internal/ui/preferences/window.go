package preferences

import (
	"errors"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	entries       map[model.Mode]*widget.Entry
	notifications *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,
		entries:  make(map[model.Mode]*widget.Entry, len(model.Modes)),
	}

	form := widget.NewForm()
	for _, mode := range model.Modes {
		entry := widget.NewEntry()
		bounds := MinuteBounds(mode)
		entry.SetPlaceHolder(fmt.Sprintf("%d-%d", bounds.Min, bounds.Max))
		entry.Validator = func(value string) error {
			if _, err := strconv.Atoi(value); err != nil {
				return errors.New("enter whole minutes")
			}
			return nil
		}
		prefs.entries[mode] = entry
		form.Append(mode.Label()+" (min)", entry)
	}

	prefs.notifications = widget.NewSelect(permissionChoices(), nil)
	form.Append("Notifications", prefs.notifications)

	helper := widget.NewLabel("Changes to the running interval apply when it ends.")
	helper.Wrapping = fyne.TextWrapWord
	helper.Importance = widget.LowImportance

	form.SubmitText = "Save"
	form.CancelText = "Cancel"
	form.OnSubmit = prefs.handleSave
	form.OnCancel = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	window.SetContent(container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		helper,
	)))
	window.Resize(fyne.NewSize(380, 300))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values, e.g. after the settings file changed
// on disk. Call on the UI goroutine.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	for mode, entry := range prefs.entries {
		entry.SetText(strconv.Itoa(settings.Minutes(mode)))
	}
	prefs.notifications.SetSelected(choiceFor(settings.Notifications))
}

// SyncDurations refreshes the minute entries after the table changed
// elsewhere, keeping the notification choice. Call on the UI goroutine.
func (prefs *Window) SyncDurations(durations model.Durations) {
	prefs.UpdateSettings(FromDurations(durations, prefs.settings.Notifications))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.FocusMinutes = ParseMinutes(model.ModeFocus, prefs.entries[model.ModeFocus].Text, settings.FocusMinutes)
	settings.ShortMinutes = ParseMinutes(model.ModeShortBreak, prefs.entries[model.ModeShortBreak].Text, settings.ShortMinutes)
	settings.LongMinutes = ParseMinutes(model.ModeLongBreak, prefs.entries[model.ModeLongBreak].Text, settings.LongMinutes)
	settings.Notifications = permissionFor(prefs.notifications.Selected)

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
