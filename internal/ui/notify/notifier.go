// Package notify delivers completion notifications through fyne.
package notify

import (
	"errors"

	"fyne.io/fyne/v2"
)

var errNoApp = errors.New("notify: no app")

// Notifier sends system notifications on behalf of the app.
type Notifier struct {
	app fyne.App
}

// New returns a notifier bound to app.
func New(app fyne.App) *Notifier {
	return &Notifier{app: app}
}

// Notify queues the notification on the UI goroutine and returns at once.
func (notifier *Notifier) Notify(title, body string) error {
	if notifier == nil || notifier.app == nil {
		return errNoApp
	}
	notification := fyne.NewNotification(title, body)
	fyne.Do(func() {
		notifier.app.SendNotification(notification)
	})
	return nil
}
