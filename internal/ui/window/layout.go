package window

import "fyne.io/fyne/v2"

// timerPanelLayout centres the countdown with the wall clock under it.
type timerPanelLayout struct{}

func (layout *timerPanelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	timer := objects[0]
	clock := objects[1]

	timerSize := timer.MinSize()
	clockSize := clock.MinSize()
	gap := clockSize.Height * 0.25
	blockHeight := timerSize.Height + gap + clockSize.Height

	top := (size.Height - blockHeight) / 2
	if top < 0 {
		top = 0
	}
	timer.Move(fyne.NewPos(0, top))
	timer.Resize(fyne.NewSize(size.Width, timerSize.Height))

	clock.Move(fyne.NewPos(0, top+timerSize.Height+gap))
	clock.Resize(fyne.NewSize(size.Width, clockSize.Height))
}

func (layout *timerPanelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	timerSize := objects[0].MinSize()
	clockSize := objects[1].MinSize()

	width := timerSize.Width
	if clockSize.Width > width {
		width = clockSize.Width
	}
	height := timerSize.Height + clockSize.Height*1.25
	return fyne.NewSize(width+20, height+24)
}
