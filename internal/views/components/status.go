package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the status line and the loading indicator
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	progress    *widget.ProgressBarInfinite
	loading     bool
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("")
	sb.statusLabel.Wrapping = fyne.TextWrapWord

	sb.progress = widget.NewProgressBarInfinite()
	sb.progress.Stop()
	sb.progress.Hide()
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(nil, nil, nil, nil,
		container.NewVBox(sb.progress, sb.statusLabel),
	)
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetLoading shows or hides the indeterminate progress bar
func (sb *StatusBar) SetLoading(loading bool) {
	sb.loading = loading
	if loading {
		sb.progress.Show()
		sb.progress.Start()
		return
	}
	sb.progress.Stop()
	sb.progress.Hide()
}

func (sb *StatusBar) IsLoading() bool {
	return sb.loading
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
