package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the open, upscale and save actions
type Toolbar struct {
	container     *fyne.Container
	openButton    *widget.Button
	upscaleButton *widget.Button
	saveButton    *widget.Button

	openHandler    func()
	upscaleHandler func()
	saveHandler    func()
}

// NewToolbar creates a new toolbar component
func NewToolbar(upscaleLabel string) *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents(upscaleLabel)
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents(upscaleLabel string) {
	t.openButton = widget.NewButtonWithIcon("Open Image", theme.FolderOpenIcon(), t.onOpen)

	t.upscaleButton = widget.NewButtonWithIcon(upscaleLabel, theme.MediaPlayIcon(), t.onUpscale)
	t.upscaleButton.Importance = widget.HighImportance
	t.upscaleButton.Disable()

	t.saveButton = widget.NewButtonWithIcon("Save Upscaled", theme.DocumentSaveIcon(), t.onSave)
	t.saveButton.Disable()
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.openButton,
		widget.NewSeparator(),
		t.upscaleButton,
		widget.NewSeparator(),
		t.saveButton,
	)
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetOpenHandler(handler func()) {
	t.openHandler = handler
}

func (t *Toolbar) SetUpscaleHandler(handler func()) {
	t.upscaleHandler = handler
}

func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

func (t *Toolbar) SetUpscaleEnabled(enabled bool) {
	if enabled {
		t.upscaleButton.Enable()
	} else {
		t.upscaleButton.Disable()
	}
}

func (t *Toolbar) UpscaleEnabled() bool {
	return !t.upscaleButton.Disabled()
}

func (t *Toolbar) SetUpscaleLabel(label string) {
	t.upscaleButton.SetText(label)
}

func (t *Toolbar) UpscaleLabel() string {
	return t.upscaleButton.Text
}

// UpscaleButton is exposed for tapping in tests
func (t *Toolbar) UpscaleButton() *widget.Button {
	return t.upscaleButton
}

func (t *Toolbar) SetSaveEnabled(enabled bool) {
	if enabled {
		t.saveButton.Enable()
	} else {
		t.saveButton.Disable()
	}
}

func (t *Toolbar) SaveEnabled() bool {
	return !t.saveButton.Disabled()
}

func (t *Toolbar) onOpen() {
	if t.openHandler != nil {
		t.openHandler()
	}
}

func (t *Toolbar) onUpscale() {
	if t.upscaleHandler != nil {
		t.upscaleHandler()
	}
}

func (t *Toolbar) onSave() {
	if t.saveHandler != nil {
		t.saveHandler()
	}
}
