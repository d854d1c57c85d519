package views

import (
	"image"
	"sync"

	"image-upscaler/internal/controllers"
	"image-upscaler/internal/models"
	"image-upscaler/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

const AlertTitle = "Image Upscaler"

// ImageExtensions limits the open dialog to formats the loader can decode
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tif", ".tiff"}

// MainView is the desktop window driven by the upscale controller
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	imageDisplay  *components.ImageDisplay
	statusBar     *components.StatusBar

	openHandler    func()
	upscaleHandler func()
	saveHandler    func()
	dropHandler    func([]fyne.URI)

	mu        sync.Mutex
	result    models.UpscaleResult
	hasResult bool
}

var _ controllers.View = (*MainView)(nil)

// NewMainView builds the layout and installs it as the window content
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar(controllers.ActionLabel)
	mv.imageDisplay = components.NewImageDisplay()
	mv.statusBar = components.NewStatusBar()
	mv.statusBar.SetStatus(controllers.StatusReady)
}

func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.imageDisplay.GetContainer(),
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetOpenHandler(func() {
		if mv.openHandler != nil {
			mv.openHandler()
		}
	})

	mv.toolbar.SetUpscaleHandler(func() {
		if mv.upscaleHandler != nil {
			mv.upscaleHandler()
		}
	})

	mv.toolbar.SetSaveHandler(func() {
		if mv.saveHandler != nil {
			mv.saveHandler()
		}
	})

	mv.window.SetOnDropped(mv.handleDrop)
}

func (mv *MainView) handleDrop(_ fyne.Position, uris []fyne.URI) {
	if mv.dropHandler != nil && len(uris) > 0 {
		mv.dropHandler(uris)
	}
}

func (mv *MainView) SetOpenHandler(handler func()) {
	mv.openHandler = handler
}

func (mv *MainView) SetUpscaleHandler(handler func()) {
	mv.upscaleHandler = handler
}

func (mv *MainView) SetSaveHandler(handler func()) {
	mv.saveHandler = handler
}

// SetDropHandler receives the URIs of files dropped onto the window
func (mv *MainView) SetDropHandler(handler func([]fyne.URI)) {
	mv.dropHandler = handler
}

// Controller-facing updates. Every widget mutation is marshalled onto the
// Fyne thread.

func (mv *MainView) SetOriginalPreview(img image.Image) {
	fyne.Do(func() {
		mv.imageDisplay.SetOriginalImage(img)
	})
}

func (mv *MainView) ShowResult(result models.UpscaleResult, enhanced image.Image) {
	mv.mu.Lock()
	mv.result = result
	mv.hasResult = true
	mv.mu.Unlock()

	fyne.Do(func() {
		mv.imageDisplay.ShowResult(enhanced, string(result.OldRes), string(result.NewRes))
		mv.toolbar.SetSaveEnabled(true)
	})
}

func (mv *MainView) HideResult() {
	mv.mu.Lock()
	mv.result = models.UpscaleResult{}
	mv.hasResult = false
	mv.mu.Unlock()

	fyne.Do(func() {
		mv.imageDisplay.HideResult()
		mv.toolbar.SetSaveEnabled(false)
	})
}

func (mv *MainView) SetActionEnabled(enabled bool) {
	fyne.Do(func() {
		mv.toolbar.SetUpscaleEnabled(enabled)
	})
}

func (mv *MainView) SetActionLabel(label string) {
	fyne.Do(func() {
		mv.toolbar.SetUpscaleLabel(label)
	})
}

func (mv *MainView) SetLoading(loading bool) {
	fyne.Do(func() {
		mv.statusBar.SetLoading(loading)
	})
}

func (mv *MainView) SetStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

func (mv *MainView) Alert(message string) {
	fyne.Do(func() {
		dialog.ShowInformation(AlertTitle, message, mv.window)
	})
}

// DownloadTarget returns the result currently offered for saving
func (mv *MainView) DownloadTarget() (models.UpscaleResult, bool) {
	mv.mu.Lock()
	defer mv.mu.Unlock()
	return mv.result, mv.hasResult
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, mv.window)
	})
}

// ShowFileDialog opens a picker restricted to image extensions
func (mv *MainView) ShowFileDialog(callback func(fyne.URIReadCloser, error)) {
	fyne.Do(func() {
		open := dialog.NewFileOpen(callback, mv.window)
		open.SetFilter(storage.NewExtensionFileFilter(ImageExtensions))
		open.Show()
	})
}

// ShowSaveDialog opens a save dialog prefilled with fileName
func (mv *MainView) ShowSaveDialog(fileName string, callback func(fyne.URIWriteCloser, error)) {
	fyne.Do(func() {
		save := dialog.NewFileSave(callback, mv.window)
		save.SetFileName(fileName)
		save.Show()
	})
}

func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

func (mv *MainView) GetToolbar() *components.Toolbar {
	return mv.toolbar
}

func (mv *MainView) GetImageDisplay() *components.ImageDisplay {
	return mv.imageDisplay
}

func (mv *MainView) GetStatusBar() *components.StatusBar {
	return mv.statusBar
}

// Shutdown closes the window, which ends the Fyne event loop
func (mv *MainView) Shutdown() {
	fyne.Do(func() {
		mv.window.Close()
	})
}

// ViewState is a snapshot of the visible state, used by tests and logging
type ViewState struct {
	HasOriginalImage bool
	HasEnhancedImage bool
	ResultVisible    bool
	OldResolution    string
	NewResolution    string
	ActionEnabled    bool
	ActionLabel      string
	SaveEnabled      bool
	Loading          bool
	StatusMessage    string
}

func (mv *MainView) GetViewState() ViewState {
	oldRes, newRes := mv.imageDisplay.Resolutions()
	return ViewState{
		HasOriginalImage: mv.imageDisplay.HasOriginalImage(),
		HasEnhancedImage: mv.imageDisplay.HasEnhancedImage(),
		ResultVisible:    mv.imageDisplay.ResultVisible(),
		OldResolution:    oldRes,
		NewResolution:    newRes,
		ActionEnabled:    mv.toolbar.UpscaleEnabled(),
		ActionLabel:      mv.toolbar.UpscaleLabel(),
		SaveEnabled:      mv.toolbar.SaveEnabled(),
		Loading:          mv.statusBar.IsLoading(),
		StatusMessage:    mv.statusBar.GetStatus(),
	}
}
