package views

import (
	"image"
	"testing"

	"image-upscaler/internal/controllers"
	"image-upscaler/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T) *MainView {
	t.Helper()
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	return NewMainView(w)
}

func TestMainView_InitialState(t *testing.T) {
	mv := newTestView(t)

	state := mv.GetViewState()
	assert.False(t, state.HasOriginalImage)
	assert.False(t, state.ResultVisible)
	assert.False(t, state.ActionEnabled)
	assert.False(t, state.SaveEnabled)
	assert.False(t, state.Loading)
	assert.Equal(t, controllers.ActionLabel, state.ActionLabel)
	assert.Equal(t, controllers.StatusReady, state.StatusMessage)

	_, ok := mv.DownloadTarget()
	assert.False(t, ok)
}

func TestMainView_ShowAndHideResult(t *testing.T) {
	mv := newTestView(t)

	result := models.UpscaleResult{Image: "data:image/png;base64,AAAA", OldRes: "640x480", NewRes: "2560x1920"}
	mv.ShowResult(result, image.NewRGBA(image.Rect(0, 0, 4, 4)))

	state := mv.GetViewState()
	assert.True(t, state.ResultVisible)
	assert.True(t, state.HasEnhancedImage)
	assert.True(t, state.SaveEnabled)
	assert.Equal(t, "640x480", state.OldResolution)
	assert.Equal(t, "2560x1920", state.NewResolution)

	target, ok := mv.DownloadTarget()
	require.True(t, ok)
	assert.Equal(t, result.Image, target.Image)

	mv.HideResult()

	state = mv.GetViewState()
	assert.False(t, state.ResultVisible)
	assert.False(t, state.HasEnhancedImage)
	assert.False(t, state.SaveEnabled)
	assert.Empty(t, state.OldResolution)

	_, ok = mv.DownloadTarget()
	assert.False(t, ok)
}

func TestMainView_ResultWithoutDecodedImage(t *testing.T) {
	mv := newTestView(t)

	mv.ShowResult(models.UpscaleResult{Image: "not-an-image", OldRes: "1", NewRes: "4"}, nil)

	state := mv.GetViewState()
	assert.True(t, state.ResultVisible)
	assert.False(t, state.HasEnhancedImage)
	assert.True(t, state.SaveEnabled)
}

func TestMainView_ActionControls(t *testing.T) {
	mv := newTestView(t)

	mv.SetActionEnabled(true)
	mv.SetActionLabel(controllers.ActionBusyLabel)
	mv.SetLoading(true)
	mv.SetStatus(controllers.StatusProcessing)

	state := mv.GetViewState()
	assert.True(t, state.ActionEnabled)
	assert.Equal(t, controllers.ActionBusyLabel, state.ActionLabel)
	assert.True(t, state.Loading)
	assert.Equal(t, controllers.StatusProcessing, state.StatusMessage)

	mv.SetLoading(false)
	mv.SetActionEnabled(false)
	assert.False(t, mv.GetViewState().Loading)
	assert.False(t, mv.GetViewState().ActionEnabled)
}

func TestMainView_OriginalPreview(t *testing.T) {
	mv := newTestView(t)

	mv.SetOriginalPreview(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	assert.True(t, mv.GetViewState().HasOriginalImage)

	mv.SetOriginalPreview(nil)
	assert.False(t, mv.GetViewState().HasOriginalImage)
}

func TestMainView_UpscaleButtonInvokesHandler(t *testing.T) {
	mv := newTestView(t)

	calls := 0
	mv.SetUpscaleHandler(func() { calls++ })

	test.Tap(mv.GetToolbar().UpscaleButton())
	assert.Equal(t, 0, calls, "disabled button must not fire")

	mv.SetActionEnabled(true)
	test.Tap(mv.GetToolbar().UpscaleButton())
	assert.Equal(t, 1, calls)
}

func TestMainView_DropForwardsURIs(t *testing.T) {
	mv := newTestView(t)

	var got []fyne.URI
	mv.SetDropHandler(func(uris []fyne.URI) { got = uris })

	mv.handleDrop(fyne.NewPos(0, 0), nil)
	assert.Nil(t, got)

	uri := storage.NewFileURI("/tmp/photo.png")
	mv.handleDrop(fyne.NewPos(10, 10), []fyne.URI{uri})
	require.Len(t, got, 1)
	assert.Equal(t, "photo.png", got[0].Name())
}
