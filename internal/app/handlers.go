package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"

	"image-upscaler/internal/logger"
	"image-upscaler/internal/models"
	"image-upscaler/internal/services"
)

// upscaler is the part of the controller the window handlers drive
type upscaler interface {
	SelectFile(file models.SelectedFile) (<-chan struct{}, bool)
	Start(ctx context.Context) (<-chan struct{}, bool)
	Selected() (models.SelectedFile, bool)
}

// window is the part of the main view the handlers need beyond controllers.View
type window interface {
	ShowFileDialog(callback func(fyne.URIReadCloser, error))
	ShowSaveDialog(fileName string, callback func(fyne.URIWriteCloser, error))
	ShowError(err error)
	DownloadTarget() (models.UpscaleResult, bool)
	SetStatus(status string)
}

type Handlers struct {
	ctx        context.Context
	controller upscaler
	view       window
	logger     logger.Logger
}

func NewHandlers(ctx context.Context, controller upscaler, view window, log logger.Logger) *Handlers {
	return &Handlers{
		ctx:        ctx,
		controller: controller,
		view:       view,
		logger:     log,
	}
}

// HandleOpen shows the picker and hands the chosen file to the controller
func (h *Handlers) HandleOpen() {
	h.view.ShowFileDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			h.showError(err)
			return
		}
		if reader == nil {
			return
		}

		go h.selectFrom(reader)
	})
}

// HandleDrop selects the first dropped file
func (h *Handlers) HandleDrop(uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	if len(uris) > 1 {
		h.logger.Debug("Handlers", "multiple files dropped, using the first", map[string]interface{}{
			"count": len(uris),
		})
	}

	uri := uris[0]
	go func() {
		reader, err := storage.Reader(uri)
		if err != nil {
			h.showError(fmt.Errorf("failed to open %s: %w", uri.Name(), err))
			return
		}
		h.selectFrom(reader)
	}()
}

func (h *Handlers) selectFrom(reader fyne.URIReadCloser) {
	file, err := readSelectedFile(reader)
	if err != nil {
		h.showError(err)
		return
	}
	h.controller.SelectFile(file)
}

// HandleUpscale starts an upload for the current selection
func (h *Handlers) HandleUpscale() {
	h.controller.Start(h.ctx)
}

// HandleSave writes the displayed result to a user-chosen location
func (h *Handlers) HandleSave() {
	target, ok := h.view.DownloadTarget()
	if !ok {
		h.showError(errors.New("no upscaled image to save"))
		return
	}

	original := ""
	if selected, ok := h.controller.Selected(); ok {
		original = selected.Name
	}

	h.view.ShowSaveDialog(services.SuggestedFileName(original, target), func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			h.showError(err)
			return
		}
		if writer == nil {
			return
		}

		go h.saveTo(writer, target)
	})
}

func (h *Handlers) saveTo(writer fyne.URIWriteCloser, target models.UpscaleResult) {
	name := writer.URI().Name()

	_, err := services.SaveResult(writer, target)
	if closeErr := writer.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", name, closeErr)
	}
	if err != nil {
		h.showError(err)
		return
	}

	h.logger.Info("Handlers", "upscaled image saved", map[string]interface{}{
		"file": name,
	})
	h.view.SetStatus("Saved " + name)
}

func (h *Handlers) showError(err error) {
	h.logger.Error("Handlers", err, nil)
	h.view.ShowError(err)
}

// readSelectedFile drains reader and closes it
func readSelectedFile(reader fyne.URIReadCloser) (models.SelectedFile, error) {
	defer reader.Close()

	uri := reader.URI()
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.SelectedFile{}, fmt.Errorf("failed to read %s: %w", uri.Name(), err)
	}

	return models.NewSelectedFile(uri.Name(), data, uri.MimeType()), nil
}
