package controllers

import (
	"fmt"

	"image-upscaler/internal/models"
)

// SelectFile handles a picked or dropped file. Non-image files are ignored
// and false is returned. For images, the returned channel closes once the
// preview decode has finished.
func (c *UpscaleController) SelectFile(file models.SelectedFile) (<-chan struct{}, bool) {
	if !file.IsImage() {
		c.logger.Debug("UpscaleController", "ignoring non-image selection", map[string]interface{}{
			"file": file.Name,
			"mime": file.MIMEType,
		})
		return nil, false
	}

	c.mu.Lock()
	if c.isShutdown {
		c.mu.Unlock()
		return nil, false
	}

	c.generation++
	c.selection++
	selection := c.selection
	c.selected = &file
	c.result = nil

	c.view.HideResult()
	c.view.SetStatus("Selected: " + file.Name)
	// Stays disabled while a request is in flight; cleanup re-enables it
	if c.state != models.InFlight {
		c.view.SetActionEnabled(true)
	}
	c.mu.Unlock()

	c.logger.Info("UpscaleController", "file selected", map[string]interface{}{
		"file":       file.Name,
		"mime":       file.MIMEType,
		"size_bytes": file.Size(),
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.decodePreview(file, selection)
	}()

	return done, true
}

func (c *UpscaleController) decodePreview(file models.SelectedFile, selection uint64) {
	data, err := c.loader.LoadFromBytes(file.Data, file.Name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isShutdown || selection != c.selection {
		c.logger.Debug("UpscaleController", "dropping superseded preview", map[string]interface{}{
			"file": file.Name,
		})
		return
	}

	if err != nil {
		c.logger.Error("UpscaleController", err, map[string]interface{}{
			"file": file.Name,
		})
		c.view.SetStatus(fmt.Sprintf("Could not read %s: %v", file.Name, err))
		return
	}

	c.view.SetOriginalPreview(data.Image)
}
