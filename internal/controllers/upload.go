package controllers

import (
	"context"
	"image"
	"time"

	"image-upscaler/internal/models"
	"image-upscaler/internal/services"
)

// Start begins an upload of the selected file. It returns false without
// doing anything when a request is already in flight, and alerts the user
// when nothing is selected. The returned channel closes after the terminal
// cleanup has run.
func (c *UpscaleController) Start(ctx context.Context) (<-chan struct{}, bool) {
	c.mu.Lock()
	if c.isShutdown || c.state == models.InFlight {
		c.mu.Unlock()
		return nil, false
	}
	if c.selected == nil {
		c.lastErr = services.ErrNoFileSelected
		c.view.Alert(services.ErrNoFileSelected.Message)
		c.mu.Unlock()
		return nil, false
	}

	file := *c.selected
	c.generation++
	generation := c.generation
	c.state = models.InFlight
	c.result = nil
	c.lastErr = nil

	c.view.HideResult()
	c.view.SetActionEnabled(false)
	c.view.SetActionLabel(ActionBusyLabel)
	c.view.SetLoading(true)
	c.view.SetStatus(StatusProcessing)

	// Resolved per request so a changed host takes effect immediately
	host := c.host()
	endpoint := c.endpoints.Resolve(host)
	requestID := c.newRequestID()
	c.mu.Unlock()

	c.logger.Info("UpscaleController", "upload started", map[string]interface{}{
		"file":       file.Name,
		"host":       host,
		"endpoint":   endpoint,
		"request_id": requestID,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)

		startTime := time.Now()
		result, err := c.uploader.Upscale(ctx, endpoint, file, requestID)

		var enhanced image.Image
		if err == nil {
			enhanced = c.decodeResult(*result, requestID)
		}

		c.finish(generation, result, enhanced, err, requestID, time.Since(startTime))
	}()

	return done, true
}

func (c *UpscaleController) decodeResult(result models.UpscaleResult, requestID string) image.Image {
	data, _, err := result.ImageBytes()
	if err == nil {
		imageData, loadErr := c.loader.LoadFromBytes(data, "")
		if loadErr == nil {
			c.logger.Debug("UpscaleController", "result decoded", map[string]interface{}{
				"request_id": requestID,
				"decoded":    imageData.Resolution(),
				"reported":   result.NewRes.String(),
			})
			return imageData.Image
		}
		err = loadErr
	}

	c.logger.Warning("UpscaleController", "returned image could not be previewed", map[string]interface{}{
		"request_id": requestID,
		"error":      err.Error(),
	})
	return nil
}

func (c *UpscaleController) finish(generation uint64, result *models.UpscaleResult, enhanced image.Image, err error, requestID string, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields := map[string]interface{}{
		"request_id":  requestID,
		"duration_ms": elapsed.Milliseconds(),
	}

	if c.isShutdown {
		c.state = models.Idle
		c.logger.Debug("UpscaleController", "dropping result after shutdown", fields)
		return
	}

	switch {
	case generation != c.generation:
		// A newer selection replaced the file this request was for
		c.state = models.Idle
		c.logger.Info("UpscaleController", "discarding superseded result", fields)
	case err != nil:
		c.state = models.Failed
		c.lastErr = err
		c.logger.Error("UpscaleController", err, fields)
		c.view.SetStatus(services.StatusMessage(err))
	default:
		c.state = models.Succeeded
		c.result = result
		fields["old_res"] = result.OldRes.String()
		fields["new_res"] = result.NewRes.String()
		c.logger.Info("UpscaleController", "upload succeeded", fields)
		c.view.ShowResult(*result, enhanced)
		c.view.SetStatus(StatusDone)
	}

	c.view.SetLoading(false)
	c.view.SetActionEnabled(true)
	c.view.SetActionLabel(ActionLabel)
}
