package controllers

import (
	"image"

	"image-upscaler/internal/models"
)

const (
	ActionLabel     = "Upscale Image"
	ActionBusyLabel = "Upscaling..."

	StatusReady      = "Select or drop an image to begin"
	StatusProcessing = "Processing... This uses CPU so it might take 10-20 seconds."
	StatusDone       = "Done!"
)

// View is the set of UI handles the controller drives. Implementations must
// not call back into the controller synchronously from these methods.
type View interface {
	SetOriginalPreview(img image.Image)
	// ShowResult fills the enhanced preview, the save target and both
	// resolution fields, reveals the result area and scrolls it into view.
	// enhanced is nil when the returned image could not be decoded locally.
	ShowResult(result models.UpscaleResult, enhanced image.Image)
	HideResult()
	SetActionEnabled(enabled bool)
	SetActionLabel(label string)
	SetLoading(loading bool)
	SetStatus(status string)
	Alert(message string)
}
