package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"image-upscaler/internal/models"
)

// SaveResult writes the bytes behind the result's data URI to writer,
// unchanged, and returns the image's MIME type.
func SaveResult(writer io.Writer, result models.UpscaleResult) (string, error) {
	data, mediaType, err := result.ImageBytes()
	if err != nil {
		return "", fmt.Errorf("failed to decode upscaled image: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		return "", fmt.Errorf("failed to write upscaled image: %w", err)
	}

	return mediaType, nil
}

// SuggestedFileName derives a save name such as photo_upscaled.jpg
func SuggestedFileName(original string, result models.UpscaleResult) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "image"
	}

	ext := ".img"
	if _, mediaType, err := result.ImageBytes(); err == nil {
		ext = models.ExtensionForMIME(mediaType)
	}
	return base + "_upscaled" + ext
}
