package imaging

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"image-upscaler/internal/logger"
)

// ImageData is a decoded image ready for display
type ImageData struct {
	Image  image.Image
	Width  int
	Height int
	Format string
}

// Resolution formats the size the same way the upscaling service does
func (d *ImageData) Resolution() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Loader decodes raw file bytes for previews
type Loader interface {
	LoadFromBytes(data []byte, name string) (*ImageData, error)
}

func newImageData(img image.Image, format string) *ImageData {
	bounds := img.Bounds()
	return &ImageData{
		Image:  img,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}
}

func logLoaded(log logger.Logger, name string, data *ImageData) {
	log.Debug("ImageLoader", "image decoded", map[string]interface{}{
		"file":   name,
		"width":  data.Width,
		"height": data.Height,
		"format": data.Format,
	})
}

func determineActualFormat(name, decodedFormat string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		if decodedFormat != "" {
			return decodedFormat
		}
		return "unknown"
	}
}
