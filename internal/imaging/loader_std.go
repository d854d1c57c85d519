//go:build !opencv

package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"image-upscaler/internal/logger"
)

type imageLoader struct {
	logger logger.Logger
}

// NewLoader returns the decoder for this build
func NewLoader(log logger.Logger) Loader {
	if log == nil {
		log = logger.NoOp{}
	}
	return &imageLoader{logger: log}
}

func (l *imageLoader) LoadFromBytes(data []byte, name string) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	imageData := newImageData(img, determineActualFormat(name, format))
	logLoaded(l.logger, name, imageData)
	return imageData, nil
}
