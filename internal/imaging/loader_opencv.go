//go:build opencv

package imaging

import (
	"fmt"

	"gocv.io/x/gocv"

	"image-upscaler/internal/logger"
)

type imageLoader struct {
	logger logger.Logger
}

// NewLoader returns the OpenCV-backed decoder
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

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image with OpenCV: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("failed to decode image with OpenCV: unsupported or corrupt data")
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert Mat to image: %w", err)
	}

	imageData := newImageData(img, determineActualFormat(name, ""))
	logLoaded(l.logger, name, imageData)
	return imageData, nil
}
