package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadFromBytes(t *testing.T) {
	data, err := NewLoader(nil).LoadFromBytes(encodePNG(t, 4, 3), "photo.png")
	require.NoError(t, err)

	assert.Equal(t, 4, data.Width)
	assert.Equal(t, 3, data.Height)
	assert.Equal(t, "png", data.Format)
	assert.Equal(t, "4x3", data.Resolution())
	assert.NotNil(t, data.Image)
}

func TestLoadFromBytesErrors(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.LoadFromBytes(nil, "empty.png")
	assert.Error(t, err)

	_, err = loader.LoadFromBytes([]byte("definitely not an image"), "notes.png")
	assert.Error(t, err)
}

func TestDetermineActualFormat(t *testing.T) {
	tests := []struct {
		name    string
		decoded string
		want    string
	}{
		{"a.JPG", "jpeg", "jpeg"},
		{"a.tif", "tiff", "tiff"},
		{"a.webp", "webp", "webp"},
		{"noext", "png", "png"},
		{"noext", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.decoded, func(t *testing.T) {
			assert.Equal(t, tt.want, determineActualFormat(tt.name, tt.decoded))
		})
	}
}
