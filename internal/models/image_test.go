package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 PNG
const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8/5+hHgAHggJ/PchI7wAAAABJRU5ErkJggg=="

func TestSelectedFileIsImage(t *testing.T) {
	tests := []struct {
		name string
		mime string
		want bool
	}{
		{"png", "image/png", true},
		{"jpeg", "image/jpeg", true},
		{"upper case", "IMAGE/WEBP", true},
		{"text", "text/plain", false},
		{"empty", "", false},
		{"octet stream", "application/octet-stream", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := SelectedFile{Name: "x", MIMEType: tt.mime}
			assert.Equal(t, tt.want, f.IsImage())
		})
	}
}

func TestNewSelectedFileDetectsMIME(t *testing.T) {
	assert.Equal(t, "image/png", NewSelectedFile("photo.png", nil, "").MIMEType)
	assert.Equal(t, "text/plain", NewSelectedFile("notes.txt", []byte("hello"), "").MIMEType)
	assert.Equal(t, "image/gif", NewSelectedFile("anim", []byte("GIF89a......"), "application/octet-stream").MIMEType)
	assert.Equal(t, "image/jpeg", NewSelectedFile("photo.png", nil, "image/jpeg").MIMEType, "explicit type wins")
}

func TestResolutionUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Resolution
	}{
		{"string", `"100x100"`, "100x100"},
		{"integer", `400`, "400"},
		{"float keeps literal text", `1.50`, "1.50"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Resolution
			require.NoError(t, json.Unmarshal([]byte(tt.json), &r))
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestResolutionUnmarshalRejectsObjects(t *testing.T) {
	var r Resolution
	assert.Error(t, json.Unmarshal([]byte(`{"w":1}`), &r))
}

func TestUpscaleResultDecodesVerbatim(t *testing.T) {
	var result UpscaleResult
	payload := `{"image": "data:image/png;base64,AAAA", "old_res": "100x100", "new_res": "400x400"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &result))

	assert.Equal(t, "data:image/png;base64,AAAA", result.Image)
	assert.Equal(t, Resolution("100x100"), result.OldRes)
	assert.Equal(t, Resolution("400x400"), result.NewRes)
}

func TestDecodeDataURI(t *testing.T) {
	data, mediaType, err := DecodeDataURI("data:image/png;base64," + pixelPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	require.NotEmpty(t, data)
	assert.Equal(t, byte(0x89), data[0])
	assert.Equal(t, byte('P'), data[1])
}

func TestDecodeDataURIRawBase64(t *testing.T) {
	data, mediaType, err := DecodeDataURI(pixelPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.NotEmpty(t, data)
}

func TestDecodeDataURIPlainPayload(t *testing.T) {
	data, mediaType, err := DecodeDataURI("data:,hello")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mediaType)
	assert.Equal(t, []byte("hello"), data)
}

func TestDecodeDataURIErrors(t *testing.T) {
	for _, input := range []string{"", "data:image/png;base64", "data:image/png;base64,@@@", "not-valid-base64!!!"} {
		_, _, err := DecodeDataURI(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestExtensionForMIME(t *testing.T) {
	assert.Equal(t, ".jpg", ExtensionForMIME("image/jpeg"))
	assert.Equal(t, ".png", ExtensionForMIME("IMAGE/PNG"))
	assert.Equal(t, ".img", ExtensionForMIME("application/x-unknown"))
}

func TestRequestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "in_flight", InFlight.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", RequestState(42).String())
}
