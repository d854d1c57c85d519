package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// SelectedFile is the image the user picked or dropped. It lives only in
// memory and is replaced by the next selection.
type SelectedFile struct {
	Name     string
	MIMEType string
	Data     []byte
}

// NewSelectedFile builds a SelectedFile, detecting the MIME type when the
// source did not provide one.
func NewSelectedFile(name string, data []byte, mimeType string) SelectedFile {
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = DetectMIMEType(name, data)
	}
	return SelectedFile{Name: name, MIMEType: mimeType, Data: data}
}

// IsImage reports whether the file's MIME type is image/*
func (f SelectedFile) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(f.MIMEType), "image/")
}

// Size returns the payload size in bytes
func (f SelectedFile) Size() int {
	return len(f.Data)
}

// DetectMIMEType resolves a MIME type from the file extension, falling back
// to content sniffing.
func DetectMIMEType(name string, data []byte) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			mediaType, _, err := mime.ParseMediaType(t)
			if err == nil {
				return mediaType
			}
			return t
		}
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mediaType
}

// Resolution is a resolution descriptor exactly as the server sent it.
// JSON strings are unquoted; numbers keep their literal text.
type Resolution string

func (r *Resolution) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*r = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("invalid resolution: %w", err)
		}
		*r = Resolution(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("invalid resolution %s: %w", string(trimmed), err)
	}
	*r = Resolution(n.String())
	return nil
}

func (r Resolution) String() string {
	return string(r)
}

// UpscaleResult is a successful server response
type UpscaleResult struct {
	Image  string     `json:"image" yaml:"-"`
	OldRes Resolution `json:"old_res" yaml:"old_res"`
	NewRes Resolution `json:"new_res" yaml:"new_res"`
}

// ImageBytes decodes the embedded data URI into raw bytes and its MIME type
func (r UpscaleResult) ImageBytes() ([]byte, string, error) {
	return DecodeDataURI(r.Image)
}

// DecodeDataURI decodes a data URI of the form data:<mime>[;base64],<payload>.
// A bare base64 string is also accepted and its type is sniffed.
func DecodeDataURI(uri string) ([]byte, string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, "", fmt.Errorf("empty data URI")
	}

	if !strings.HasPrefix(uri, "data:") {
		data, err := base64.StdEncoding.DecodeString(uri)
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode base64 payload: %w", err)
		}
		return data, DetectMIMEType("", data), nil
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI: missing payload separator")
	}

	mediaType := header
	isBase64 := false
	if strings.HasSuffix(header, ";base64") {
		mediaType = strings.TrimSuffix(header, ";base64")
		isBase64 = true
	}
	if mediaType == "" {
		mediaType = "text/plain"
	}
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = parsed
	}

	if !isBase64 {
		return []byte(payload), mediaType, nil
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return data, mediaType, nil
}

// ExtensionForMIME returns a file extension for saving an image of the given type
func ExtensionForMIME(mediaType string) string {
	switch strings.ToLower(mediaType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	default:
		return ".img"
	}
}
