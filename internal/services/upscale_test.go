package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-upscaler/internal/models"
)

func photo() models.SelectedFile {
	return models.SelectedFile{Name: "photo.png", MIMEType: "image/png", Data: []byte("\x89PNG fake")}
}

func newService() *UpscaleService {
	return NewUpscaleService(5*time.Second, 1024*1024, nil)
}

func TestUpscaleSendsMultipartImageField(t *testing.T) {
	var (
		gotMethod    string
		gotFilename  string
		gotPartType  string
		gotData      []byte
		gotRequestID string
		gotParts     int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotRequestID = r.Header.Get(RequestIDHeader)

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		for _, files := range r.MultipartForm.File {
			gotParts += len(files)
		}
		gotParts += len(r.MultipartForm.Value)

		file, header, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		gotPartType = header.Header.Get("Content-Type")
		gotData, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"image": "data:image/png;base64,AAAA", "old_res": "100x100", "new_res": "400x400"}`))
	}))
	defer server.Close()

	result, err := newService().Upscale(context.Background(), server.URL+"/upscale", photo(), "req-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "photo.png", gotFilename)
	assert.Equal(t, "image/png", gotPartType)
	assert.Equal(t, photo().Data, gotData)
	assert.Equal(t, "req-1", gotRequestID)
	assert.Equal(t, 1, gotParts)

	assert.Equal(t, "data:image/png;base64,AAAA", result.Image)
	assert.Equal(t, models.Resolution("100x100"), result.OldRes)
	assert.Equal(t, models.Resolution("400x400"), result.NewRes)
}

func TestUpscaleClassifiesResponses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantApp    string
		wantTransp bool
	}{
		{name: "server error payload", status: 500, body: `{"error": "model unavailable"}`, wantApp: "model unavailable"},
		{name: "bad request payload", status: 400, body: `{"error": "Invalid image"}`, wantApp: "Invalid image"},
		{name: "error field on 200", status: 200, body: `{"error": "Processing Failed"}`, wantApp: "Processing Failed"},
		{name: "non-json 502", status: 502, body: `<html>Bad Gateway</html>`, wantTransp: true},
		{name: "non-2xx without error field", status: 503, body: `{}`, wantTransp: true},
		{name: "200 without image", status: 200, body: `{"old_res": "1x1"}`, wantTransp: true},
		{name: "malformed json", status: 200, body: `{"image":`, wantTransp: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newService().Upscale(context.Background(), server.URL, photo(), "")
			require.Error(t, err)

			var appErr *ApplicationError
			var transportErr *TransportError
			if tt.wantApp != "" {
				require.True(t, errors.As(err, &appErr), "got %T", err)
				assert.Equal(t, tt.wantApp, appErr.Message)
				assert.Equal(t, tt.status, appErr.StatusCode)
				assert.Equal(t, "Error: "+tt.wantApp, StatusMessage(err))
			}
			if tt.wantTransp {
				require.True(t, errors.As(err, &transportErr), "got %T", err)
				assert.Equal(t, "Failed to connect to server.", StatusMessage(err))
			}
		})
	}
}

func TestUpscaleNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newService().Upscale(context.Background(), url, photo(), "")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
	assert.Equal(t, "Failed to connect to server.", StatusMessage(err))
}

func TestUpscaleRejectsOversizedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"image": "` + strings.Repeat("A", 2048) + `"}`))
	}))
	defer server.Close()

	svc := NewUpscaleService(time.Second, 1024, nil)
	_, err := svc.Upscale(context.Background(), server.URL, photo(), "")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Contains(t, err.Error(), "exceeds")
}

func TestUpscaleRejectsNonImage(t *testing.T) {
	file := models.SelectedFile{Name: "notes.txt", MIMEType: "text/plain", Data: []byte("hi")}
	_, err := newService().Upscale(context.Background(), "http://127.0.0.1:1", file, "")

	var inputErr *UserInputError
	require.True(t, errors.As(err, &inputErr))
}

func TestUpscaleNumericResolutionsVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"image": "data:image/jpeg;base64,AAAA", "old_res": 100, "new_res": 300}`))
	}))
	defer server.Close()

	result, err := newService().Upscale(context.Background(), server.URL, photo(), "")
	require.NoError(t, err)
	assert.Equal(t, "100", result.OldRes.String())
	assert.Equal(t, "300", result.NewRes.String())
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"status": "Active", "cors": "Enabled"}`))
	}))
	defer server.Close()

	status, err := newService().Health(context.Background(), server.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, "Active", status.Status)
	assert.Equal(t, "Enabled", status.CORS)
}

func TestHealthNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newService().Health(context.Background(), server.URL)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "Error: boom", StatusMessage(&ApplicationError{StatusCode: 500, Message: "boom"}))
	assert.Equal(t, "Please select an image first.", StatusMessage(ErrNoFileSelected))
	assert.Equal(t, "Failed to connect to server.", StatusMessage(&TransportError{Err: errors.New("x")}))
	assert.Equal(t, "Failed to connect to server.", StatusMessage(errors.New("anything else")))
}
