package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"image-upscaler/internal/logger"
	"image-upscaler/internal/models"
)

const (
	// FormField is the multipart part name the upscaling service reads
	FormField = "image"

	RequestIDHeader = "X-Request-ID"
)

// Uploader sends one image to the upscaling service
type Uploader interface {
	Upscale(ctx context.Context, endpoint string, file models.SelectedFile, requestID string) (*models.UpscaleResult, error)
}

// UpscaleService talks to the remote upscaling endpoint
type UpscaleService struct {
	httpClient       *http.Client
	maxResponseBytes int64
	logger           logger.Logger
}

// NewUpscaleService creates a service. A zero timeout means no client timeout.
func NewUpscaleService(timeout time.Duration, maxResponseBytes int64, log logger.Logger) *UpscaleService {
	if log == nil {
		log = logger.NoOp{}
	}
	if maxResponseBytes <= 0 {
		maxResponseBytes = 64 * 1024 * 1024
	}
	return &UpscaleService{
		httpClient:       &http.Client{Timeout: timeout},
		maxResponseBytes: maxResponseBytes,
		logger:           log,
	}
}

// wireResponse is the union of the success and error payloads
type wireResponse struct {
	Image  string            `json:"image"`
	OldRes models.Resolution `json:"old_res"`
	NewRes models.Resolution `json:"new_res"`
	Error  string            `json:"error"`
}

// Upscale posts file as multipart field "image" and decodes the JSON reply
func (s *UpscaleService) Upscale(ctx context.Context, endpoint string, file models.SelectedFile, requestID string) (*models.UpscaleResult, error) {
	if !file.IsImage() {
		return nil, &UserInputError{Message: fmt.Sprintf("%s is not an image", file.Name)}
	}

	body, contentType, err := encodeMultipart(file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	s.logger.Debug("UpscaleService", "sending upload", map[string]interface{}{
		"endpoint":   endpoint,
		"file":       file.Name,
		"mime":       file.MIMEType,
		"size_bytes": file.Size(),
		"request_id": requestID,
	})

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, s.maxResponseBytes+1))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if int64(len(raw)) > s.maxResponseBytes {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("response exceeds %d bytes", s.maxResponseBytes)}
	}

	return classify(resp.StatusCode, raw)
}

func classify(status int, raw []byte) (*models.UpscaleResult, error) {
	var payload wireResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &TransportError{StatusCode: status, Err: fmt.Errorf("failed to decode response body: %w", err)}
	}

	if payload.Error != "" {
		return nil, &ApplicationError{StatusCode: status, Message: payload.Error}
	}

	if status < 200 || status > 299 {
		return nil, &TransportError{StatusCode: status, Err: fmt.Errorf("received non-2xx status code: %d", status)}
	}

	if payload.Image == "" {
		return nil, &TransportError{StatusCode: status, Err: errors.New("response is missing the image field")}
	}

	return &models.UpscaleResult{
		Image:  payload.Image,
		OldRes: payload.OldRes,
		NewRes: payload.NewRes,
	}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart builds the single-part form body. The part keeps the
// file's own MIME type instead of application/octet-stream.
func encodeMultipart(file models.SelectedFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(FormField), quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", file.MIMEType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}

// Health queries the service's root health endpoint
func (s *UpscaleService) Health(ctx context.Context, baseURL string) (*models.HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/", nil)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))}
	}

	var status models.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response body: %w", err)}
	}

	return &status, nil
}
