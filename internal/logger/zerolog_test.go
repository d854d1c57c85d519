package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapterWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Info("Upload", "request started", map[string]interface{}{"endpoint": "http://localhost:5000/upscale"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Upload", entry["component"])
	assert.Equal(t, "request started", entry["message"])
	assert.Equal(t, "http://localhost:5000/upscale", entry["endpoint"])
}

func TestZerologAdapterError(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)

	log.Error("Upload", errors.New("dial tcp: no such host"), nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "dial tcp: no such host", entry["error"])
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("Preview", "decoded", nil)
	log.Info("Preview", "decoded", nil)

	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	t.Setenv("DEBUG", "")

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestParseLevelDebugEnv(t *testing.T) {
	t.Setenv("DEBUG", "1")
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(""))
}
