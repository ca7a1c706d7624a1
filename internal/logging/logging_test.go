package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New("info", "json", &buf)
	require.NoError(t, err)

	logger.WithField("stream", "s-1").Info("imported streams")
	logger.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "imported streams", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "s-1", entry["stream"])
	assert.Contains(t, entry, "timestamp")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New("WARN", "text", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Warn("reload failed")
	assert.Contains(t, buf.String(), `msg="reload failed"`)
	assert.Contains(t, buf.String(), "level=warning")
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := New("loud", "text", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse log level")

	_, err = New("info", "xml", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported log format")
}
