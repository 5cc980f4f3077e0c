package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ogtriplek/tyre-storefront/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	log := New(config.LoggingConfig{Level: "warn", Format: "json"})
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.Info("hidden")
	log.WithField("vehicle_id", "car-1").Warn("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "car-1", entry["vehicle_id"])
}

func TestNewFallsBackToInfo(t *testing.T) {
	log := New(config.LoggingConfig{Level: "chatty", Format: "text"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
