package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
}

func TestFor_WritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	InitWithOutput("info", &buf)
	defer InitWithOutput("info", &bytes.Buffer{})

	For("extraction").WithField("kind", "pdf").Info("extracted")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "extracted", line["message"])
	assert.Equal(t, "extraction", line["component"])
	assert.Equal(t, "pdf", line["kind"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "timestamp")
}
