package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTagsService(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "")
	Init("assessment-service")
	defer Log.ReplaceHooks(make(logrus.LevelHooks))

	var buf bytes.Buffer
	Log.SetOutput(&buf)
	Log.WithField("label", "HIGH").Debug("assessed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "assessment-service", entry["service"])
	assert.Equal(t, "HIGH", entry["label"])
	assert.Equal(t, "debug", entry["level"])
}

func TestLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, level(""))
	assert.Equal(t, logrus.InfoLevel, level("loud"))
	assert.Equal(t, logrus.WarnLevel, level("warn"))
}

func TestFormatter(t *testing.T) {
	assert.IsType(t, &logrus.TextFormatter{}, formatter("TEXT"))
	assert.IsType(t, &logrus.JSONFormatter{}, formatter("json"))
	assert.IsType(t, &logrus.JSONFormatter{}, formatter(""))
}
