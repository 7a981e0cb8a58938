package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")

	assert.Equal(t, logrus.InfoLevel, New(&bytes.Buffer{}, false).GetLevel())
	assert.Equal(t, logrus.DebugLevel, New(&bytes.Buffer{}, true).GetLevel())
}

func TestNew_EnvOverridesVerbose(t *testing.T) {
	t.Setenv(EnvLogLevel, "WARN")
	assert.Equal(t, logrus.WarnLevel, New(&bytes.Buffer{}, true).GetLevel())
}

func TestNew_InvalidEnvIgnored(t *testing.T) {
	t.Setenv(EnvLogLevel, "loud")
	t.Setenv(EnvLogFormat, "xml")

	var buf bytes.Buffer
	l := New(&buf, false)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestNew_JSONFormat(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "json")

	var buf bytes.Buffer
	New(&buf, false).WithField("run_id", "r1").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "r1", entry["run_id"])
}

func TestParseLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		" Debug ": logrus.DebugLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"off":     logrus.PanicLevel,
	}
	for raw, want := range cases {
		got, ok := parseLevel(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := parseLevel("")
	assert.False(t, ok)
}
