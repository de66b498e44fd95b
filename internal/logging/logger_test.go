package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"trace", logrus.TraceLevel},
		{"fatal", logrus.FatalLevel},
		{"panic", logrus.PanicLevel},
		{"", logrus.InfoLevel},
		{"nonsense", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetLevel(tt.in))
		})
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	})

	base := filepath.Join(t.TempDir(), "scoreboard")
	closer := Setup(LoggerSetupParams{
		LogFileName:   base,
		LogLevel:      "debug",
		LogFormatJSON: true,
	})

	logrus.WithField("rows", 3).Debug("normalized batch")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(base + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"normalized batch"`)
	assert.Contains(t, string(data), `"rows":3`)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetup_DiscardsWithoutDestination(t *testing.T) {
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	closer := Setup(LoggerSetupParams{LogLevel: "info"})
	assert.Equal(t, io.Discard, logrus.StandardLogger().Out)
	assert.NoError(t, closer.Close())
}
