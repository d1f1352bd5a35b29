package logging

import (
	"testing"

	logger "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	original := logger.StandardLogger().Formatter
	originalLevel := logger.GetLevel()
	t.Cleanup(func() {
		logger.SetFormatter(original)
		logger.SetLevel(originalLevel)
	})

	SetupLogger(Config{LogLevel: "WARN", LogFormat: "json"})
	assert.Equal(t, logger.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logger.JSONFormatter{}, logger.StandardLogger().Formatter)

	SetupLogger(Config{LogLevel: "loud", LogFormat: "xml"})
	assert.Equal(t, logger.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logger.TextFormatter{}, logger.StandardLogger().Formatter)
}
