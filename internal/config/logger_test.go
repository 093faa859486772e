package config

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("INVADERS_LOG_LEVEL", "warn")
	logger := NewLogger(&buf, "test")
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown", "score", 40)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "score=40")

	t.Setenv("INVADERS_LOG_LEVEL", "chatty")
	assert.Equal(t, log.InfoLevel, NewLogger(&buf, "test").GetLevel())
}
