package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger builds the structured logger shared by a command. The level
// comes from INVADERS_LOG_LEVEL and falls back to info when unset or invalid.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv("INVADERS_LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
		Level:           level,
	})
}
