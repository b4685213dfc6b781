package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func captureGlobalLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)
	return &buf
}

func TestLogCommand(t *testing.T) {
	buf := captureGlobalLogger(t)

	LogCommand("check", []string{"pg1", "pg2"})

	assert.Contains(t, buf.String(), `"command":"check"`)
	assert.Contains(t, buf.String(), `"args":["pg1","pg2"]`)
	assert.Contains(t, buf.String(), "Executing command")
}

func TestGetLoggerTagsComponent(t *testing.T) {
	buf := captureGlobalLogger(t)

	logger := GetLogger("catalog")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"catalog"`)
	assert.Contains(t, buf.String(), `"hello"`)
}
