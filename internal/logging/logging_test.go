package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waabox/jobwatch/internal/logging"
)

func TestNew_WritesFieldsAndMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "info")

	logger.Info().Str("source", "logs.log").Int("records", 4).Msg("batch analysed")

	out := buf.String()
	assert.Contains(t, out, "batch analysed")
	assert.Contains(t, out, "source=logs.log")
	assert.Contains(t, out, "records=4")
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "warn")

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, "shown")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "chatty")

	logger.Debug().Msg("debug line")
	logger.Info().Msg("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}
