package log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_LevelFiltering(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, "warn", true))

	log.Info().Msg("hidden")
	log.Warn().Str("quote_id", "abc").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "quote_id=abc")
}

func TestSetup_EmptyLevelDefaultsToInfo(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, "", true))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetup_InvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	err := Setup(&buf, "loud", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
