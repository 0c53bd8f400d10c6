package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gxo-labs/aglalog/internal/config"
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

func TestMergeLoggerMap_OverridesWinPerKey(t *testing.T) {
	defaults := &recorder{}
	override := &recorder{}

	merged, err := config.MergeLoggerMap(defaultsInto(defaults), plugin.LoggerMap{level.DEBUG: override.out})
	require.NoError(t, err)
	require.Len(t, merged, 7)

	for _, l := range level.Levels() {
		require.NoError(t, merged[l](l.String()))
	}
	assert.Equal(t, []interface{}{"DEBUG"}, override.got)
	assert.Equal(t, []interface{}{"FATAL", "ERROR", "WARN", "INFO", "TRACE"}, defaults.got)
}

func TestMergeLoggerMap_OffIsAlwaysNoop(t *testing.T) {
	rec := &recorder{}
	merged, err := config.MergeLoggerMap(defaultsInto(rec), plugin.LoggerMap{level.OFF: rec.out})
	require.NoError(t, err)
	require.NoError(t, merged[level.OFF]("hidden"))
	assert.Empty(t, rec.got)
}

func TestMergeLoggerMap_MissingDefaultsBecomeNoop(t *testing.T) {
	merged, err := config.MergeLoggerMap(nil, nil)
	require.NoError(t, err)
	for _, l := range level.Levels() {
		require.NotNil(t, merged[l])
		assert.NoError(t, merged[l]("x"))
	}
}

func TestMergeLoggerMap_Errors(t *testing.T) {
	_, err := config.MergeLoggerMap(nil, plugin.LoggerMap{level.ERROR: nil})
	assert.True(t, errors.Is(err, aglaerrors.ErrInvalidLoggerFunction))

	_, err = config.MergeLoggerMap(nil, plugin.LoggerMap{level.ALL: plugin.Noop})
	assert.True(t, errors.Is(err, aglaerrors.ErrInvalidLogLevel))

	_, err = config.MergeLoggerMap(nil, plugin.LoggerMap{level.Level(12): plugin.Noop})
	assert.True(t, errors.Is(err, aglaerrors.ErrInvalidLogLevel))
}

func TestMergeLoggerMap_DoesNotAliasInputs(t *testing.T) {
	defaults := plugin.LoggerMap{level.INFO: plugin.Noop}
	merged, err := config.MergeLoggerMap(defaults, nil)
	require.NoError(t, err)
	merged[level.INFO] = nil
	assert.NotNil(t, defaults[level.INFO])
}
