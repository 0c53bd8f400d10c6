package level_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
)

func TestOrdering(t *testing.T) {
	ordered := []level.Level{level.OFF, level.FATAL, level.ERROR, level.WARN, level.INFO, level.DEBUG, level.TRACE, level.ALL}
	for i := 1; i < len(ordered); i++ {
		assert.Equal(t, -1, level.Compare(ordered[i-1], ordered[i]), "%s should sort before %s", ordered[i-1], ordered[i])
		assert.Equal(t, 1, level.Compare(ordered[i], ordered[i-1]))
	}
	assert.Equal(t, 0, level.Compare(level.INFO, level.INFO))
}

func TestIsEnabled_WarnThreshold(t *testing.T) {
	testCases := []struct {
		lvl  level.Level
		want bool
	}{
		{level.FATAL, true},
		{level.ERROR, true},
		{level.WARN, true},
		{level.INFO, false},
		{level.DEBUG, false},
		{level.TRACE, false},
	}
	for _, tc := range testCases {
		t.Run(tc.lvl.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, level.IsEnabled(tc.lvl, level.WARN))
		})
	}
}

func TestIsEnabled_Sentinels(t *testing.T) {
	for _, l := range level.Levels() {
		assert.False(t, level.IsEnabled(l, level.OFF), "OFF must disable %s", l)
		assert.True(t, level.IsEnabled(l, level.ALL), "ALL must enable %s", l)
	}
	// Sentinels never tag a record.
	assert.False(t, level.IsEnabled(level.OFF, level.ALL))
	assert.False(t, level.IsEnabled(level.ALL, level.ALL))
	// Unknown thresholds enable nothing.
	assert.False(t, level.IsEnabled(level.FATAL, level.Level(42)))
}

func TestLevels_ReturnsCopy(t *testing.T) {
	levels := level.Levels()
	require.Len(t, levels, 6)
	levels[0] = level.TRACE
	assert.Equal(t, level.FATAL, level.Levels()[0])
}

func TestParse(t *testing.T) {
	testCases := []struct {
		input string
		want  level.Level
	}{
		{"off", level.OFF},
		{"FATAL", level.FATAL},
		{"Error", level.ERROR},
		{"warn", level.WARN},
		{"warning", level.WARN},
		{" info ", level.INFO},
		{"debug", level.DEBUG},
		{"trace", level.TRACE},
		{"all", level.ALL},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := level.Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := level.Parse("verbose")
	require.Error(t, err)
	assert.True(t, errors.Is(err, aglaerrors.ErrInvalidLogLevel))
}

func TestTextRoundTrip(t *testing.T) {
	text, err := level.DEBUG.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "debug", string(text))

	var l level.Level
	require.NoError(t, l.UnmarshalText([]byte("error")))
	assert.Equal(t, level.ERROR, l)

	_, err = level.Level(-1).MarshalText()
	assert.True(t, errors.Is(err, aglaerrors.ErrInvalidLogLevel))
	assert.Equal(t, "Level(-1)", level.Level(-1).String())
}
