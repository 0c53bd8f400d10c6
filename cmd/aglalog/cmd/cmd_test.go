package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gxo-labs/aglalog/internal/config"
	"github.com/gxo-labs/aglalog/internal/registry"
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
)

// syncBuffer is a bytes.Buffer safe for the concurrent writers of watch.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut syncBuffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, "aglalog.yaml", "schemaVersion: v1.0.0\nlevel: debug\nformatter: json\noutputs:\n  trace: \"null\"\n")
	stdout, _, err := run(t, "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
	assert.Contains(t, stdout, "formatter json")
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown formatter", "schemaVersion: v1.0.0\nformatter: xml\n"},
		{"wrong major", "schemaVersion: v2.0.0\n"},
		{"unknown field", "schemaVersion: v1.0.0\ncolour: red\n"},
		{"bad level", "schemaVersion: v1.0.0\nlevel: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "validate", "--config", writeConfig(t, "bad.yaml", tt.content))
			require.Error(t, err)
			assert.Equal(t, ExitUsageError, exitCode(err))
		})
	}

	_, _, err := run(t, "validate")
	assert.ErrorIs(t, err, aglaerrors.ErrConfig)
}

func TestEmit_RoutesByLevel(t *testing.T) {
	stdout, stderr, err := run(t, "emit", "--formatter", "identity", "--level", "error", "disk", "full")
	require.NoError(t, err)
	assert.Contains(t, stderr, "disk full")
	assert.NotContains(t, stdout, "disk full")

	stdout, _, err = run(t, "emit", "--formatter", "identity", "hello")
	require.NoError(t, err)
	assert.Contains(t, stdout, "hello")
}

func TestEmit_ThresholdSuppresses(t *testing.T) {
	stdout, stderr, err := run(t, "emit", "--threshold", "warn", "--level", "debug", "quiet")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "quiet")
	assert.Contains(t, stderr, "record suppressed by threshold")
}

func TestEmit_ConfigFileAndMetrics(t *testing.T) {
	path := writeConfig(t, "aglalog.toml", "schemaVersion = \"v1.0.0\"\nlevel = \"trace\"\nformatter = \"json\"\n\n[outputs]\ninfo = \"null\"\n")
	stdout, stderr, err := run(t, "emit", "--config", path, "--level", "trace", "--metrics", "deep")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"message":"deep"`)
	assert.Contains(t, stderr, `aglalog_records_total{level="TRACE",outcome="emitted"} 1`)

	stdout, _, err = run(t, "emit", "--config", path, "--level", "info", "dropped")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "dropped")
}

func TestEmit_InvalidLevel(t *testing.T) {
	_, _, err := run(t, "emit", "--level", "loud", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, aglaerrors.ErrInvalidLogLevel)
	assert.Equal(t, ExitUsageError, exitCode(err))
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("AGLALOG_FORMATTER", "identity")
	t.Setenv("AGLALOG_THRESHOLD", "error")
	stdout, _, err := run(t, "emit", "--level", "info", "hidden")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "hidden")

	_, stderr, err := run(t, "emit", "--level", "error", "shown")
	require.NoError(t, err)
	assert.Contains(t, stderr, "shown")
}

func TestWatch_Count(t *testing.T) {
	path := writeConfig(t, "aglalog.yaml", "schemaVersion: v1.0.0\nlevel: all\nformatter: identity\n")
	stdout, stderr, err := run(t, "watch", "--config", path, "--interval", "10ms", "--count", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "heartbeat 2")
	assert.Contains(t, stdout, "heartbeat 1")
	assert.Contains(t, stderr, "heartbeat 2")
}

func TestWatch_RejectsNonPositiveInterval(t *testing.T) {
	_, _, err := run(t, "watch", "--interval", "0s")
	assert.ErrorIs(t, err, aglaerrors.ErrConfig)
}

func TestLevelsAndPlugins(t *testing.T) {
	stdout, _, err := run(t, "levels", "--threshold", "warn")
	require.NoError(t, err)
	assert.Contains(t, stdout, "threshold: WARN")
	assert.Contains(t, stdout, "TRACE")

	stdout, _, err = run(t, "plugins")
	require.NoError(t, err)
	assert.Contains(t, stdout, "json")
	assert.Contains(t, stdout, "null")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "aglalog version dev")
}

func TestWatch_BufferedOutput(t *testing.T) {
	stdout, _, err := run(t, "watch", "--formatter", "identity", "--threshold", "info",
		"--interval", "10ms", "--count", "3", "--buffer", "64")
	require.NoError(t, err)
	assert.Contains(t, stdout, "heartbeat 3")
	assert.NotContains(t, stdout, "heartbeat 0")
}

func TestApplyWithOverrides_FlagsWinOverReloadedFile(t *testing.T) {
	a := &app{v: viper.New(), reg: registry.Default()}
	a.v.Set(keyThreshold, "error")
	cfg := config.New()
	apply := a.applyWithOverrides(cfg)

	require.NoError(t, apply(config.Options{}.WithLevel(level.ALL)))
	assert.Equal(t, level.ERROR, cfg.Threshold())

	a.v.Set(keyFormatter, "xml")
	err := apply(config.Options{}.WithLevel(level.ALL))
	assert.ErrorIs(t, err, aglaerrors.ErrPluginNotFound)
	assert.Equal(t, level.ERROR, cfg.Threshold())
}

func TestWatch_ThresholdFlagSurvivesReload(t *testing.T) {
	content := "schemaVersion: v1.0.0\nlevel: all\nformatter: identity\n"
	path := writeConfig(t, "aglalog.yaml", content)

	type result struct {
		stdout, stderr string
		err            error
	}
	done := make(chan result, 1)
	go func() {
		stdout, stderr, err := run(t, "watch", "--config", path, "--threshold", "error",
			"--interval", "50ms", "--count", "30")
		done <- result{stdout, stderr, err}
	}()

	time.Sleep(500 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var res result
	select {
	case res = <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not finish")
	}
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "config reloaded")
	assert.Contains(t, res.stderr, "heartbeat 30")
}
