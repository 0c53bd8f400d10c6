package output_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gxo-labs/aglalog/internal/output"
	"github.com/gxo-labs/aglalog/internal/registry"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

type named struct{}

func (named) String() string { return "stringer" }

func TestConsole_RoutesBySeverity(t *testing.T) {
	var stdout, stderr bytes.Buffer
	m := output.NewConsole(&stdout, &stderr).LoggerMap()

	require.Len(t, m, 7, "six record levels plus OFF")
	for _, l := range level.Levels() {
		require.NoError(t, m[l](l.String()))
	}
	require.NoError(t, m[level.OFF]("ignored"))

	assert.Equal(t, "FATAL\nERROR\nWARN\n", stderr.String())
	assert.Equal(t, "INFO\nDEBUG\nTRACE\n", stdout.String())
}

func TestWriter_PropagatesWriteErrors(t *testing.T) {
	fn := output.NewWriter(failingWriter{}).Func(level.INFO)
	assert.EqualError(t, fn("x"), "closed pipe")
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", output.Stringify(nil))
	assert.Equal(t, "a", output.Stringify("a"))
	assert.Equal(t, "b", output.Stringify([]byte("b")))
	assert.Equal(t, "stringer", output.Stringify(named{}))
	assert.Equal(t, "map[k:1]", output.Stringify(map[string]int{"k": 1}))
}

func TestBuiltins_Registered(t *testing.T) {
	names := registry.Default().List(registry.KindOutput)
	for _, want := range []string{output.NameStdout, output.NameStderr, output.NameNull} {
		assert.Contains(t, names, want)
	}
	assert.NotContains(t, names, output.NameConsole)
	fn, err := registry.Default().Output(output.NameNull)
	require.NoError(t, err)
	assert.NoError(t, fn("dropped"))
}
