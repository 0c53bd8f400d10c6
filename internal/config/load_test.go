package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gxo-labs/aglalog/internal/config"
	"github.com/gxo-labs/aglalog/internal/formatter"
	"github.com/gxo-labs/aglalog/internal/registry"
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

const validYAML = `
schemaVersion: "v1.0.0"
level: debug
formatter: json
outputs:
  trace: "null"
  info: console
`

const validTOML = `
schemaVersion = "1.2.0"
level = "WARN"
formatter = "identity"

[outputs]
error = "null"
`

// testRegistry holds the built-ins plus a capturing output.
func testRegistry(t *testing.T, rec *recorder) *registry.StaticRegistry {
	t.Helper()
	reg := registry.NewStaticRegistry()
	require.NoError(t, reg.RegisterFormatter(formatter.NameIdentity, plugin.Direct(formatter.Identity)))
	require.NoError(t, reg.RegisterFormatter(formatter.NameJSON, plugin.Instantiable(formatter.NewJSON)))
	require.NoError(t, reg.RegisterOutput("null", rec.out))
	return reg
}

func TestLoad_YAML(t *testing.T) {
	f, err := config.Load([]byte(validYAML), config.FormatYAML, "inline.yaml")
	require.NoError(t, err)
	assert.Equal(t, "debug", f.Level)
	assert.Equal(t, "json", f.Formatter)
	assert.Equal(t, map[string]string{"trace": "null", "info": "console"}, f.Outputs)
	assert.Equal(t, "inline.yaml", f.FilePath)
}

func TestLoad_TOML(t *testing.T) {
	f, err := config.Load([]byte(validTOML), config.FormatTOML, "inline.toml")
	require.NoError(t, err)
	assert.Equal(t, "WARN", f.Level)
	assert.Equal(t, "identity", f.Formatter)
	assert.Equal(t, "null", f.Outputs["error"])
}

func TestLoad_Failures(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		sentinel error
	}{
		{"empty", "  \n", aglaerrors.ErrConfig},
		{"malformed", "level: [unclosed", aglaerrors.ErrConfig},
		{"missing version", "level: info\n", aglaerrors.ErrValidation},
		{"unknown field", "schemaVersion: v1.0.0\ncolour: red\n", aglaerrors.ErrValidation},
		{"bad level", "schemaVersion: v1.0.0\nlevel: verbose\n", aglaerrors.ErrValidation},
		{"routing ALL", "schemaVersion: v1.0.0\noutputs:\n  all: \"null\"\n", aglaerrors.ErrValidation},
		{"bad version format", "schemaVersion: banana\n", aglaerrors.ErrValidation},
		{"wrong major", "schemaVersion: v2.0.0\n", aglaerrors.ErrValidation},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load([]byte(tc.content), config.FormatYAML, tc.name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.sentinel), "got %v", err)
		})
	}
}

func TestFile_Options(t *testing.T) {
	rec := &recorder{}
	reg := testRegistry(t, rec)
	f, err := config.Load([]byte(validYAML), config.FormatYAML, "inline.yaml")
	require.NoError(t, err)

	opts, err := f.Options(reg)
	require.NoError(t, err)
	require.NotNil(t, opts.Level)
	assert.Equal(t, level.DEBUG, *opts.Level)
	require.NotNil(t, opts.Formatter)
	assert.True(t, opts.Formatter.IsInstantiable())
	assert.Len(t, opts.LoggerMap, 1, "console entries keep the default route")

	cfg := config.New()
	require.NoError(t, cfg.SetConfiguration(opts))
	assert.True(t, cfg.HasStatefulFormatter())
	require.NoError(t, cfg.LoggerFunction(level.TRACE)("t"))
	assert.Equal(t, []interface{}{"t"}, rec.got)
}

func TestFile_OptionsFillDefaults(t *testing.T) {
	f, err := config.Load([]byte("schemaVersion: v1.0.0\n"), config.FormatYAML, "minimal.yaml")
	require.NoError(t, err)

	opts, err := f.Options(registry.NewStaticRegistry())
	require.NoError(t, err)
	require.NotNil(t, opts.Level)
	assert.Equal(t, config.DefaultLevel, *opts.Level)
	require.NotNil(t, opts.Formatter)
	assert.NotNil(t, opts.LoggerMap)
}

func TestFile_OptionsUnknownPlugins(t *testing.T) {
	content := "schemaVersion: v1.0.0\nformatter: xml\noutputs:\n  error: kafka\n"
	f, err := config.Load([]byte(content), config.FormatYAML, "plugins.yaml")
	require.NoError(t, err)

	errs := config.ValidateFile(f, registry.NewStaticRegistry())
	assert.Len(t, errs, 2)

	_, err = f.Options(registry.NewStaticRegistry())
	require.Error(t, err)
	assert.True(t, errors.Is(err, aglaerrors.ErrValidation))
	assert.True(t, errors.Is(err, aglaerrors.ErrPluginNotFound))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "aglalog.yaml")
	tomlPath := filepath.Join(dir, "aglalog.toml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(validYAML), 0o644))
	require.NoError(t, os.WriteFile(tomlPath, []byte(validTOML), 0o644))

	f, err := config.LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, f.FilePath)

	f, err = config.LoadFile(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "identity", f.Formatter)

	_, err = config.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, aglaerrors.ErrConfig))

	_, err = config.LoadFile("")
	assert.True(t, errors.Is(err, aglaerrors.ErrConfig))

	assert.Equal(t, config.FormatTOML, config.FormatFromPath("x.TOML"))
	assert.Equal(t, config.FormatYAML, config.FormatFromPath("x.json"))
}
