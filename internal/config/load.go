package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// SupportedSchemaVersionConstraint is the major version config files must declare.
const SupportedSchemaVersionConstraint = "v1"

// Supported file formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// File is the on-disk shape of a logger configuration.
//
//	schemaVersion: "v1.0.0"
//	level: info
//	formatter: json
//	outputs:
//	  debug: "null"
type File struct {
	SchemaVersion string            `yaml:"schemaVersion" toml:"schemaVersion"`
	Level         string            `yaml:"level,omitempty" toml:"level,omitempty"`
	Formatter     string            `yaml:"formatter,omitempty" toml:"formatter,omitempty"`
	Outputs       map[string]string `yaml:"outputs,omitempty" toml:"outputs,omitempty"`
	// FilePath records where the file was read from, for error messages.
	FilePath string `yaml:"-" toml:"-"`
}

// FormatFromPath picks the decoder from the file extension; anything other
// than .toml is read as YAML (which also covers JSON).
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load validates data against the embedded schema, decodes it strictly,
// checks the schema version and returns the parsed File.
func Load(data []byte, format, filePathHint string) (*File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, aglaerrors.NewConfigError("config content cannot be empty", nil)
	}

	generic, err := decodeGeneric(data, format)
	if err != nil {
		return nil, aglaerrors.NewConfigError(fmt.Sprintf("failed to parse config '%s'", filePathHint), err)
	}
	if err := ValidateWithSchema(generic); err != nil {
		return nil, err
	}

	var f File
	if err := decodeStrict(data, format, &f); err != nil {
		return nil, aglaerrors.NewConfigError(fmt.Sprintf("failed to decode config '%s'", filePathHint), err)
	}
	f.FilePath = filePathHint

	version := f.SchemaVersion
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return nil, aglaerrors.NewValidationError(
			fmt.Sprintf("config '%s' has invalid 'schemaVersion' format: '%s'", filePathHint, f.SchemaVersion), nil)
	}
	if semver.Major(version) != SupportedSchemaVersionConstraint {
		return nil, aglaerrors.NewValidationError(
			fmt.Sprintf("config '%s' schemaVersion '%s' is not compatible with requirement '%s'",
				filePathHint, f.SchemaVersion, SupportedSchemaVersionConstraint), nil)
	}
	return &f, nil
}

// LoadFile reads and loads the config file at path.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return nil, aglaerrors.NewConfigError("config file path cannot be empty", nil)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, aglaerrors.NewConfigError(fmt.Sprintf("failed to get absolute path for '%s'", path), err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, aglaerrors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", absPath), err)
	}
	return Load(data, FormatFromPath(absPath), absPath)
}

// Options resolves the names in f through reg into a configuration update.
func (f *File) Options(reg plugin.Registry) (Options, error) {
	errs := ValidateFile(f, reg)
	if len(errs) > 0 {
		messages := make([]string, 0, len(errs))
		for _, e := range errs {
			messages = append(messages, e.Error())
		}
		combined := fmt.Sprintf("config '%s' has %d validation error(s):\n- %s",
			f.FilePath, len(messages), strings.Join(messages, "\n- "))
		return Options{}, aglaerrors.NewValidationError(combined, errs[0])
	}
	return f.buildOptions(reg)
}

// LoadOptions is LoadFile followed by Options.
func LoadOptions(path string, reg plugin.Registry) (Options, error) {
	f, err := LoadFile(path)
	if err != nil {
		return Options{}, err
	}
	return f.Options(reg)
}

func decodeGeneric(data []byte, format string) (interface{}, error) {
	var generic interface{}
	switch format {
	case FormatTOML:
		var m map[string]interface{}
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		generic = m
	default:
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, err
		}
	}
	return generic, nil
}

// decodeStrict rejects fields File does not define, so typos surface early.
func decodeStrict(data []byte, format string, out *File) error {
	switch format {
	case FormatTOML:
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(out); err != nil {
			return fmt.Errorf("TOML parsing error: %w", err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(out); err != nil {
			return fmt.Errorf("YAML parsing error: %w", err)
		}
	}
	return nil
}
