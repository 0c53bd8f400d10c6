package config

import (
	_ "embed" // Required for //go:embed directive
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
)

//go:embed aglalog_schema_v1.0.0.json
var schemaV1Bytes []byte

var (
	schemaV1   *gojsonschema.Schema
	schemaOnce sync.Once
	schemaErr  error
)

// loadSchema compiles the embedded schema once.
func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		if len(schemaV1Bytes) == 0 {
			schemaErr = aglaerrors.NewConfigError("embedded schema 'aglalog_schema_v1.0.0.json' is empty", nil)
			return
		}
		schemaV1, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaV1Bytes))
		if schemaErr != nil {
			schemaErr = aglaerrors.NewConfigError("failed to compile embedded schema 'aglalog_schema_v1.0.0.json'", schemaErr)
		}
	})
	return schemaV1, schemaErr
}

// ValidateWithSchema checks a decoded document (maps, slices, scalars)
// against the embedded v1.0.0 schema.
func ValidateWithSchema(document interface{}) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return aglaerrors.NewConfigError("schema validation process failed", err)
	}
	if result.Valid() {
		return nil
	}

	errMsg := "config failed JSON schema validation:"
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "(root)" || field == "" {
			field = desc.Context().String()
		}
		errMsg += fmt.Sprintf("\n  - Field '%s': %s", field, desc.Description())
	}
	return aglaerrors.NewValidationError(errMsg, nil)
}
