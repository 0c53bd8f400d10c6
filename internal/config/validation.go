package config

import (
	"fmt"

	"github.com/gxo-labs/aglalog/internal/formatter"
	"github.com/gxo-labs/aglalog/internal/output"
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// ValidateFile checks every name in f against reg and returns all problems found.
func ValidateFile(f *File, reg plugin.Registry) []error {
	var errs []error

	if f.Level != "" {
		if _, err := level.Parse(f.Level); err != nil {
			errs = append(errs, err)
		}
	}
	if f.Formatter != "" {
		if _, err := reg.Formatter(f.Formatter); err != nil {
			errs = append(errs, err)
		}
	}
	for key, name := range f.Outputs {
		l, err := level.Parse(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !level.Taggable(l) {
			errs = append(errs, aglaerrors.NewValidationError(fmt.Sprintf("outputs: level '%s' cannot be routed", key), nil))
			continue
		}
		if name == output.NameConsole {
			continue
		}
		if _, err := reg.Output(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// buildOptions converts an already validated File into Options. A file
// describes the whole state: omitted fields fall back to the defaults
// rather than keeping whatever was configured before.
func (f *File) buildOptions(reg plugin.Registry) (Options, error) {
	opts := Options{}.
		WithLevel(DefaultLevel).
		WithFormatter(plugin.Direct(formatter.Plain))

	if f.Level != "" {
		l, err := level.Parse(f.Level)
		if err != nil {
			return Options{}, err
		}
		opts = opts.WithLevel(l)
	}
	if f.Formatter != "" {
		spec, err := reg.Formatter(f.Formatter)
		if err != nil {
			return Options{}, err
		}
		opts = opts.WithFormatter(spec)
	}

	overrides := make(plugin.LoggerMap, len(f.Outputs))
	for key, name := range f.Outputs {
		// "console" keeps the default route for that level.
		if name == output.NameConsole {
			continue
		}
		l, err := level.Parse(key)
		if err != nil {
			return Options{}, err
		}
		fn, err := reg.Output(name)
		if err != nil {
			return Options{}, err
		}
		overrides[l] = fn
	}
	return opts.WithLoggerMap(overrides), nil
}
