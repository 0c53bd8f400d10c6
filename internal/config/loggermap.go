package config

import (
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// MergeLoggerMap overlays overrides on defaults key by key and returns a new map.
//
// Every record level gets overrides[l] when present, defaults[l] otherwise.
// OFF always maps to the no-op, whatever overrides says. An override that is
// present but nil fails with InvalidLoggerFunction; a key for ALL or an
// unknown level fails with InvalidLogLevel.
func MergeLoggerMap(defaults, overrides plugin.LoggerMap) (plugin.LoggerMap, error) {
	for l := range overrides {
		if l != level.OFF && !level.Taggable(l) {
			return nil, aglaerrors.NewInvalidLogLevel(l.String())
		}
	}
	for _, l := range level.Levels() {
		if fn, present := overrides[l]; present && fn == nil {
			return nil, aglaerrors.NewInvalidLoggerFunction(l.String())
		}
	}

	merged := make(plugin.LoggerMap, len(level.Levels())+1)
	for _, l := range level.Levels() {
		if fn, present := overrides[l]; present {
			merged[l] = fn
		} else if fn := defaults[l]; fn != nil {
			merged[l] = fn
		} else {
			merged[l] = plugin.Noop
		}
	}
	merged[level.OFF] = plugin.Noop
	return merged, nil
}
