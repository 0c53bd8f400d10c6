// Package level defines the severity ordering used for threshold filtering.
//
// Lower values are more severe. OFF and ALL are sentinels: they are valid
// thresholds but never tag a record.
package level

import (
	"fmt"
	"strings"

	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
)

// Level is a log severity.
type Level int

const (
	OFF Level = iota
	FATAL
	ERROR
	WARN
	INFO
	DEBUG
	TRACE
	ALL
)

var names = [...]string{"OFF", "FATAL", "ERROR", "WARN", "INFO", "DEBUG", "TRACE", "ALL"}

// taggable lists the levels a record can carry, most severe first.
var taggable = []Level{FATAL, ERROR, WARN, INFO, DEBUG, TRACE}

// Levels returns the record levels in severity order.
func Levels() []Level {
	out := make([]Level, len(taggable))
	copy(out, taggable)
	return out
}

// Valid reports whether l is one of the eight recognized values.
func Valid(l Level) bool {
	return l >= OFF && l <= ALL
}

// Taggable reports whether l can tag a record (not OFF, not ALL).
func Taggable(l Level) bool {
	return l > OFF && l < ALL
}

// Compare orders a and b by their encoded value: -1, 0 or +1.
func Compare(a, b Level) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsEnabled reports whether a record at l passes threshold.
func IsEnabled(l, threshold Level) bool {
	if !Taggable(l) || !Valid(threshold) {
		return false
	}
	return l <= threshold
}

func (l Level) String() string {
	if Valid(l) {
		return names[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Parse converts a case-insensitive level name into a Level.
func Parse(s string) (Level, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == "WARNING" {
		return WARN, nil
	}
	for i, n := range names {
		if n == upper {
			return Level(i), nil
		}
	}
	return OFF, aglaerrors.NewInvalidLogLevel(s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !Valid(l) {
		return nil, aglaerrors.NewInvalidLogLevel(int(l))
	}
	return []byte(strings.ToLower(names[l])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so levels can be read
// from YAML, TOML and JSON documents.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
