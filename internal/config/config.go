// Package config holds the logger configuration: the threshold, the
// resolved formatter and the level-indexed output map, swapped atomically.
// It also loads that configuration from YAML or TOML files.
package config

import (
	"sync"
	"sync/atomic"

	"github.com/gxo-labs/aglalog/internal/formatter"
	"github.com/gxo-labs/aglalog/internal/output"
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// DefaultLevel is the threshold of a fresh Configuration.
const DefaultLevel = level.INFO

// Options is a partial configuration update. Nil fields keep their current value.
type Options struct {
	Level     *level.Level
	Formatter *plugin.FormatterSpec
	LoggerMap plugin.LoggerMap
}

// WithLevel returns a copy of o with the threshold set.
func (o Options) WithLevel(l level.Level) Options {
	o.Level = &l
	return o
}

// WithFormatter returns a copy of o with the formatter set.
func (o Options) WithFormatter(spec plugin.FormatterSpec) Options {
	o.Formatter = &spec
	return o
}

// WithLoggerMap returns a copy of o with logger-map overrides set.
func (o Options) WithLoggerMap(m plugin.LoggerMap) Options {
	o.LoggerMap = m
	return o
}

// Snapshot is one immutable configuration state. A caller that reads its
// formatter and output function from the same Snapshot always sees a
// consistent pair.
type Snapshot struct {
	threshold level.Level
	formatter plugin.Formatter
	loggers   plugin.LoggerMap
	stateful  bool
}

// Threshold returns the most verbose enabled level.
func (s *Snapshot) Threshold() level.Level { return s.threshold }

// Formatter returns the resolved formatter.
func (s *Snapshot) Formatter() plugin.Formatter { return s.formatter }

// LoggerFunction returns the output function for l. Levels without an
// entry, OFF included, get the no-op.
func (s *Snapshot) LoggerFunction(l level.Level) plugin.OutputFunc {
	if fn, ok := s.loggers[l]; ok && fn != nil {
		return fn
	}
	return plugin.Noop
}

// Stateful reports whether the formatter was built from a factory.
func (s *Snapshot) Stateful() bool { return s.stateful }

// Configuration is the mutable holder owned by one facade.
type Configuration struct {
	defaults plugin.LoggerMap
	current  atomic.Pointer[Snapshot]
	// mu serializes writers; readers only load the pointer.
	mu sync.Mutex
}

// New returns a Configuration with threshold INFO, the plain formatter and
// the console logger map.
func New() *Configuration {
	return NewWithDefaults(output.DefaultLoggerMap())
}

// NewWithDefaults returns a Configuration whose default logger map, used both
// initially and as the base for overrides, is defaults. Levels missing from
// defaults route to the no-op.
func NewWithDefaults(defaults plugin.LoggerMap) *Configuration {
	base := make(plugin.LoggerMap, len(defaults)+1)
	for _, l := range level.Levels() {
		if fn := defaults[l]; fn != nil {
			base[l] = fn
		} else {
			base[l] = plugin.Noop
		}
	}
	base[level.OFF] = plugin.Noop

	c := &Configuration{defaults: base}
	c.current.Store(&Snapshot{
		threshold: DefaultLevel,
		formatter: formatter.Plain,
		loggers:   base,
	})
	return c
}

// SetConfiguration validates opts, resolves its plugins and then replaces
// the whole state in one step. On error the current state is unchanged.
func (c *Configuration) SetConfiguration(opts Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := *c.current.Load()

	if opts.Level != nil {
		if !level.Valid(*opts.Level) {
			return aglaerrors.NewInvalidLogLevel(int(*opts.Level))
		}
		next.threshold = *opts.Level
	}
	if opts.LoggerMap != nil {
		merged, err := MergeLoggerMap(c.defaults, opts.LoggerMap)
		if err != nil {
			return err
		}
		next.loggers = merged
	}
	// Resolve last so a rejected update never instantiates a formatter.
	if opts.Formatter != nil {
		fn, stateful, err := formatter.Resolve(*opts.Formatter)
		if err != nil {
			return err
		}
		next.formatter = fn
		next.stateful = stateful
	}

	c.current.Store(&next)
	return nil
}

// Snapshot returns the current immutable state.
func (c *Configuration) Snapshot() *Snapshot {
	return c.current.Load()
}

// Threshold returns the current threshold.
func (c *Configuration) Threshold() level.Level { return c.Snapshot().Threshold() }

// Formatter returns the current formatter.
func (c *Configuration) Formatter() plugin.Formatter { return c.Snapshot().Formatter() }

// LoggerFunction returns the current output function for l.
func (c *Configuration) LoggerFunction(l level.Level) plugin.OutputFunc {
	return c.Snapshot().LoggerFunction(l)
}

// HasStatefulFormatter reports whether the active formatter was produced by
// instantiating a factory.
func (c *Configuration) HasStatefulFormatter() bool { return c.Snapshot().Stateful() }
