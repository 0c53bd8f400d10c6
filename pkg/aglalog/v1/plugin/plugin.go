// Package plugin defines the public contracts for formatter and output plugins.
package plugin

import (
	"reflect"
	"time"

	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
)

// Record is a single log event. It is created per call and never mutated
// after it is handed to a formatter.
type Record struct {
	Level     level.Level
	Timestamp time.Time
	Message   string
	Args      []interface{}

	// TraceID and SpanID are set only when the record was logged with a
	// context carrying a valid OpenTelemetry span.
	TraceID string
	SpanID  string
}

// Formatter renders a Record into the payload handed to an output function.
// The payload type is formatter-defined (string, map, struct...).
type Formatter func(Record) (interface{}, error)

// OutputFunc consumes a rendered payload.
type OutputFunc func(rendered interface{}) error

// LoggerMap routes each record level to its output function.
type LoggerMap map[level.Level]OutputFunc

// Noop is the output function bound to OFF.
func Noop(interface{}) error { return nil }

// Executor is the capability exposed by stateful formatter instances.
type Executor interface {
	Execute(Record) (interface{}, error)
}

// ExecutorFactory constructs a new formatter instance.
type ExecutorFactory func() Executor

// FormatterSpec is the tagged variant accepted by the configuration: either a
// direct Formatter or a factory producing an Executor. Build one with Direct,
// Instantiable or FromExecutor; the zero value is rejected.
type FormatterSpec struct {
	direct  Formatter
	factory ExecutorFactory
}

// Direct wraps a plain formatter function.
func Direct(fn Formatter) FormatterSpec {
	return FormatterSpec{direct: fn}
}

// Instantiable wraps a factory. The configuration calls it exactly once per
// resolution and binds the instance's Execute method as the formatter.
func Instantiable(factory ExecutorFactory) FormatterSpec {
	return FormatterSpec{factory: factory}
}

// FromExecutor accepts an instance the caller already built. It is treated
// as a direct formatter bound to e.Execute; the configuration does not own it.
func FromExecutor(e Executor) FormatterSpec {
	if IsNilExecutor(e) {
		return FormatterSpec{}
	}
	return FormatterSpec{direct: e.Execute}
}

// IsNilExecutor reports whether e is nil, including a nil pointer (or other
// nil reference) stored in the interface.
func IsNilExecutor(e Executor) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Chan, reflect.Interface, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Func returns the direct formatter, or nil.
func (s FormatterSpec) Func() Formatter { return s.direct }

// Factory returns the instance factory, or nil.
func (s FormatterSpec) Factory() ExecutorFactory { return s.factory }

// IsInstantiable reports whether the spec carries a factory.
func (s FormatterSpec) IsInstantiable() bool { return s.factory != nil }

// Registry resolves plugins by name. Names are what configuration files refer to.
type Registry interface {
	// RegisterFormatter associates a formatter spec with a name. It returns a
	// ConfigError if the name is empty, the spec is empty, or the name is taken.
	RegisterFormatter(name string, spec FormatterSpec) error
	// RegisterOutput associates an output function with a name.
	RegisterOutput(name string, fn OutputFunc) error
	// Formatter returns the spec registered under name or a PluginNotFound error.
	Formatter(name string) (FormatterSpec, error)
	// Output returns the output function registered under name or a PluginNotFound error.
	Output(name string) (OutputFunc, error)
	// List returns registered names of the given kind ("formatter" or "output"), sorted.
	List(kind string) []string
}
