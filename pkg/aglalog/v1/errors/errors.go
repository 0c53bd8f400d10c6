// Package errors defines the error taxonomy raised by aglalog.
//
// Every failure is an *AglaError tagged with an ErrorType. Callers match
// kinds with the standard library helpers, e.g.
//
//	if errors.Is(err, aglaerrors.ErrInvalidLogLevel) { ... }
package errors

import (
	"errors"
	"fmt"
	"time"
)

// --- Error Kinds ---

const (
	TypeInvalidFormatterShape = "InvalidFormatterShape"
	TypeInvalidLoggerFunction = "InvalidLoggerFunction"
	TypeInvalidLogLevel       = "InvalidLogLevel"
	TypeFormatterExecution    = "FormatterExecutionError"
	TypeOutputExecution       = "OutputExecutionError"
	TypeAlreadyInitialized    = "AlreadyInitialized"
	TypeNotInitialized        = "NotInitialized"
	TypeNoActiveTest          = "NoActiveTest"
	TypeConfig                = "ConfigError"
	TypeValidation            = "ValidationError"
	TypePluginNotFound        = "PluginNotFound"
)

// Severity classifies how serious an error is for the caller.
type Severity string

const (
	SeverityFatal   Severity = "fatal"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ChainHook rewrites the message of an error after its cause was recorded.
type ChainHook func(message string, cause error) string

// AglaError is the base error carried by every aglalog failure.
type AglaError struct {
	ErrorType string
	Message   string
	Code      string
	Severity  Severity
	Timestamp time.Time
	Context   map[string]interface{}
	Cause     error

	hook ChainHook
}

// Option customizes an AglaError at construction.
type Option func(*AglaError)

// WithCode sets the machine readable error code.
func WithCode(code string) Option {
	return func(e *AglaError) { e.Code = code }
}

// WithSeverity sets the error severity.
func WithSeverity(severity Severity) Option {
	return func(e *AglaError) { e.Severity = severity }
}

// WithContext attaches a key/value pair of diagnostic context.
func WithContext(key string, value interface{}) Option {
	return func(e *AglaError) {
		if e.Context == nil {
			e.Context = make(map[string]interface{})
		}
		e.Context[key] = value
	}
}

// WithChainHook installs a hook that runs after the base step of Chain.
func WithChainHook(hook ChainHook) Option {
	return func(e *AglaError) { e.hook = hook }
}

// now is replaced in tests that need deterministic timestamps.
var now = time.Now

// New creates an AglaError of the given kind.
func New(errorType, message string, opts ...Option) *AglaError {
	e := &AglaError{
		ErrorType: errorType,
		Message:   message,
		Severity:  SeverityError,
		Timestamp: now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Chain links cause to e and returns e for fluent composition.
//
// The base step always runs first: the cause is recorded and a missing
// timestamp is stamped. The optional hook installed with WithChainHook may
// then rewrite the message; it cannot skip the base step.
func (e *AglaError) Chain(cause error) *AglaError {
	e.Cause = cause
	if e.Timestamp.IsZero() {
		e.Timestamp = now()
	}
	if e.hook != nil && cause != nil {
		e.Message = e.hook(e.Message, cause)
	}
	return e
}

func (e *AglaError) Error() string {
	if e.Message == "" {
		return e.ErrorType
	}
	return fmt.Sprintf("%s: %s", e.ErrorType, e.Message)
}

func (e *AglaError) Unwrap() error { return e.Cause }

// Is reports whether target is an AglaError of the same kind.
func (e *AglaError) Is(target error) bool {
	t, ok := target.(*AglaError)
	if !ok {
		return false
	}
	return t.ErrorType == e.ErrorType
}

// appendCause is the chain hook used by kinds that wrap an underlying failure.
func appendCause(message string, cause error) string {
	return fmt.Sprintf("%s: %v", message, cause)
}

// --- Sentinels for errors.Is ---

var (
	ErrInvalidFormatterShape = &AglaError{ErrorType: TypeInvalidFormatterShape}
	ErrInvalidLoggerFunction = &AglaError{ErrorType: TypeInvalidLoggerFunction}
	ErrInvalidLogLevel       = &AglaError{ErrorType: TypeInvalidLogLevel}
	ErrFormatterExecution    = &AglaError{ErrorType: TypeFormatterExecution}
	ErrOutputExecution       = &AglaError{ErrorType: TypeOutputExecution}
	ErrAlreadyInitialized    = &AglaError{ErrorType: TypeAlreadyInitialized}
	ErrNotInitialized        = &AglaError{ErrorType: TypeNotInitialized}
	ErrNoActiveTest          = &AglaError{ErrorType: TypeNoActiveTest}
	ErrConfig                = &AglaError{ErrorType: TypeConfig}
	ErrValidation            = &AglaError{ErrorType: TypeValidation}
	ErrPluginNotFound        = &AglaError{ErrorType: TypePluginNotFound}
)

// --- Constructors ---

// NewInvalidFormatterShape reports a formatter candidate that is neither a
// direct function nor an instantiable factory.
func NewInvalidFormatterShape(detail string) *AglaError {
	return New(TypeInvalidFormatterShape, fmt.Sprintf("invalid formatter: %s", detail))
}

// NewInvalidLoggerFunction reports a logger-map override that is present but nil.
func NewInvalidLoggerFunction(levelName string) *AglaError {
	return New(TypeInvalidLoggerFunction,
		fmt.Sprintf("logger function for level %s is not callable", levelName),
		WithContext("level", levelName))
}

// NewInvalidLogLevel reports a value outside the recognized level enumeration.
func NewInvalidLogLevel(value interface{}) *AglaError {
	return New(TypeInvalidLogLevel,
		fmt.Sprintf("unrecognized log level %v", value),
		WithContext("value", value))
}

// NewFormatterExecutionError wraps a failure raised by the active formatter.
func NewFormatterExecutionError(levelName string, cause error) *AglaError {
	return New(TypeFormatterExecution,
		fmt.Sprintf("formatter failed while rendering %s record", levelName),
		WithContext("level", levelName),
		WithChainHook(appendCause)).Chain(cause)
}

// NewOutputExecutionError wraps a failure raised by an output function.
func NewOutputExecutionError(levelName string, cause error) *AglaError {
	return New(TypeOutputExecution,
		fmt.Sprintf("output function for %s failed", levelName),
		WithContext("level", levelName),
		WithChainHook(appendCause)).Chain(cause)
}

// NewAlreadyInitialized reports a second create call on a ready holder.
func NewAlreadyInitialized() *AglaError {
	return New(TypeAlreadyInitialized, "logger manager already initialized; reset it first",
		WithSeverity(SeverityWarning))
}

// NewNotInitialized reports a lookup on a holder that has no manager.
func NewNotInitialized() *AglaError {
	return New(TypeNotInitialized, "logger manager not initialized; call CreateManager first")
}

// NewNoActiveTest reports mock collector use outside StartTest/EndTest.
func NewNoActiveTest(operation string) *AglaError {
	return New(TypeNoActiveTest,
		fmt.Sprintf("%s called with no active test; call StartTest first", operation),
		WithContext("operation", operation))
}

// NewConfigError represents a failure loading or parsing a configuration source.
func NewConfigError(message string, cause error) *AglaError {
	return New(TypeConfig, message, WithChainHook(appendCause)).Chain(cause)
}

// NewValidationError indicates a configuration document failed validation.
func NewValidationError(message string, cause error) *AglaError {
	return New(TypeValidation, message, WithChainHook(appendCause)).Chain(cause)
}

// NewPluginNotFoundError reports an unknown plugin name in the registry.
func NewPluginNotFoundError(kind, name string) *AglaError {
	return New(TypePluginNotFound,
		fmt.Sprintf("%s plugin not found: %s", kind, name),
		WithContext("kind", kind),
		WithContext("name", name))
}

// TypeOf returns the ErrorType of the first AglaError in err's chain, or "".
func TypeOf(err error) string {
	var ae *AglaError
	if errors.As(err, &ae) {
		return ae.ErrorType
	}
	return ""
}
