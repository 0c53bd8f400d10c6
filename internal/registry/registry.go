package registry

import (
	"fmt"
	"sort"
	"sync"

	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// Plugin kinds accepted by List.
const (
	KindFormatter = "formatter"
	KindOutput    = "output"
)

// StaticRegistry implements plugin.Registry with in-memory maps.
// It is safe for concurrent use.
type StaticRegistry struct {
	formatters map[string]plugin.FormatterSpec
	outputs    map[string]plugin.OutputFunc
	mu         sync.RWMutex
}

// NewStaticRegistry creates an empty registry.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{
		formatters: make(map[string]plugin.FormatterSpec),
		outputs:    make(map[string]plugin.OutputFunc),
	}
}

// RegisterFormatter associates a formatter spec with name. Empty names, empty
// specs and duplicate names are rejected with a ConfigError.
func (r *StaticRegistry) RegisterFormatter(name string, spec plugin.FormatterSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return aglaerrors.NewConfigError("formatter registration error: name cannot be empty", nil)
	}
	if spec.Func() == nil && spec.Factory() == nil {
		return aglaerrors.NewConfigError(fmt.Sprintf("formatter registration error for '%s': spec is empty", name), nil)
	}
	if _, exists := r.formatters[name]; exists {
		return aglaerrors.NewConfigError(fmt.Sprintf("formatter registration error: duplicate name '%s'", name), nil)
	}
	r.formatters[name] = spec
	return nil
}

// RegisterOutput associates an output function with name.
func (r *StaticRegistry) RegisterOutput(name string, fn plugin.OutputFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return aglaerrors.NewConfigError("output registration error: name cannot be empty", nil)
	}
	if fn == nil {
		return aglaerrors.NewConfigError(fmt.Sprintf("output registration error for '%s': function cannot be nil", name), nil)
	}
	if _, exists := r.outputs[name]; exists {
		return aglaerrors.NewConfigError(fmt.Sprintf("output registration error: duplicate name '%s'", name), nil)
	}
	r.outputs[name] = fn
	return nil
}

// Formatter returns the spec registered under name.
func (r *StaticRegistry) Formatter(name string) (plugin.FormatterSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, exists := r.formatters[name]
	if !exists {
		return plugin.FormatterSpec{}, aglaerrors.NewPluginNotFoundError(KindFormatter, name)
	}
	return spec, nil
}

// Output returns the output function registered under name.
func (r *StaticRegistry) Output(name string) (plugin.OutputFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, exists := r.outputs[name]
	if !exists {
		return nil, aglaerrors.NewPluginNotFoundError(KindOutput, name)
	}
	return fn, nil
}

// List returns the sorted names registered for kind. Unknown kinds yield nil.
func (r *StaticRegistry) List(kind string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	switch kind {
	case KindFormatter:
		names = make([]string, 0, len(r.formatters))
		for name := range r.formatters {
			names = append(names, name)
		}
	case KindOutput:
		names = make([]string, 0, len(r.outputs))
		for name := range r.outputs {
			names = append(names, name)
		}
	default:
		return nil
	}
	sort.Strings(names)
	return names
}

// --- Default Global Registry (for registration via init) ---

var (
	globalRegistry = NewStaticRegistry()

	_ plugin.Registry = (*StaticRegistry)(nil)
)

// RegisterFormatter adds a formatter to the global registry. It panics on
// error because it is meant to run from init functions, where a duplicate
// name is a programming mistake.
func RegisterFormatter(name string, spec plugin.FormatterSpec) {
	if err := globalRegistry.RegisterFormatter(name, spec); err != nil {
		panic(fmt.Errorf("failed to register formatter '%s' globally: %w", name, err))
	}
}

// RegisterOutput adds an output function to the global registry. It panics on error.
func RegisterOutput(name string, fn plugin.OutputFunc) {
	if err := globalRegistry.RegisterOutput(name, fn); err != nil {
		panic(fmt.Errorf("failed to register output '%s' globally: %w", name, err))
	}
}

// Default returns the global registry populated by init-time registrations.
func Default() plugin.Registry {
	return globalRegistry
}
