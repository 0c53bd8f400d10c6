// Package formatter resolves formatter plugins and provides the built-in formatters.
package formatter

import (
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// Resolve turns a spec into a plain Formatter.
//
// A direct spec is returned unchanged. An instantiable spec has its factory
// called exactly once; the returned formatter forwards to that one instance
// for its whole lifetime and stateful is true. Anything else fails with
// InvalidFormatterShape.
func Resolve(spec plugin.FormatterSpec) (fn plugin.Formatter, stateful bool, err error) {
	if direct := spec.Func(); direct != nil {
		return direct, false, nil
	}
	factory := spec.Factory()
	if factory == nil {
		return nil, false, aglaerrors.NewInvalidFormatterShape("spec holds neither a function nor a factory")
	}
	instance := factory()
	if plugin.IsNilExecutor(instance) {
		return nil, false, aglaerrors.NewInvalidFormatterShape("factory returned a nil instance")
	}
	return instance.Execute, true, nil
}
