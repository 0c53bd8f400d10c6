// Package output provides the built-in output plugins.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/gxo-labs/aglalog/internal/registry"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// Registered names of the built-in outputs.
const (
	NameConsole = "console"
	NameStdout  = "stdout"
	NameStderr  = "stderr"
	NameNull    = "null"
)

func init() {
	// NameConsole is not registered: it names the per-level default route,
	// which configuration loaders express by leaving the level unmapped.
	registry.RegisterOutput(NameStdout, NewWriter(os.Stdout).Func(level.INFO))
	registry.RegisterOutput(NameStderr, NewWriter(os.Stderr).Func(level.ERROR))
	registry.RegisterOutput(NameNull, plugin.Noop)
}

// levelColors are ANSI 256 colors per level.
var levelColors = map[level.Level]lipgloss.Color{
	level.FATAL: lipgloss.Color("201"),
	level.ERROR: lipgloss.Color("196"),
	level.WARN:  lipgloss.Color("214"),
	level.INFO:  lipgloss.Color("86"),
	level.DEBUG: lipgloss.Color("245"),
	level.TRACE: lipgloss.Color("240"),
}

// Writer writes rendered payloads to a stream, one per line, styled per
// level when the stream is a color terminal.
type Writer struct {
	w      io.Writer
	styles map[level.Level]lipgloss.Style
	mu     sync.Mutex
}

// NewWriter creates a Writer. Color support is detected from w itself, so
// buffers and files receive plain text.
func NewWriter(w io.Writer) *Writer {
	renderer := lipgloss.NewRenderer(w)
	styles := make(map[level.Level]lipgloss.Style, len(levelColors))
	for l, c := range levelColors {
		style := renderer.NewStyle().Foreground(c)
		if l == level.FATAL || l == level.ERROR {
			style = style.Bold(true)
		}
		styles[l] = style
	}
	return &Writer{w: w, styles: styles}
}

// Func returns the output function that writes with the style of lvl.
func (w *Writer) Func(lvl level.Level) plugin.OutputFunc {
	return func(rendered interface{}) error {
		line := Stringify(rendered)
		if style, ok := w.styles[lvl]; ok {
			line = style.Render(line)
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		_, err := io.WriteString(w.w, line+"\n")
		return err
	}
}

// Console routes FATAL, ERROR and WARN to the error stream and the rest to
// the standard stream.
type Console struct {
	out *Writer
	err *Writer
}

// NewConsole creates a Console over the given streams.
func NewConsole(stdout, stderr io.Writer) *Console {
	return &Console{out: NewWriter(stdout), err: NewWriter(stderr)}
}

// Func returns the output function for lvl.
func (c *Console) Func(lvl level.Level) plugin.OutputFunc {
	if lvl <= level.WARN {
		return c.err.Func(lvl)
	}
	return c.out.Func(lvl)
}

// LoggerMap returns an entry for every record level plus the OFF no-op.
func (c *Console) LoggerMap() plugin.LoggerMap {
	m := plugin.LoggerMap{level.OFF: plugin.Noop}
	for _, l := range level.Levels() {
		m[l] = c.Func(l)
	}
	return m
}

// DefaultLoggerMap is the console map over the process streams.
func DefaultLoggerMap() plugin.LoggerMap {
	return NewConsole(os.Stdout, os.Stderr).LoggerMap()
}

// Stringify renders an arbitrary payload as text.
func Stringify(rendered interface{}) string {
	switch v := rendered.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
