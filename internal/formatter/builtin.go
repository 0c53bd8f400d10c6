package formatter

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gxo-labs/aglalog/internal/registry"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// Registered names of the built-in formatters.
const (
	NameIdentity = "identity"
	NamePlain    = "plain"
	NameJSON     = "json"
	NameNull     = "null"
)

// TimestampLayout is used by the plain and json formatters.
const TimestampLayout = time.RFC3339Nano

func init() {
	registry.RegisterFormatter(NameIdentity, plugin.Direct(Identity))
	registry.RegisterFormatter(NamePlain, plugin.Direct(Plain))
	registry.RegisterFormatter(NameJSON, plugin.Instantiable(NewJSON))
	registry.RegisterFormatter(NameNull, plugin.Direct(Null))
}

// Identity renders the message, followed by the args separated by spaces.
func Identity(r plugin.Record) (interface{}, error) {
	if len(r.Args) == 0 {
		return r.Message, nil
	}
	return r.Message + " " + joinArgs(r.Args), nil
}

// Plain renders "<timestamp> [LEVEL] message args...".
func Plain(r plugin.Record) (interface{}, error) {
	var b strings.Builder
	b.WriteString(r.Timestamp.Format(TimestampLayout))
	b.WriteString(" [")
	b.WriteString(r.Level.String())
	b.WriteString("] ")
	b.WriteString(r.Message)
	if len(r.Args) > 0 {
		b.WriteByte(' ')
		b.WriteString(joinArgs(r.Args))
	}
	if r.TraceID != "" {
		fmt.Fprintf(&b, " trace_id=%s span_id=%s", r.TraceID, r.SpanID)
	}
	return b.String(), nil
}

// Null renders every record as an empty string.
func Null(plugin.Record) (interface{}, error) {
	return "", nil
}

// joinArgs renders args with %v, strings unquoted.
func joinArgs(args []interface{}) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			parts[i] = s
			continue
		}
		parts[i] = fmt.Sprintf("%v", a)
	}
	return strings.Join(parts, " ")
}

// JSON renders one JSON object per record and numbers them in the order
// they were rendered by this instance.
type JSON struct {
	seq atomic.Uint64
}

// jsonEntry is the wire shape of a rendered record.
type jsonEntry struct {
	Seq       uint64        `json:"seq"`
	Timestamp string        `json:"timestamp"`
	Level     string        `json:"level"`
	Message   string        `json:"message"`
	Args      []interface{} `json:"args,omitempty"`
	TraceID   string        `json:"trace_id,omitempty"`
	SpanID    string        `json:"span_id,omitempty"`
}

// NewJSON is the factory registered for the "json" formatter.
func NewJSON() plugin.Executor {
	return &JSON{}
}

// Execute renders r. Args that cannot be encoded make the call fail.
func (f *JSON) Execute(r plugin.Record) (interface{}, error) {
	entry := jsonEntry{
		Seq:       f.seq.Add(1),
		Timestamp: r.Timestamp.Format(TimestampLayout),
		Level:     r.Level.String(),
		Message:   r.Message,
		Args:      r.Args,
		TraceID:   r.TraceID,
		SpanID:    r.SpanID,
	}
	out, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	return string(out), nil
}

// Rendered returns how many records this instance has rendered.
func (f *JSON) Rendered() uint64 {
	return f.seq.Load()
}
