package output

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

const defaultChannelBuffer = 100

// ErrChannelFull is returned by a Channel output function when the buffer
// has no room. The record is dropped.
var ErrChannelFull = errors.New("channel output buffer full")

// ErrChannelClosed is returned after Close.
var ErrChannelClosed = errors.New("channel output closed")

// Entry is one rendered record queued on a Channel.
type Entry struct {
	Level    level.Level
	Rendered interface{}
}

// Channel is an output that hands rendered records to a consumer goroutine
// through a buffered channel. Sends never block the logging caller.
type Channel struct {
	ch      chan Entry
	log     *slog.Logger
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

// NewChannel creates a Channel with the given buffer size; non-positive
// sizes use a default of 100.
func NewChannel(bufferSize int, log *slog.Logger) *Channel {
	if bufferSize <= 0 {
		bufferSize = defaultChannelBuffer
	}
	if log == nil {
		log = slog.Default()
	}
	return &Channel{
		ch:  make(chan Entry, bufferSize),
		log: log.With("component", "ChannelOutput"),
	}
}

// Func returns the output function queueing records tagged with lvl.
func (c *Channel) Func(lvl level.Level) plugin.OutputFunc {
	return func(rendered interface{}) error {
		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.closed {
			return ErrChannelClosed
		}
		select {
		case c.ch <- Entry{Level: lvl, Rendered: rendered}:
			return nil
		default:
			c.dropped.Add(1)
			c.log.Warn("buffer full, dropping record", "level", lvl.String())
			return ErrChannelFull
		}
	}
}

// LoggerMap returns queueing functions for every record level.
func (c *Channel) LoggerMap() plugin.LoggerMap {
	m := make(plugin.LoggerMap, len(level.Levels()))
	for _, l := range level.Levels() {
		m[l] = c.Func(l)
	}
	return m
}

// Entries returns the channel consumers read from. It is closed by Close.
func (c *Channel) Entries() <-chan Entry {
	return c.ch
}

// Dropped returns how many records were refused because the buffer was full.
func (c *Channel) Dropped() uint64 {
	return c.dropped.Load()
}

// Close stops accepting records and closes Entries. Queued entries stay
// readable. Closing twice is a no-op.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}

// Forward drains c into the functions of dst until c is closed. Failures
// are logged and do not stop forwarding.
func (c *Channel) Forward(dst plugin.LoggerMap) {
	for e := range c.ch {
		fn, ok := dst[e.Level]
		if !ok || fn == nil {
			continue
		}
		if err := fn(e.Rendered); err != nil {
			c.log.Error("forwarding record failed", "level", e.Level.String(), "error", err)
		}
	}
}
