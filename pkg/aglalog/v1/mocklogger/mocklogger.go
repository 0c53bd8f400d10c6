// Package mocklogger provides an in-memory output plugin for tests.
//
// A Collector captures rendered payloads per level while a test is active:
//
//	c := mocklogger.New()
//	id := c.StartTest("")
//	cfg.SetConfiguration(config.Options{}.WithLoggerMap(c.LoggerMap()))
//	log.Error("boom")
//	msgs := c.Messages(level.ERROR) // ["boom"]
//	c.EndTest()
//
// Output outside StartTest/EndTest fails with a NoActiveTest error, which the
// facade reports as an OutputExecutionError.
package mocklogger

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// Collector buffers messages per level for the active test.
type Collector struct {
	mu       sync.Mutex
	testID   string
	active   bool
	messages map[level.Level][]string
}

// New returns a Collector with no active test.
func New() *Collector {
	return &Collector{messages: make(map[level.Level][]string)}
}

// StartTest begins capturing under id, discarding anything captured before.
// An empty id is replaced by a random UUID. The id in use is returned.
func (c *Collector) StartTest(id string) string {
	if id == "" {
		id = uuid.NewString()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.testID = id
	c.active = true
	c.messages = make(map[level.Level][]string)
	return id
}

// EndTest stops capturing. Captured messages stay readable until the next
// StartTest.
func (c *Collector) EndTest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
}

// TestID returns the id of the active test and whether one is active.
func (c *Collector) TestID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.testID, c.active
}

// Messages returns a copy of the messages captured at l, oldest first.
func (c *Collector) Messages(l level.Level) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := c.messages[l]
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// LastMessage returns the most recent message captured at l.
func (c *Collector) LastMessage(l level.Level) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := c.messages[l]
	if len(msgs) == 0 {
		return "", false
	}
	return msgs[len(msgs)-1], true
}

// ClearMessages drops the messages captured at l.
func (c *Collector) ClearMessages(l level.Level) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return aglaerrors.NewNoActiveTest("ClearMessages")
	}
	delete(c.messages, l)
	return nil
}

// ClearAll drops the messages captured at every level.
func (c *Collector) ClearAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return aglaerrors.NewNoActiveTest("ClearAll")
	}
	c.messages = make(map[level.Level][]string)
	return nil
}

// Output returns the output function capturing at l.
func (c *Collector) Output(l level.Level) plugin.OutputFunc {
	return func(rendered interface{}) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.active {
			return aglaerrors.NewNoActiveTest(fmt.Sprintf("log at %s", l))
		}
		c.messages[l] = append(c.messages[l], render(rendered))
		return nil
	}
}

// LoggerMap returns capturing output functions for every record level.
func (c *Collector) LoggerMap() plugin.LoggerMap {
	m := make(plugin.LoggerMap, len(level.Levels()))
	for _, l := range level.Levels() {
		m[l] = c.Output(l)
	}
	return m
}

func render(rendered interface{}) string {
	switch v := rendered.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
