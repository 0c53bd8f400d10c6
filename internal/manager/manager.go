// Package manager owns the pairing of one Configuration with one Facade.
//
// Libraries and tests build their own Manager with New and pass it around.
// Application entry points that want a single process-wide logger use the
// package-level CreateManager / GetLogger / ResetSingleton functions, which
// operate on a default Holder.
package manager

import (
	"sync"

	"github.com/gxo-labs/aglalog/internal/config"
	"github.com/gxo-labs/aglalog/internal/logger"
	"github.com/gxo-labs/aglalog/internal/output"
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// Manager is one Facade together with the Configuration it reads.
type Manager struct {
	cfg    *config.Configuration
	facade *logger.Facade
}

// New builds an independent Configuration over the console logger map,
// applies opts to it and binds a new Facade. A rejected opts leaves nothing
// behind.
func New(opts config.Options, loggerOpts ...logger.Option) (*Manager, error) {
	return NewWithDefaults(output.DefaultLoggerMap(), opts, loggerOpts...)
}

// NewWithDefaults is New with another default logger map, e.g. a console
// over streams other than the process ones.
func NewWithDefaults(defaults plugin.LoggerMap, opts config.Options, loggerOpts ...logger.Option) (*Manager, error) {
	cfg := config.NewWithDefaults(defaults)
	if err := cfg.SetConfiguration(opts); err != nil {
		return nil, err
	}
	return &Manager{cfg: cfg, facade: logger.New(cfg, loggerOpts...)}, nil
}

// Logger returns the facade.
func (m *Manager) Logger() *logger.Facade { return m.facade }

// Configuration returns the configuration the facade reads. Changes made
// through it are visible to the next log call.
func (m *Manager) Configuration() *config.Configuration { return m.cfg }

// Holder keeps at most one Manager. The zero value is UNINITIALIZED and
// ready to use.
type Holder struct {
	mu      sync.Mutex
	current *Manager
}

// Create builds a Manager and stores it. It fails with AlreadyInitialized
// when the holder already has one; the stored manager is left untouched.
func (h *Holder) Create(opts config.Options, loggerOpts ...logger.Option) (*Manager, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil {
		return nil, aglaerrors.NewAlreadyInitialized()
	}
	m, err := New(opts, loggerOpts...)
	if err != nil {
		return nil, err
	}
	h.current = m
	return m, nil
}

// Get returns the stored Manager or NotInitialized.
func (h *Holder) Get() (*Manager, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return nil, aglaerrors.NewNotInitialized()
	}
	return h.current, nil
}

// Logger returns the facade of the stored Manager or NotInitialized.
func (h *Holder) Logger() (*logger.Facade, error) {
	m, err := h.Get()
	if err != nil {
		return nil, err
	}
	return m.Logger(), nil
}

// Reset drops the stored Manager. Calling it on an empty holder is a no-op.
func (h *Holder) Reset() {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()
}

var defaultHolder Holder

// CreateManager creates the process-wide Manager and returns its facade.
func CreateManager(opts config.Options, loggerOpts ...logger.Option) (*logger.Facade, error) {
	m, err := defaultHolder.Create(opts, loggerOpts...)
	if err != nil {
		return nil, err
	}
	return m.Logger(), nil
}

// GetManager returns the process-wide Manager.
func GetManager() (*Manager, error) { return defaultHolder.Get() }

// GetLogger returns the facade of the process-wide Manager.
func GetLogger() (*logger.Facade, error) { return defaultHolder.Logger() }

// ResetSingleton clears the process-wide Manager.
func ResetSingleton() { defaultHolder.Reset() }
