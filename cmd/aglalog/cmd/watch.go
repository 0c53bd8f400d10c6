package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gxo-labs/aglalog/internal/config"
	"github.com/gxo-labs/aglalog/internal/manager"
	"github.com/gxo-labs/aglalog/internal/output"
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
)

func (a *app) watchCmd() *cobra.Command {
	var (
		interval time.Duration
		count    int
		buffer   int
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Emit heartbeats at every level while reloading the configuration file",
		Long: "Logs one heartbeat per level on every tick and reapplies the\n" +
			"configuration file whenever it changes. Stops on SIGINT/SIGTERM or\n" +
			"after --count ticks.",
		Example: `  aglalog watch --config aglalog.yaml --interval 2s`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				return aglaerrors.NewConfigError("--interval must be positive", nil)
			}
			return a.runWatch(cmd, interval, count, buffer)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "heartbeat interval")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many heartbeats (0 runs until interrupted)")
	cmd.Flags().IntVar(&buffer, "buffer", 0, "queue console output through a buffer of this size (0 writes synchronously)")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, interval time.Duration, count, buffer int) error {
	log := a.toolLogger(cmd)
	opts, err := a.options()
	if err != nil {
		return err
	}

	defaults := consoleDefaults(cmd)
	if buffer > 0 {
		queue := output.NewChannel(buffer, log)
		forwarded := make(chan struct{})
		go func() {
			defer close(forwarded)
			queue.Forward(defaults)
		}()
		defer func() {
			queue.Close()
			<-forwarded
			if dropped := queue.Dropped(); dropped > 0 {
				log.Warn("records dropped by full output buffer", "count", dropped)
			}
		}()
		defaults = queue.LoggerMap()
	}

	m, err := manager.NewWithDefaults(defaults, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	if path := a.v.GetString(keyConfig); path != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if watchErr := config.Watch(ctx, path, a.reg, a.applyWithOverrides(m.Configuration()), log); watchErr != nil {
				log.Error("config watcher stopped", "error", watchErr)
			}
		}()
	}
	defer func() {
		cancel()
		wg.Wait()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for beat := 1; count == 0 || beat <= count; beat++ {
		select {
		case <-ctx.Done():
			log.Info("watch interrupted", "heartbeats", beat-1)
			return nil
		case <-ticker.C:
		}
		for _, lvl := range level.Levels() {
			if err := m.Logger().Log(lvl, "heartbeat", beat); err != nil {
				log.Error("heartbeat failed", "level", lvl.String(), "error", err)
			}
		}
	}
	return nil
}
