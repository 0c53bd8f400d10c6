package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/gxo-labs/aglalog/internal/logger"
	"github.com/gxo-labs/aglalog/internal/manager"
	"github.com/gxo-labs/aglalog/internal/metrics"
	"github.com/gxo-labs/aglalog/internal/tracing"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	aglametrics "github.com/gxo-labs/aglalog/pkg/aglalog/v1/metrics"
)

func (a *app) emitCmd() *cobra.Command {
	var (
		lvlName     string
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "emit <message> [args...]",
		Short: "Emit one record through a configured facade",
		Long: "Builds a facade from the configuration file and flags, then logs one\n" +
			"record inside an OpenTelemetry span. Tracing is exported when the\n" +
			"standard OTEL_EXPORTER_OTLP_* variables are set.",
		Example: `  aglalog emit --config aglalog.yaml --level warn "disk almost full" 93%
  aglalog emit --formatter json "hello"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := level.Parse(lvlName)
			if err != nil {
				return err
			}
			return a.runEmit(cmd, lvl, args[0], args[1:], showMetrics)
		},
	}
	cmd.Flags().StringVar(&lvlName, "level", "info", "level of the emitted record")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print dispatch counters after emitting")
	return cmd
}

func (a *app) runEmit(cmd *cobra.Command, lvl level.Level, msg string, rest []string, showMetrics bool) error {
	ctx := cmd.Context()
	log := a.toolLogger(cmd)

	opts, err := a.options()
	if err != nil {
		return err
	}

	tp := tracing.NewProviderFromEnv(ctx, log)
	defer func() {
		if shutdownErr := tp.Shutdown(ctx); shutdownErr != nil {
			log.Warn("tracer shutdown failed", "error", shutdownErr)
		}
	}()

	dm, err := metrics.NewDispatchMetrics(nil)
	if err != nil {
		return err
	}

	m, err := manager.NewWithDefaults(consoleDefaults(cmd), opts, logger.WithMetrics(dm))
	if err != nil {
		return err
	}

	args := make([]interface{}, len(rest))
	for i, r := range rest {
		args[i] = r
	}

	ctx, span := tp.GetTracer(tracing.TracerName).Start(ctx, "aglalog.emit",
		trace.WithAttributes(tracing.RecordAttributes(lvl, msg)...))
	logErr := m.Logger().LogCtx(ctx, lvl, msg, args...)
	tracing.RecordError(span, logErr)
	span.End()

	if !m.Logger().IsEnabled(lvl) {
		log.Info("record suppressed by threshold", "level", lvl.String(), "threshold", m.Configuration().Threshold().String())
	}
	if showMetrics {
		if err := printCounters(cmd, dm); err != nil {
			return err
		}
	}
	return logErr
}

func printCounters(cmd *cobra.Command, p aglametrics.RegistryProvider) error {
	families, err := p.Registry().Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := ""
			for i, lp := range metric.GetLabel() {
				if i > 0 {
					labels += ","
				}
				labels += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), labels, metric.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(cmd.ErrOrStderr(), line)
	}
	return nil
}
