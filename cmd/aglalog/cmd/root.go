// Package cmd implements the aglalog CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gxo-labs/aglalog/internal/config"
	"github.com/gxo-labs/aglalog/internal/logger"
	"github.com/gxo-labs/aglalog/internal/output"
	"github.com/gxo-labs/aglalog/internal/registry"
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// Exit codes.
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
	ExitSigInt     = 128 + int(syscall.SIGINT)
)

// Settings keys. Each is also read from AGLALOG_<KEY>, dashes as underscores.
const (
	keyConfig    = "config"
	keyThreshold = "threshold"
	keyFormatter = "formatter"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// app carries what every command needs: settings and the plugin registry.
type app struct {
	v   *viper.Viper
	reg plugin.Registry
}

// NewRootCmd builds the command tree with its own settings, so tests can
// run commands side by side.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), reg: registry.Default()}

	root := &cobra.Command{
		Use:   "aglalog",
		Short: "Inspect and exercise aglalog configurations",
		Long: "aglalog validates logger configuration files, emits records through\n" +
			"a configured facade and watches configuration files for changes.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "logger configuration file (YAML or TOML)")
	flags.String(keyThreshold, "", "threshold overriding the configuration file (off, fatal ... trace, all)")
	flags.String(keyFormatter, "", "registered formatter overriding the configuration file")
	flags.String(keyLogLevel, "info", "level of the CLI's own messages (debug, info, warn, error)")
	flags.String(keyLogFormat, "text", "format of the CLI's own messages (text, json)")
	cobra.CheckErr(a.v.BindPFlags(flags))

	a.v.SetEnvPrefix("AGLALOG")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(a.validateCmd())
	root.AddCommand(a.emitCmd())
	root.AddCommand(a.watchCmd())
	root.AddCommand(a.levelsCmd())
	root.AddCommand(a.pluginsCmd())
	root.AddCommand(versionCmd())
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return ExitSuccess
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, aglaerrors.ErrConfig), errors.Is(err, aglaerrors.ErrValidation),
		errors.Is(err, aglaerrors.ErrInvalidLogLevel), errors.Is(err, aglaerrors.ErrPluginNotFound):
		return ExitUsageError
	default:
		return ExitFailure
	}
}

func (a *app) toolLogger(cmd *cobra.Command) *slog.Logger {
	return logger.NewToolLogger(a.v.GetString(keyLogLevel), a.v.GetString(keyLogFormat), cmd.ErrOrStderr())
}

// consoleDefaults routes the facade's default outputs to the command streams.
func consoleDefaults(cmd *cobra.Command) plugin.LoggerMap {
	return output.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr()).LoggerMap()
}

// options builds the configuration update from the config file, if any,
// and the override flags.
func (a *app) options() (config.Options, error) {
	opts := config.Options{}
	if path := a.v.GetString(keyConfig); path != "" {
		loaded, err := config.LoadOptions(path, a.reg)
		if err != nil {
			return config.Options{}, err
		}
		opts = loaded
	}
	return a.overrides(opts)
}

// overrides applies the --threshold and --formatter settings on top of opts.
// Reloads go through it too so flags keep precedence over the file.
func (a *app) overrides(opts config.Options) (config.Options, error) {
	if s := a.v.GetString(keyThreshold); s != "" {
		l, err := level.Parse(s)
		if err != nil {
			return config.Options{}, err
		}
		opts = opts.WithLevel(l)
	}
	if name := a.v.GetString(keyFormatter); name != "" {
		spec, err := a.reg.Formatter(name)
		if err != nil {
			return config.Options{}, err
		}
		opts = opts.WithFormatter(spec)
	}
	return opts, nil
}

// applyWithOverrides returns the reload callback for cfg.
func (a *app) applyWithOverrides(cfg *config.Configuration) config.ApplyFunc {
	return func(opts config.Options) error {
		opts, err := a.overrides(opts)
		if err != nil {
			return err
		}
		return cfg.SetConfiguration(opts)
	}
}
