package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gxo-labs/aglalog/internal/config"
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a logger configuration file",
		Example: `  aglalog validate --config aglalog.yaml
  AGLALOG_CONFIG=aglalog.toml aglalog validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runValidate(cmd)
		},
	}
}

func (a *app) runValidate(cmd *cobra.Command) error {
	path := a.v.GetString(keyConfig)
	if path == "" {
		return aglaerrors.NewConfigError("validate requires --config", nil)
	}
	log := a.toolLogger(cmd)

	f, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if _, err := f.Options(a.reg); err != nil {
		return err
	}
	log.Debug("configuration validated", "path", f.FilePath)

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (schemaVersion %s, level %s, formatter %s, %d output override(s))\n",
		f.FilePath, f.SchemaVersion, orDefault(f.Level, config.DefaultLevel.String()), orDefault(f.Formatter, "plain"), len(f.Outputs))
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
