package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gxo-labs/aglalog/internal/registry"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
)

func (a *app) levelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Print the level table and what the current threshold enables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			threshold := level.INFO
			if opts.Level != nil {
				threshold = *opts.Level
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("RANK", "LEVEL", "ENABLED")
			all := append([]level.Level{level.OFF}, level.Levels()...)
			all = append(all, level.ALL)
			for _, l := range all {
				enabled := "-"
				if level.Taggable(l) {
					enabled = strconv.FormatBool(level.IsEnabled(l, threshold))
				}
				t.Row(strconv.Itoa(int(l)), l.String(), enabled)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "threshold: %s\n%s\n", threshold, t.String())
			return nil
		},
	}
}

func (a *app) pluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List registered formatters and outputs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "formatters:")
			for _, name := range a.reg.List(registry.KindFormatter) {
				fmt.Fprintln(out, "  "+name)
			}
			fmt.Fprintln(out, "outputs:")
			for _, name := range a.reg.List(registry.KindOutput) {
				fmt.Fprintln(out, "  "+name)
			}
		},
	}
}
