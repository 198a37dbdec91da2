package commands

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"geoheat/internal/frame"
)

func aggregateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Print the latest value per group and region",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := readFrames()
			if err != nil {
				return err
			}
			var vt frame.ValueTable
			if strict {
				if vt, err = frame.AggregateStrict(fs); err != nil {
					return err
				}
			} else {
				var skipped []*frame.MalformedNameError
				vt, skipped = frame.Aggregate(fs)
				for _, s := range skipped {
					slog.Warn("frame skipped", "name", s.Name)
				}
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("GROUP", "REGION", "VALUE")
			for _, g := range vt.Groups() {
				if cfg.Group != "" && string(g) != cfg.Group {
					continue
				}
				rv, _ := vt.Group(g)
				for _, r := range rv.Regions() {
					v, _ := rv.Value(r)
					t.Row(string(g), string(r), strconv.FormatFloat(v, 'f', -1, 64))
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on frame names without a group and region")
	return cmd
}
