package commands

import (
	"os"

	"github.com/spf13/cobra"

	"geoheat/internal/export"
)

func reportCmd() *cobra.Command {
	var out, title string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write an HTML bar chart of region values",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := buildOverlay()
			if err != nil {
				return err
			}
			if title == "" {
				title = "Regional values: " + string(overlay.Group())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.WriteReport(f, title, l); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "report.html", "output HTML file")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	return cmd
}
