package commands

import (
	"os"

	"github.com/spf13/cobra"

	"geoheat/internal/export"
)

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the overlay as a GeoJSON FeatureCollection in EPSG:3857",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := buildOverlay()
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return export.WriteGeoJSON(cmd.OutOrStdout(), l)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.WriteGeoJSON(f, l); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
