package commands

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"geoheat/internal/export"
)

func renderCmd() *cobra.Command {
	var (
		out           string
		title         string
		width, height float64
		outline       float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the overlay to a PNG or SVG image",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := buildOverlay()
			if err != nil {
				return err
			}
			if title == "" && overlay.Group() != "" {
				title = string(overlay.Group())
			}
			return export.SaveImage(out, l, export.ImageOptions{
				Width:   vg.Length(width) * vg.Inch,
				Height:  vg.Length(height) * vg.Inch,
				Title:   title,
				Outline: vg.Length(outline) * vg.Millimeter,
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "overlay.png", "output image; format from extension (.png, .svg)")
	cmd.Flags().StringVar(&title, "title", "", "plot title (default group name)")
	cmd.Flags().Float64Var(&width, "width", 8, "image width in inches")
	cmd.Flags().Float64Var(&height, "height", 6, "image height in inches")
	cmd.Flags().Float64Var(&outline, "outline", 0, "region outline width in millimetres")
	return cmd
}
