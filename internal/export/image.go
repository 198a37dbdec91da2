package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"geoheat/internal/heat"
)

// ImageOptions controls raster/vector output of a layer.
type ImageOptions struct {
	Width  vg.Length
	Height vg.Length
	Title  string
	// Outline is the width of region borders; zero draws no border.
	Outline vg.Length
}

func (o ImageOptions) withDefaults() ImageOptions {
	if o.Width <= 0 {
		o.Width = 8 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 6 * vg.Inch
	}
	return o
}

// ErrEmptyLayer is returned when there is nothing to draw.
var ErrEmptyLayer = errors.New("export: layer has no shapes")

// SaveImage writes the layer to path; the format follows the extension
// (png, svg, pdf, jpg, tif, eps).
func SaveImage(path string, l *heat.Layer, o ImageOptions) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("export: no image format in %q", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteImage(f, format, l, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteImage draws every shape of the layer as a filled polygon, keeping the
// projected aspect ratio.
func WriteImage(w io.Writer, format string, l *heat.Layer, o ImageOptions) error {
	o = o.withDefaults()
	p := plot.New()
	p.HideAxes()
	p.Title.Text = o.Title

	drawn := 0
	for _, s := range l.Shapes {
		var rings []plotter.XYer
		for _, ring := range heat.Rings(s.Geometry) {
			if len(ring) < 3 {
				continue
			}
			xys := make(plotter.XYs, len(ring))
			for i, pt := range ring {
				xys[i] = plotter.XY{X: pt[0], Y: pt[1]}
			}
			rings = append(rings, xys)
		}
		if len(rings) == 0 {
			continue
		}
		poly, err := plotter.NewPolygon(rings...)
		if err != nil {
			return fmt.Errorf("export: region %q: %w", s.Region, err)
		}
		poly.Color = s.Color
		if o.Outline > 0 {
			poly.LineStyle.Width = o.Outline
			poly.LineStyle.Color = s.Color.Colorful()
		} else {
			poly.LineStyle.Width = 0
		}
		p.Add(poly)
		drawn++
	}
	if drawn == 0 {
		return ErrEmptyLayer
	}
	fitAspect(p, l, o)

	wt, err := p.WriterTo(o.Width, o.Height, format)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// fitAspect widens one axis so that a metre is the same length on both.
func fitAspect(p *plot.Plot, l *heat.Layer, o ImageOptions) {
	b := l.Bounds()
	dx, dy := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
	if dx <= 0 || dy <= 0 {
		return
	}
	want := float64(o.Width) / float64(o.Height)
	cx, cy := (b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2
	if dx/dy < want {
		dx = dy * want
	} else {
		dy = dx / want
	}
	p.X.Min, p.X.Max = cx-dx/2, cx+dx/2
	p.Y.Min, p.Y.Max = cy-dy/2, cy+dy/2
}
