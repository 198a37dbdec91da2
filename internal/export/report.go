package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"geoheat/internal/heat"
)

// WriteReport renders an HTML page ranking the layer's regions by value,
// each bar filled with its region's heat colour.
func WriteReport(w io.Writer, title string, l *heat.Layer) error {
	shapes := append([]heat.Shape(nil), l.Shapes...)
	sort.SliceStable(shapes, func(i, j int) bool {
		if shapes[i].Value != shapes[j].Value {
			return shapes[i].Value > shapes[j].Value
		}
		return shapes[i].Region < shapes[j].Region
	})

	names := make([]string, 0, len(shapes))
	data := make([]opts.BarData, 0, len(shapes))
	for _, s := range shapes {
		names = append(names, string(s.Region))
		data = append(data, opts.BarData{
			Name:      string(s.Region),
			Value:     s.Value,
			ItemStyle: &opts.ItemStyle{Color: s.Color.Hex()},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("regions=%d layer=%s", len(shapes), l.ID)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "region"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "value"}),
	)
	bar.SetXAxis(names).AddSeries("value", data)
	return bar.Render(w)
}
