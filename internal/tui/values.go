package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// refreshValues fills the values table from the active overlay, one row per
// shape in layer order.
func (m *Model) refreshValues() {
	cols := []table.Column{
		{Title: "Region", Width: 18},
		{Title: "Value", Width: 12},
		{Title: "%", Width: 6},
		{Title: "Color", Width: 24},
	}
	var rows []table.Row
	if m.layer != nil {
		for _, s := range m.layer.Shapes {
			rows = append(rows, table.Row{
				truncate(string(s.Region), 18),
				truncate(s.Label, 12),
				fmt.Sprintf("%.0f", s.Percentage*100),
				s.Color.String(),
			})
		}
	}
	// columns must be replaced before rows so widths match
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	st := table.DefaultStyles()
	st.Header = st.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(borderCol).BorderBottom(true).Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(accentFg)
	m.tbl.SetStyles(st)
}
