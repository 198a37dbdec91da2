package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geoheat/internal/frame"
	"geoheat/internal/geom"
	"geoheat/internal/heat"
	"geoheat/internal/panel"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// Data
	panel      *panel.Panel
	framesPath string
	srcOpts    frame.SourceOptions
	layer      *heat.Layer
	bbox       geom.BBox // projected extent of the drawn layer

	// Group picker
	l     list.Model
	items []list.Item

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showFill    bool
	showOutline bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverRegion frame.RegionID
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// region values table
	showValues bool
	tbl        table.Model
}

// New returns a model drawing the overlays of p. framesPath, when set, is
// re-read on "r".
func New(p *panel.Panel, framesPath string, opts frame.SourceOptions) Model {
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		status:      "geoheat ready",
		panel:       p,
		framesPath:  framesPath,
		srcOpts:     opts,
		showFill:    true,
		showOutline: true,
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Groups"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste frames, one per line: <group> <region> <v1> <v2> ... Press Ctrl+S to apply; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// values table setup
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.setLayer(p.Layer())
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// setLayer caches the active overlay and its projected extent.
func (m *Model) setLayer(l *heat.Layer) {
	m.layer = l
	m.bbox = geom.EmptyBBox()
	if l != nil {
		for _, s := range l.Shapes {
			for _, ring := range heat.Rings(s.Geometry) {
				for _, p := range ring {
					m.bbox.Extend(p)
				}
			}
		}
	}
	m.refreshGroups()
	if m.showValues {
		m.refreshValues()
	}
}
