package panel

import (
	"log/slog"
	"sync"

	"geoheat/internal/frame"
	"geoheat/internal/geom"
	"geoheat/internal/heat"
)

// Panel owns the active overlay. Each Refresh aggregates new frames, builds a
// fresh layer for the selected group and swaps it in for the previous one.
type Panel struct {
	mu      sync.Mutex
	regions *geom.Collection
	style   heat.Style

	selected frame.GroupID
	group    frame.GroupID
	table    frame.ValueTable
	layer    *heat.Layer
}

// New returns a panel drawing regions with style. An empty group selects the
// first group of every refresh in sorted order.
func New(regions *geom.Collection, style heat.Style, group frame.GroupID) *Panel {
	return &Panel{
		regions:  regions,
		style:    style,
		selected: group,
		table:    frame.ValueTable{},
	}
}

// Refresh replaces the value table with one built from series and rebuilds
// the overlay. On error the previous overlay stays active.
func (p *Panel) Refresh(series []frame.Frame) (*heat.Layer, error) {
	table, skipped := frame.Aggregate(series)
	for _, s := range skipped {
		slog.Warn("panel: frame skipped", "name", s.Name, "err", s)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rebuild(table, p.selected)
}

// Select switches the drawn group using the current value table.
func (p *Panel) Select(g frame.GroupID) (*heat.Layer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rebuild(p.table, g)
}

// SetStyle rebuilds the overlay with a new style.
func (p *Panel) SetStyle(s heat.Style) (*heat.Layer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.style
	p.style = s
	l, err := p.rebuild(p.table, p.selected)
	if err != nil {
		p.style = prev
	}
	return l, err
}

func (p *Panel) rebuild(table frame.ValueTable, selected frame.GroupID) (*heat.Layer, error) {
	g := resolveGroup(table, selected)
	values, ok := table.Group(g)
	if !ok && g != "" {
		slog.Warn("panel: group has no values", "group", g)
	}
	l, err := heat.BuildLayer(values, p.regions, p.style)
	if err != nil {
		return nil, err
	}
	for _, s := range l.Skipped {
		slog.Debug("panel: feature skipped", "region", s.Region, "err", s.Err)
	}
	prevID := ""
	if p.layer != nil {
		prevID = p.layer.ID
	}
	p.table, p.selected, p.group, p.layer = table, selected, g, l
	slog.Debug("panel: overlay swapped", "group", g, "shapes", len(l.Shapes), "prev", prevID, "layer", l.ID)
	return l, nil
}

func resolveGroup(table frame.ValueTable, selected frame.GroupID) frame.GroupID {
	if selected != "" {
		return selected
	}
	if groups := table.Groups(); len(groups) > 0 {
		return groups[0]
	}
	return ""
}

// Layer returns the active overlay, or nil before the first refresh.
func (p *Panel) Layer() *heat.Layer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.layer
}

// Table returns the value table of the last refresh.
func (p *Panel) Table() frame.ValueTable {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.table
}

// Group returns the group the active overlay was built for.
func (p *Panel) Group() frame.GroupID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.group
}

// Regions returns the geometry the panel draws.
func (p *Panel) Regions() *geom.Collection { return p.regions }
