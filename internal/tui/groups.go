package tui

import (
	"fmt"

	"geoheat/internal/frame"
)

type groupItem struct {
	id      frame.GroupID
	regions int
	active  bool
}

func (g groupItem) Title() string {
	if g.active {
		return "● " + string(g.id)
	}
	return "  " + string(g.id)
}

func (g groupItem) Description() string {
	return fmt.Sprintf("  %d regions", g.regions)
}

func (g groupItem) FilterValue() string { return string(g.id) }

// refreshGroups lists the groups of the current value table, marking the
// one drawn.
func (m *Model) refreshGroups() {
	table := m.panel.Table()
	active := m.panel.Group()
	m.items = nil
	sel := 0
	for i, g := range table.Groups() {
		if g == active {
			sel = i
		}
		m.items = append(m.items, groupItem{id: g, regions: len(table[g]), active: g == active})
	}
	m.l.SetItems(m.items)
	if len(m.items) > 0 {
		m.l.Select(sel)
	}
}

// selectGroup switches the overlay to the highlighted group.
func (m *Model) selectGroup() {
	it, ok := m.l.SelectedItem().(groupItem)
	if !ok {
		return
	}
	l, err := m.panel.Select(it.id)
	if err != nil {
		m.status = "select: " + err.Error()
		return
	}
	m.setLayer(l)
	m.status = fmt.Sprintf("group %s: %d shapes", it.id, len(l.Shapes))
}
