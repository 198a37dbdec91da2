package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	_, _, mapWidth, mapHeight := m.layout()
	contentWidth := max(10, m.width)

	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, mapHeight-2)
	}

	title := " geoheat ─ regional heat overlay "
	if g := m.panel.Group(); g != "" {
		title += "─ " + string(g) + " "
	}
	header := lipgloss.NewStyle().Width(contentWidth).Render(titleStyle.Render(title))

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	m.mapW = max(8, mapWidth)
	m.mapH = max(4, mapHeight)
	var mapView string
	switch {
	case m.showValues:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(m.mapW)
		m.ta.SetHeight(min(m.mapH, 12))
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.ta.View())
	case m.layer == nil || len(m.layer.Shapes) == 0:
		msg := "no regions to draw: press r to reload frames or p to paste some"
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, dimStyle.Render(msg))
	default:
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.renderHeatMap(m.mapW, m.mapH))
	}

	popup := ""
	if m.inspectPopup != "" && !m.showValues {
		w := max(20, min(56, contentWidth/2))
		box := boxStyle.MaxWidth(w).Render(m.inspectPopup)
		popup = lipgloss.Place(contentWidth, mapHeight, lipgloss.Left, lipgloss.Center, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	status := dimStyle.Render(" " + m.status + " ")
	if isErrStatus(m.status) {
		status = errStyle.Render(" " + m.status + " ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	hover := ""
	if m.hoverHasGeo {
		hover = fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat)
		if lbl := m.hoverLabel(); lbl != "" {
			hover = "  " + lbl + hover
		}
		hover = dimStyle.Render(hover)
	}
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(hover))
	right := lipgloss.Place(spacerW+lipgloss.Width(hover), 1, lipgloss.Right, lipgloss.Center, hover)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func isErrStatus(s string) bool {
	for _, p := range []string{"refresh: ", "frames: ", "paste: ", "select: "} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"Tab groups",
		"Enter select",
		"p paste",
		"r reload",
		"v values",
		"i inspect",
		"f/o fill/outline",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
