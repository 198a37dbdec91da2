package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoheat/internal/frame"
	"geoheat/internal/geom"
	"geoheat/internal/heat"
)

// cellToXY converts a map cell coordinate back to projected x/y using bbox, zoom, and pan.
func (m Model) cellToXY(cx, cy, w, h int) (float64, float64, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	x := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	y := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return x, y, true
}

// screenXYMicro maps projected x/y into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(x, y float64, w, h int) (int, int, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	nx := (x - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (y - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	// zoom around the centre
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

func (m Model) renderHeatMap(w, h int) string {
	br := newBrailleBuf(w, h)
	if m.layer != nil {
		for _, s := range m.layer.Shapes {
			m.drawShape(br, s, w, h)
		}
	}
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		// batch runs of equally coloured cells into one styled segment
		run, runCol := []rune{}, ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runCol)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < w; x++ {
			r, col := br.cell(x, y)
			if col != runCol {
				flush()
				runCol = col
			}
			run = append(run, r)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// drawShape fills the outer ring of s with its blended colour and strokes
// every ring with the opaque one. The hovered region is stroked in orange.
func (m Model) drawShape(br *brailleBuf, s heat.Shape, w, h int) {
	var ringsMic [][][2]int
	for _, ring := range heat.Rings(s.Geometry) {
		var sm [][2]int
		for _, p := range ring {
			mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
			if !ok {
				continue
			}
			sm = append(sm, [2]int{mx, my})
		}
		if len(sm) >= 2 {
			ringsMic = append(ringsMic, sm)
		}
	}
	if len(ringsMic) == 0 {
		return
	}
	if m.showFill && len(ringsMic[0]) >= 3 {
		br.pen = s.Color.Over(canvasBg).Hex()
		fillRing(br, ringsMic[0], h*4)
	}
	if m.showOutline || (m.hovering && m.hoverRegion == s.Region) {
		br.pen = s.Color.Hex()
		if m.hovering && m.hoverRegion == s.Region {
			br.pen = hoverCol
		}
		for _, r := range ringsMic {
			for i := 0; i < len(r); i++ {
				a := r[i]
				b := r[(i+1)%len(r)]
				br.drawLineMicro(a[0], a[1], b[0], b[1])
			}
		}
	}
	br.pen = ""
}

// fillRing fills a ring on the microgrid with the even-odd scanline rule.
// Holes are not cut out.
func fillRing(br *brailleBuf, ring [][2]int, hMic int) {
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] {
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				br.setPixel(xMic, yMic)
			}
		}
	}
}

// regionAt returns the topmost shape containing the projected point.
func (m Model) regionAt(x, y float64) (heat.Shape, bool) {
	if m.layer == nil {
		return heat.Shape{}, false
	}
	for i := len(m.layer.Shapes) - 1; i >= 0; i-- {
		s := m.layer.Shapes[i]
		if containsPoint(heat.Rings(s.Geometry), x, y) {
			return s, true
		}
	}
	return heat.Shape{}, false
}

// containsPoint applies the even-odd rule across all rings, so holes are
// excluded.
func containsPoint(rings [][][2]float64, x, y float64) bool {
	in := false
	for _, r := range rings {
		for i, j := 0, len(r)-1; i < len(r); j, i = i, i+1 {
			a, b := r[i], r[j]
			if (a[1] > y) != (b[1] > y) && x < (b[0]-a[0])*(y-a[1])/(b[1]-a[1])+a[0] {
				in = !in
			}
		}
	}
	return in
}

// hoverLabel describes the hovered region for the footer.
func (m Model) hoverLabel() string {
	if !m.hovering || m.hoverRegion == "" || m.layer == nil {
		return ""
	}
	s, ok := m.layer.Shape(m.hoverRegion)
	if !ok {
		return ""
	}
	return string(s.Region) + " = " + s.Label + "  " + s.Color.String()
}

// updateHover resolves the cell under the mouse into a region and lon/lat.
func (m *Model) updateHover(cx, cy, w, h int) {
	m.hovering = true
	m.hoverRegion = frame.RegionID("")
	x, y, ok := m.cellToXY(cx, cy, w, h)
	if !ok {
		m.hoverHasGeo = false
		return
	}
	m.hoverHasGeo = true
	m.hoverLon, m.hoverLat = geom.Unproject(x, y)
	if s, ok := m.regionAt(x, y); ok {
		m.hoverRegion = s.Region
	}
}
