package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geoheat/internal/frame"
)

// FramesMsg delivers a new batch of frames, or the error that prevented
// reading one. The overlay is rebuilt from Frames when Err is nil.
type FramesMsg struct {
	Frames []frame.Frame
	Err    error
}

// LoadFrames reads the frames file as a tea.Cmd.
func LoadFrames(path string, opts frame.SourceOptions) tea.Cmd {
	return func() tea.Msg {
		fs, err := frame.LoadFile(path, opts)
		return FramesMsg{Frames: fs, Err: err}
	}
}

const sidebarWidth = 28

// layout returns the map origin and size; it must match View.
func (m Model) layout() (originX, originY, w, h int) {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	headerHeight, footerHeight := 1, 2
	h = max(4, m.height-headerHeight-footerHeight)
	w = max(10, max(10, m.width)-sw)
	return sw, headerHeight, w, h
}

func (m *Model) applyFrames(fs []frame.Frame) {
	l, err := m.panel.Refresh(fs)
	if err != nil {
		m.status = "refresh: " + err.Error()
		return
	}
	m.setLayer(l)
	m.status = fmt.Sprintf("overlay %s: group %s, %d shapes, %d skipped", shortID(l.ID), m.panel.Group(), len(l.Shapes), len(l.Skipped))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			_, _, _, h := m.layout()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
	case FramesMsg:
		if msg.Err != nil {
			m.status = "frames: " + msg.Err.Error()
			return m, nil
		}
		m.applyFrames(msg.Frames)
		return m, nil
	case tea.KeyMsg:
		// while filtering, keys belong to the list
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				m.status = "view mode"
				return m, nil
			case "ctrl+s":
				in := strings.TrimSpace(m.ta.Value())
				if in == "" {
					m.status = "paste: empty"
					return m, nil
				}
				fs, err := frame.ReadLines(strings.NewReader(in))
				if err != nil {
					m.status = "paste: " + err.Error()
					return m, nil
				}
				m.zoom = 1.0
				m.offsetX, m.offsetY = 0, 0
				m.pasteMode = false
				m.ta.Blur()
				m.applyFrames(fs)
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showValues {
			switch msg.String() {
			case "esc", "v":
				m.showValues = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "f":
			m.showFill = !m.showFill
			m.status = fmt.Sprintf("fill: %v", m.showFill)
		case "o":
			m.showOutline = !m.showOutline
			m.status = fmt.Sprintf("outline: %v", m.showOutline)
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshGroups()
				_, _, _, h := m.layout()
				m.l.SetSize(sidebarWidth-2, h-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.ta.Focus()
			m.status = "paste mode"
		case "r":
			if m.framesPath == "" {
				m.status = "no frames file"
				return m, nil
			}
			m.status = "reloading " + m.framesPath
			return m, LoadFrames(m.framesPath, m.srcOpts)
		case "v":
			m.showValues = true
			m.refreshValues()
		case "h":
			m.helpVisible = !m.helpVisible
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				return m, nil
			}
			m.inspectPopup = m.inspect()
			m.status = "inspect popup"
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				m.selectGroup()
				return m, nil
			}
		case "up":
			m.offsetY--
		case "down":
			m.offsetY++
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		ox, oy, w, h := m.layout()
		if msg.X >= ox && msg.X < ox+w && msg.Y >= oy && msg.Y < oy+h {
			m.updateHover(msg.X-ox, msg.Y-oy, w, h)
		} else {
			m.hovering = false
			m.hoverHasGeo = false
			m.hoverRegion = ""
		}
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// inspect summarises the active overlay.
func (m Model) inspect() string {
	if m.layer == nil {
		return "no overlay yet"
	}
	meta := []string{
		fmt.Sprintf("layer: %s", m.layer.ID),
		fmt.Sprintf("group: %s", m.panel.Group()),
		fmt.Sprintf("z-index: %d", m.layer.ZIndex),
		fmt.Sprintf("shapes: %d", len(m.layer.Shapes)),
		fmt.Sprintf("regions: %d", len(m.panel.Regions().Features)),
		"crs: EPSG:3857",
	}
	if !m.bbox.Empty() {
		meta = append(meta, fmt.Sprintf("bbox: [%.0f, %.0f, %.0f, %.0f]", m.bbox.MinX, m.bbox.MinY, m.bbox.MaxX, m.bbox.MaxY))
	}
	for _, s := range m.layer.Skipped {
		meta = append(meta, fmt.Sprintf("skipped %s: %v", s.Region, s.Err))
	}
	return strings.Join(meta, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
