// Package tui is the interactive terminal slice viewer: a bubbletea
// model that walks slices of a VTK dataset and paints them with the
// current palette, with a stats and histogram side panel.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/fieldlab/internal/colormap"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/viewer"
)

const (
	cellCols = 56 // terminal cells across the heatmap
	cellRows = 24
	histBins = 24
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Model is the viewer's bubbletea state.
type Model struct {
	path   string
	view   *viewer.Viewer
	arrays []string

	arrayIdx   int
	axis       field.Axis
	index      int // -1 until the first render picks the middle
	resolution int
	paletteIdx int
	threshold  float64 // normalized offset from midpoint, in [-0.5, 0.5]
	diverging  bool    // false = preset palette, true = threshold scale

	current *viewer.View
	err     error
}

// NewModel opens the file and positions the viewer at the middle
// slice of the default axis.
func NewModel(path string, v *viewer.Viewer, axis field.Axis, resolution int) (Model, error) {
	ds, err := v.Describe(path)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		path:       path,
		view:       v,
		arrays:     ds.ArrayNames(),
		axis:       axis,
		index:      -1,
		resolution: resolution,
	}
	m.render()
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) render() {
	req := viewer.Request{
		Path:       m.path,
		Array:      m.arrays[m.arrayIdx],
		Axis:       m.axis,
		Index:      m.index,
		Resolution: m.resolution,
	}
	view, err := m.view.Render(req)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.current = view
	m.index = view.Index
}

func (m *Model) clampIndex(ds func() int) {
	max := ds()
	if m.index > max {
		m.index = max
	}
	if m.index < 0 {
		m.index = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.index > 0 {
			m.index--
			m.render()
		}
	case "right", "l":
		m.index++
		if ds, err := m.view.Describe(m.path); err == nil {
			if f, err := ds.Field(m.arrays[m.arrayIdx]); err == nil {
				m.clampIndex(func() int { return f.MaxSliceIndex(m.axis) })
			}
		}
		m.render()
	case "x":
		m.axis = field.AxisX
		m.index = -1
		m.render()
	case "y":
		m.axis = field.AxisY
		m.index = -1
		m.render()
	case "z":
		m.axis = field.AxisZ
		m.index = -1
		m.render()
	case "tab":
		m.arrayIdx = (m.arrayIdx + 1) % len(m.arrays)
		m.index = -1
		m.render()
	case "p":
		if m.diverging {
			m.diverging = false
		} else {
			m.paletteIdx = (m.paletteIdx + 1) % len(colormap.PresetNames())
		}
	case "d":
		m.diverging = !m.diverging
	case "t":
		if m.threshold < 0.45 {
			m.threshold += 0.05
		}
	case "T":
		if m.threshold > -0.45 {
			m.threshold -= 0.05
		}
	}
	return m, nil
}

func (m Model) palette(min, max float64) *colormap.Palette {
	if m.diverging {
		below, _ := colormap.ParseColor("blue")
		above, _ := colormap.ParseColor("red")
		mid := colormap.Midpoint(min, max) + m.threshold*(max-min)
		if pal, err := colormap.Diverging(below, above, min, max, mid); err == nil {
			return pal
		}
	}
	name := colormap.PresetNames()[m.paletteIdx]
	pal, err := colormap.Preset(name)
	if err != nil {
		pal, _ = colormap.Preset("blue-red")
	}
	return pal
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("fieldlab viewer - %s", m.path)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}
	if m.current == nil {
		return "loading..."
	}

	st := m.current.Stats
	pal := m.palette(st.Min, st.Max)
	heat := m.renderHeatmap(pal, st.Min, st.Max)
	panel := m.renderPanel(st, pal)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, heat, statsStyle.Render(panel)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows/hl slice  x/y/z axis  tab array  p palette  d diverging  t/T threshold  q quit"))
	return b.String()
}

// renderHeatmap downsamples the slice onto the terminal cell grid and
// paints each cell's background.
func (m Model) renderHeatmap(pal *colormap.Palette, min, max float64) string {
	s := m.current.Slice
	var b strings.Builder
	for row := cellRows - 1; row >= 0; row-- {
		j := row * (s.Ny - 1) / maxInt(cellRows-1, 1)
		for col := 0; col < cellCols; col++ {
			i := col * (s.Nx - 1) / maxInt(cellCols-1, 1)
			c := pal.Lookup(s.At(i, j), min, max)
			hex := colorful.Color{
				R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255,
			}.Hex()
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(" "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPanel(st field.Stats, pal *colormap.Palette) string {
	var b strings.Builder
	line := func(k string, v string) {
		b.WriteString(labelStyle.Render(k))
		b.WriteString(valueStyle.Render(v))
		b.WriteString("\n")
	}
	line("array", m.current.Array)
	line("axis", m.current.Axis.String())
	line("slice", fmt.Sprintf("%d", m.current.Index))
	line("palette", pal.Name)
	line("min", fmt.Sprintf("%.6g", st.Min))
	line("max", fmt.Sprintf("%.6g", st.Max))
	line("mean", fmt.Sprintf("%.6g", st.Mean))
	line("std", fmt.Sprintf("%.6g", st.Std))

	counts, _ := field.Histogram(m.current.Slice.Data, histBins, st.Min, st.Max)
	b.WriteString("\n")
	b.WriteString(asciigraph.Plot(counts,
		asciigraph.Height(8),
		asciigraph.Width(32),
		asciigraph.Caption("histogram"),
	))
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
