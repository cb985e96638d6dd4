// Package editor is the interactive layout screen. It renders the template
// page as a halfblock bitmap, lets the user drag field anchors with the
// mouse, and persists the result through the layout store.
package editor

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/reportforge/internal/drag"
	"github.com/mrsinham/reportforge/internal/geom"
	"github.com/mrsinham/reportforge/internal/layout"
	"github.com/mrsinham/reportforge/internal/preview"
	"github.com/mrsinham/reportforge/internal/report"
)

// Options carries everything the editor needs to run.
type Options struct {
	Template *report.Template
	Layout   *layout.Layout
	Store    *layout.Store
	Renderer preview.Renderer
}

type phase int

const (
	phaseEdit phase = iota
	phaseConfirmQuit
)

const (
	sidebarWidth = 33
	panStep      = 8.0
	nudgeStep    = 1.0
	fitMargin    = 4.0
)

// Model is the bubbletea model for the layout editor.
type Model struct {
	opts   Options
	ctrl   *drag.Controller
	view   geom.View
	phase  phase
	fields []string

	selected int
	dirty    bool
	fitted   bool

	status      string
	statusIsErr bool

	confirm     *huh.Form
	saveAndQuit bool

	cachedImg  *image.RGBA
	cachedZoom float64

	width, height int
}

// New builds the editor model around an already loaded template and layout.
func New(opts Options) *Model {
	m := &Model{
		opts:     opts,
		view:     geom.NewView(opts.Template.PageWidth, opts.Template.PageHeight),
		fields:   layout.FieldNames(),
		selected: 0,
	}
	m.ctrl = drag.NewController(opts.Layout, m.view)
	m.ctrl.OnPositionChanged(func(field string, pos layout.Position) {
		m.dirty = true
		m.setStatus(fmt.Sprintf("%s at (%.0f, %.0f)", field, pos.X, pos.Y), false)
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.fitted && m.width > 0 && m.height > 0 {
			m.fitView()
			m.fitted = true
		}
		return m, nil
	case tea.BlurMsg:
		m.ctrl.Cancel()
		return m, nil
	}

	if m.phase == phaseConfirmQuit {
		return m.updateConfirm(msg)
	}
	return m.updateEdit(msg)
}

func (m *Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		if !m.dirty {
			return m, tea.Quit
		}
		return m, m.startConfirmQuit()
	case "s":
		m.save()
	case "r":
		m.opts.Layout.Reset()
		m.dirty = true
		m.setStatus("layout reset to defaults", false)
	case "tab":
		m.selected = (m.selected + 1) % len(m.fields)
		m.setStatus("selected "+m.fields[m.selected], false)
	case "shift+tab":
		m.selected = (m.selected + len(m.fields) - 1) % len(m.fields)
		m.setStatus("selected "+m.fields[m.selected], false)
	case "f":
		m.bumpFontSize(1)
	case "F":
		m.bumpFontSize(-1)
	case "a":
		m.cycleAlignment()
	case "+", "=":
		cx, cy := m.canvasCenter()
		m.zoomAt(cx, cy, true)
	case "-", "_":
		cx, cy := m.canvasCenter()
		m.zoomAt(cx, cy, false)
	case "0":
		m.fitView()
		m.setStatus(fmt.Sprintf("fit to window (%.0f%%)", m.view.Zoom*100), false)
	case "up":
		m.pan(0, panStep)
	case "down":
		m.pan(0, -panStep)
	case "left":
		m.pan(panStep, 0)
	case "right":
		m.pan(-panStep, 0)
	case "shift+up":
		m.nudgeSelected(0, nudgeStep)
	case "shift+down":
		m.nudgeSelected(0, -nudgeStep)
	case "shift+left":
		m.nudgeSelected(-nudgeStep, 0)
	case "shift+right":
		m.nudgeSelected(nudgeStep, 0)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	cx, cy, inside := m.canvasPixel(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !inside {
				return
			}
			if m.ctrl.PointerDown(cx, cy) {
				if field, ok := m.ctrl.ActiveField(); ok {
					m.selectField(field)
				}
			}
		case tea.MouseButtonWheelUp:
			if inside {
				m.zoomAt(cx, cy, true)
			}
		case tea.MouseButtonWheelDown:
			if inside {
				m.zoomAt(cx, cy, false)
			}
		}
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(cx, cy)
	case tea.MouseActionRelease:
		m.ctrl.PointerUp()
	}
}

func (m *Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		if m.saveAndQuit && !m.save() {
			m.phase = phaseEdit
			return m, nil
		}
		return m, tea.Quit
	case huh.StateAborted:
		m.phase = phaseEdit
		m.setStatus("", false)
	}
	return m, cmd
}

func (m *Model) startConfirmQuit() tea.Cmd {
	m.saveAndQuit = true
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save layout changes before quitting?").
				Affirmative("Save and quit").
				Negative("Discard").
				Value(&m.saveAndQuit),
		),
	).WithShowHelp(false).WithShowErrors(false)
	m.phase = phaseConfirmQuit
	return m.confirm.Init()
}

// save persists the layout and reports the outcome on the status line.
func (m *Model) save() bool {
	if err := m.opts.Store.Save(m.opts.Layout); err != nil {
		m.setStatus(fmt.Sprintf("save failed: %v", err), true)
		return false
	}
	m.dirty = false
	m.setStatus("saved "+m.opts.Store.Path(m.opts.Layout.TemplateID()), false)
	return true
}

func (m *Model) selectField(name string) {
	for i, f := range m.fields {
		if f == name {
			m.selected = i
			return
		}
	}
}

func (m *Model) bumpFontSize(delta float64) {
	name := m.fields[m.selected]
	info, err := layout.FieldByName(name)
	if err != nil || info.Kind != layout.KindText {
		m.setStatus("font size applies to text fields only", false)
		return
	}
	pos, err := m.opts.Layout.Position(name)
	if err != nil {
		return
	}
	if err := m.opts.Layout.SetFontSize(name, pos.FontSize+delta); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	pos, _ = m.opts.Layout.Position(name)
	m.dirty = true
	m.setStatus(fmt.Sprintf("%s font size %.0fpt", name, pos.FontSize), false)
}

func (m *Model) cycleAlignment() {
	name := m.fields[m.selected]
	info, err := layout.FieldByName(name)
	if err != nil || info.Kind != layout.KindText {
		m.setStatus("alignment applies to text fields only", false)
		return
	}
	pos, err := m.opts.Layout.Position(name)
	if err != nil {
		return
	}
	all := layout.Alignments()
	next := all[0]
	for i, a := range all {
		if a == pos.Align {
			next = all[(i+1)%len(all)]
			break
		}
	}
	if err := m.opts.Layout.SetAlignment(name, next); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.dirty = true
	m.setStatus(fmt.Sprintf("%s aligned %s", name, next), false)
}

func (m *Model) nudgeSelected(dx, dy float64) {
	name := m.fields[m.selected]
	pos, err := m.opts.Layout.Position(name)
	if err != nil {
		return
	}
	if err := m.opts.Layout.SetPosition(name, pos.X+dx, pos.Y+dy); err != nil {
		return
	}
	pos, _ = m.opts.Layout.Position(name)
	m.dirty = true
	m.setStatus(fmt.Sprintf("%s at (%.0f, %.0f)", name, pos.X, pos.Y), false)
}

func (m *Model) pan(dx, dy float64) {
	m.view.PanX += dx
	m.view.PanY += dy
	m.ctrl.SetView(m.view)
}

// zoomAt zooms one step while keeping the page point under (cx, cy) fixed
// on screen.
func (m *Model) zoomAt(cx, cy float64, in bool) {
	pdfX, pdfY, perr := m.view.ToPDF(cx, cy)
	if in {
		m.view = m.view.ZoomIn()
	} else {
		m.view = m.view.ZoomOut()
	}
	if perr == nil {
		m.view.PanX = cx - pdfX*m.view.Zoom
		m.view.PanY = cy - (m.view.PageHeight-pdfY)*m.view.Zoom
	}
	m.ctrl.SetView(m.view)
	m.setStatus(fmt.Sprintf("zoom %.0f%%", m.view.Zoom*100), false)
}

// fitView picks the largest zoom that shows the whole page and centers it.
func (m *Model) fitView() {
	cols, rows := m.canvasSize()
	pxW, pxH := float64(cols), float64(rows*2)
	if pxW <= 2*fitMargin || pxH <= 2*fitMargin {
		return
	}
	zx := (pxW - 2*fitMargin) / m.view.PageWidth
	zy := (pxH - 2*fitMargin) / m.view.PageHeight
	z := zx
	if zy < z {
		z = zy
	}
	m.view.Zoom = geom.ClampZoom(z)
	m.view.PanX = (pxW - m.view.PageWidth*m.view.Zoom) / 2
	m.view.PanY = (pxH - m.view.PageHeight*m.view.Zoom) / 2
	m.ctrl.SetView(m.view)
}

// canvasSize is the drawable cell area: everything but the title and status
// rows, and the sidebar when the terminal is wide enough.
func (m *Model) canvasSize() (cols, rows int) {
	cols = m.width
	if m.width >= 2*sidebarWidth {
		cols = m.width - sidebarWidth
	}
	rows = m.height - 2
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func (m *Model) canvasCenter() (float64, float64) {
	cols, rows := m.canvasSize()
	return float64(cols) / 2, float64(rows)
}

// canvasPixel maps a terminal cell to canvas pixel coordinates, aiming at
// the vertical middle of the cell. The canvas starts below the title row.
func (m *Model) canvasPixel(col, row int) (float64, float64, bool) {
	cols, rows := m.canvasSize()
	crow := row - 1
	inside := col >= 0 && col < cols && crow >= 0 && crow < rows
	return float64(col), float64(crow*2 + 1), inside
}

// pageImage returns the page bitmap for the current zoom, re-rendering only
// when the zoom changed.
func (m *Model) pageImage() *image.RGBA {
	if m.cachedImg != nil && m.cachedZoom == m.view.Zoom {
		return m.cachedImg
	}
	img, err := m.opts.Renderer.Render(m.view.PageWidth, m.view.PageHeight, m.view.Zoom)
	if err != nil {
		m.setStatus(fmt.Sprintf("preview render failed: %v", err), true)
		return m.cachedImg
	}
	m.cachedImg, m.cachedZoom = img, m.view.Zoom
	return img
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusIsErr = s, isErr
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading editor..."
	}
	if m.width < 40 || m.height < 12 {
		return "terminal too small for the layout editor (need at least 40x12)"
	}

	title := m.titleLine()

	if m.phase == phaseConfirmQuit {
		hint := confirmHintStyle.Render("enter: confirm | esc: back to editor")
		return lipgloss.JoinVertical(lipgloss.Left, title, "", m.confirm.View(), hint)
	}

	body := m.renderCanvas()
	if m.width >= 2*sidebarWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderSidebar())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.statusLine())
}

func (m *Model) titleLine() string {
	name := filepath.Base(m.opts.Template.Path)
	t := titleStyle.Render(" reportforge editor ") + statusStyle.Render(name)
	if m.dirty {
		t += " " + dirtyStyle.Render("[modified]")
	}
	return t
}

func (m *Model) renderCanvas() string {
	cols, rows := m.canvasSize()
	grid := newCellGrid(cols, rows)
	grid.blit(m.pageImage(), m.view.PanX, m.view.PanY)

	selected := m.fields[m.selected]
	for _, name := range m.fields {
		pos, err := m.opts.Layout.Position(name)
		if err != nil {
			continue
		}
		cx, cy, err := m.view.ToCanvas(pos.X, pos.Y)
		if err != nil {
			continue
		}
		col := int(math.Round(cx))
		row := int(math.Round(cy / 2))
		info, ierr := layout.FieldByName(name)
		isImage := ierr == nil && info.Kind == layout.KindImage
		grid.marker(col, row, name == selected, isImage)
		grid.label(col+2, row, name, name == selected)
	}
	return grid.String()
}

func (m *Model) renderSidebar() string {
	_, rows := m.canvasSize()
	lines := make([]string, 0, rows)
	lines = append(lines, sidebarTitleStyle.Render("FIELDS"))
	for i, name := range m.fields {
		pos, err := m.opts.Layout.Position(name)
		if err != nil {
			continue
		}
		cursor, style := "  ", fieldRowStyle
		if i == m.selected {
			cursor, style = "> ", fieldSelectedStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-17s %4.0f,%-4.0f", cursor, name, pos.X, pos.Y)))
		if i != m.selected {
			continue
		}
		info, ierr := layout.FieldByName(name)
		if ierr == nil && info.Kind == layout.KindImage {
			lines = append(lines, fieldDetailStyle.Render(fmt.Sprintf("    box %.1fx%.1fpt", layout.ImageBoxSide, layout.ImageBoxSide)))
		} else {
			lines = append(lines, fieldDetailStyle.Render(fmt.Sprintf("    %.0fpt, %s", pos.FontSize, pos.Align)))
		}
	}

	lines = append(lines, "", fieldDetailStyle.Render(fmt.Sprintf("zoom %.0f%%", m.view.Zoom*100)), "")
	help := [][2]string{
		{"drag", "move field"},
		{"tab", "select field"},
		{"shift+arrows", "nudge 1pt"},
		{"arrows", "pan"},
		{"+/-/0", "zoom / fit"},
		{"f/F", "font size"},
		{"a", "alignment"},
		{"r", "reset"},
		{"s", "save"},
		{"q", "quit"},
	}
	for _, h := range help {
		lines = append(lines, helpKeyStyle.Render(fmt.Sprintf(" %-13s", h[0]))+helpDescStyle.Render(h[1]))
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return lipgloss.NewStyle().Width(sidebarWidth).PaddingLeft(1).Render(strings.Join(lines, "\n"))
}

func (m *Model) statusLine() string {
	msg := m.status
	if msg == "" {
		msg = "drag a marker to move a field"
	}
	style := statusStyle
	if m.statusIsErr {
		style = statusErrorStyle
	}
	return " " + style.Render(msg)
}

// Run starts the editor and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}
