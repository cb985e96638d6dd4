package editor

import (
	"math"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrsinham/reportforge/internal/layout"
	"github.com/mrsinham/reportforge/internal/preview"
	"github.com/mrsinham/reportforge/internal/report"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	tpl := &report.Template{
		Path:       "sample_template.pdf",
		ID:         "0011aabbccdd",
		PageWidth:  612,
		PageHeight: 792,
		Pages:      1,
	}
	store := layout.NewStore(t.TempDir())
	lay := store.Load(tpl.ID, tpl.Path, tpl.PageWidth, tpl.PageHeight)
	return New(Options{
		Template: tpl,
		Layout:   lay,
		Store:    store,
		Renderer: preview.Placeholder{Label: "sample"},
	})
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "shift+up":
		return tea.KeyMsg{Type: tea.KeyShiftUp}
	case "shift+down":
		return tea.KeyMsg{Type: tea.KeyShiftDown}
	case "shift+left":
		return tea.KeyMsg{Type: tea.KeyShiftLeft}
	case "shift+right":
		return tea.KeyMsg{Type: tea.KeyShiftRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *Model, s string) tea.Cmd {
	_, cmd := m.Update(keyMsg(s))
	return cmd
}

func resize(m *Model, w, h int) {
	m.Update(tea.WindowSizeMsg{Width: w, Height: h})
}

// setView pins the viewport so mouse coordinates in tests are predictable.
func setView(m *Model, zoom, panX, panY float64) {
	m.view.Zoom = zoom
	m.view.PanX = panX
	m.view.PanY = panY
	m.ctrl.SetView(m.view)
}

func mouse(m *Model, action tea.MouseAction, button tea.MouseButton, col, row int) {
	m.Update(tea.MouseMsg{X: col, Y: row, Action: action, Button: button})
}

func mustPosition(t *testing.T, m *Model, name string) layout.Position {
	t.Helper()
	pos, err := m.opts.Layout.Position(name)
	if err != nil {
		t.Fatalf("Position(%s) failed: %v", name, err)
	}
	return pos
}

func TestEditorFitsPageToWindow(t *testing.T) {
	m := newTestModel(t)
	resize(m, 200, 60)

	cols, rows := m.canvasSize()
	pxW, pxH := float64(cols), float64(rows*2)
	if m.view.Zoom <= 0 {
		t.Fatalf("expected positive zoom after resize, got %f", m.view.Zoom)
	}
	if w := m.view.PageWidth * m.view.Zoom; w > pxW {
		t.Errorf("page width %f exceeds canvas width %f", w, pxW)
	}
	if h := m.view.PageHeight * m.view.Zoom; h > pxH {
		t.Errorf("page height %f exceeds canvas height %f", h, pxH)
	}
	if m.view.PanX <= 0 {
		t.Errorf("expected page centered horizontally, pan %f", m.view.PanX)
	}
}

func TestEditorLaterResizeKeepsView(t *testing.T) {
	m := newTestModel(t)
	resize(m, 200, 60)
	setView(m, 1.0, 0, 0)

	resize(m, 220, 70)
	if m.view.Zoom != 1.0 {
		t.Errorf("resize after the first fit should not change zoom, got %f", m.view.Zoom)
	}
}

func TestEditorTabCyclesFields(t *testing.T) {
	m := newTestModel(t)
	names := layout.FieldNames()

	if m.fields[m.selected] != names[0] {
		t.Fatalf("expected initial selection %s, got %s", names[0], m.fields[m.selected])
	}
	press(m, "tab")
	if m.fields[m.selected] != names[1] {
		t.Errorf("expected %s after tab, got %s", names[1], m.fields[m.selected])
	}
	press(m, "shift+tab")
	press(m, "shift+tab")
	if m.fields[m.selected] != names[len(names)-1] {
		t.Errorf("expected wrap to %s, got %s", names[len(names)-1], m.fields[m.selected])
	}
}

func TestEditorNudgeMovesSelectedField(t *testing.T) {
	m := newTestModel(t)
	resize(m, 200, 60)

	press(m, "shift+up")
	press(m, "shift+left")
	pos := mustPosition(t, m, "name")
	if pos.X != 49 || pos.Y != 701 {
		t.Errorf("expected name at (49, 701), got (%f, %f)", pos.X, pos.Y)
	}
	if !m.dirty {
		t.Error("expected nudge to mark the layout dirty")
	}
}

func TestEditorDragMovesField(t *testing.T) {
	m := newTestModel(t)
	resize(m, 120, 60)
	setView(m, 1.0, 0, 0)

	// name sits at PDF (50, 700): canvas pixel (50, 92), cell (50, 47).
	mouse(m, tea.MouseActionPress, tea.MouseButtonLeft, 50, 47)
	if _, ok := m.ctrl.ActiveField(); !ok {
		t.Fatal("expected press on the marker to start a drag")
	}
	if m.fields[m.selected] != "name" {
		t.Errorf("expected drag to select name, got %s", m.fields[m.selected])
	}

	mouse(m, tea.MouseActionMotion, tea.MouseButtonLeft, 60, 47)
	mouse(m, tea.MouseActionRelease, tea.MouseButtonLeft, 60, 47)

	if _, ok := m.ctrl.ActiveField(); ok {
		t.Error("expected release to end the drag")
	}
	pos := mustPosition(t, m, "name")
	if pos.X != 60 || pos.Y != 700 {
		t.Errorf("expected name at (60, 700) after drag, got (%f, %f)", pos.X, pos.Y)
	}
	if !m.dirty {
		t.Error("expected drag to mark the layout dirty")
	}
}

func TestEditorPressOutsideCanvasIgnored(t *testing.T) {
	m := newTestModel(t)
	resize(m, 120, 60)
	setView(m, 1.0, 0, 0)

	cols, _ := m.canvasSize()
	mouse(m, tea.MouseActionPress, tea.MouseButtonLeft, cols+5, 10)
	if _, ok := m.ctrl.ActiveField(); ok {
		t.Error("expected press in the sidebar to be ignored")
	}
}

func TestEditorWheelZoomKeepsCursorAnchor(t *testing.T) {
	m := newTestModel(t)
	resize(m, 120, 60)
	setView(m, 1.0, 0, 0)

	// Cell (50, 47) is canvas pixel (50, 93).
	beforeX, beforeY, err := m.view.ToPDF(50, 93)
	if err != nil {
		t.Fatalf("ToPDF failed: %v", err)
	}
	mouse(m, tea.MouseActionPress, tea.MouseButtonWheelUp, 50, 47)
	if m.view.Zoom <= 1.0 {
		t.Fatalf("expected wheel up to zoom in, got %f", m.view.Zoom)
	}
	afterX, afterY, err := m.view.ToPDF(50, 93)
	if err != nil {
		t.Fatalf("ToPDF failed after zoom: %v", err)
	}
	if math.Abs(afterX-beforeX) > 1e-6 || math.Abs(afterY-beforeY) > 1e-6 {
		t.Errorf("cursor anchor moved from (%f, %f) to (%f, %f)", beforeX, beforeY, afterX, afterY)
	}
}

func TestEditorFontSizeKeys(t *testing.T) {
	m := newTestModel(t)

	press(m, "f")
	if pos := mustPosition(t, m, "name"); pos.FontSize != 13 {
		t.Errorf("expected 13pt after f, got %f", pos.FontSize)
	}
	press(m, "F")
	press(m, "F")
	if pos := mustPosition(t, m, "name"); pos.FontSize != 11 {
		t.Errorf("expected 11pt after two F, got %f", pos.FontSize)
	}
	if !m.dirty {
		t.Error("expected font change to mark the layout dirty")
	}
}

func TestEditorAlignmentCycle(t *testing.T) {
	m := newTestModel(t)

	press(m, "a")
	if pos := mustPosition(t, m, "name"); pos.Align != layout.AlignCenter {
		t.Errorf("expected center after a, got %s", pos.Align)
	}
	press(m, "a")
	if pos := mustPosition(t, m, "name"); pos.Align != layout.AlignRight {
		t.Errorf("expected right after second a, got %s", pos.Align)
	}
	press(m, "a")
	if pos := mustPosition(t, m, "name"); pos.Align != layout.AlignLeft {
		t.Errorf("expected wrap to left, got %s", pos.Align)
	}
}

func TestEditorImageFieldRejectsTextControls(t *testing.T) {
	m := newTestModel(t)
	m.selectField(layout.ImageField)

	press(m, "a")
	press(m, "f")
	pos := mustPosition(t, m, layout.ImageField)
	if pos.Align != layout.AlignLeft || pos.FontSize != layout.DefaultFontSize {
		t.Errorf("expected image field untouched, got %s %f", pos.Align, pos.FontSize)
	}
	if m.dirty {
		t.Error("expected rejected controls to leave the layout clean")
	}
}

func TestEditorResetRestoresDefaults(t *testing.T) {
	m := newTestModel(t)
	press(m, "shift+up")
	press(m, "r")

	pos := mustPosition(t, m, "name")
	if pos.X != 50 || pos.Y != 700 {
		t.Errorf("expected name back at (50, 700), got (%f, %f)", pos.X, pos.Y)
	}
	if !m.dirty {
		t.Error("expected reset to need saving")
	}
}

func TestEditorSavePersistsLayout(t *testing.T) {
	m := newTestModel(t)
	press(m, "shift+up")
	press(m, "s")

	if m.dirty {
		t.Error("expected save to clear the dirty flag")
	}
	path := m.opts.Store.Path(m.opts.Layout.TemplateID())
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected layout file at %s: %v", path, err)
	}

	reloaded := m.opts.Store.Load("0011aabbccdd", "sample_template.pdf", 612, 792)
	pos, err := reloaded.Position("name")
	if err != nil {
		t.Fatalf("Position failed on reloaded layout: %v", err)
	}
	if pos.Y != 701 {
		t.Errorf("expected persisted y 701, got %f", pos.Y)
	}
}

func TestEditorQuitCleanQuitsImmediately(t *testing.T) {
	m := newTestModel(t)
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestEditorQuitDirtyOpensConfirm(t *testing.T) {
	m := newTestModel(t)
	resize(m, 120, 60)
	press(m, "shift+up")

	press(m, "q")
	if m.phase != phaseConfirmQuit {
		t.Fatalf("expected confirm phase, got %d", m.phase)
	}
	if view := m.View(); !strings.Contains(view, "Save layout changes") {
		t.Error("expected the confirm prompt in the view")
	}

	cmd := press(m, "ctrl+c")
	if cmd == nil {
		t.Fatal("expected ctrl+c to quit from the confirm prompt")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestEditorBlurCancelsDrag(t *testing.T) {
	m := newTestModel(t)
	resize(m, 120, 60)
	setView(m, 1.0, 0, 0)

	mouse(m, tea.MouseActionPress, tea.MouseButtonLeft, 50, 47)
	if _, ok := m.ctrl.ActiveField(); !ok {
		t.Fatal("expected drag to start")
	}
	m.Update(tea.BlurMsg{})
	if _, ok := m.ctrl.ActiveField(); ok {
		t.Error("expected blur to cancel the drag")
	}
}

func TestEditorViewListsFields(t *testing.T) {
	m := newTestModel(t)
	resize(m, 120, 60)

	view := m.View()
	if !strings.Contains(view, "FIELDS") {
		t.Error("expected the sidebar header in the view")
	}
	if !strings.Contains(view, "sample_template.pdf") {
		t.Error("expected the template name in the title")
	}
	if !strings.Contains(view, "cancer_grade") {
		t.Error("expected field names in the sidebar")
	}
}
