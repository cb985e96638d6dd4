// Package drag implements the pointer-driven state machine that repositions
// template fields on the editing surface.
package drag

import (
	"math"

	"github.com/mrsinham/reportforge/internal/geom"
	"github.com/mrsinham/reportforge/internal/layout"
)

// DefaultHitRadius is the pointer tolerance around a field's canvas
// position, in canvas pixels.
const DefaultHitRadius = 12.0

// State is the controller's current phase.
type State int

const (
	Idle State = iota
	Dragging
)

// String returns the state name.
func (s State) String() string {
	if s == Dragging {
		return "Dragging"
	}
	return "Idle"
}

// capture exists only while a drag is in progress: the grabbed field and the
// pointer-to-anchor offset at grab time. A nil capture is the Idle state, so
// no boolean can fall out of sync with it.
type capture struct {
	field   string
	offsetX float64
	offsetY float64
}

// Controller turns a stream of pointer events into field position updates.
// Events arrive on a single control flow; the controller is not safe for
// concurrent use and does not need to be.
type Controller struct {
	layout    *layout.Layout
	view      geom.View
	hitRadius float64
	active    *capture
	onChanged func(field string, pos layout.Position)
}

// NewController builds a controller over one layout and editing view.
func NewController(l *layout.Layout, view geom.View) *Controller {
	return &Controller{
		layout:    l,
		view:      view,
		hitRadius: DefaultHitRadius,
	}
}

// SetHitRadius overrides the pointer tolerance in canvas pixels.
func (c *Controller) SetHitRadius(r float64) {
	if r > 0 {
		c.hitRadius = r
	}
}

// SetView updates the zoom/pan the controller converts through. Safe to call
// between events, including mid-drag.
func (c *Controller) SetView(v geom.View) { c.view = v }

// View returns the current editing view.
func (c *Controller) View() geom.View { return c.view }

// OnPositionChanged registers the callback fired after every applied move,
// with the clamped position actually stored in the layout.
func (c *Controller) OnPositionChanged(fn func(field string, pos layout.Position)) {
	c.onChanged = fn
}

// State reports Idle or Dragging.
func (c *Controller) State() State {
	if c.active != nil {
		return Dragging
	}
	return Idle
}

// ActiveField returns the field being dragged, if any.
func (c *Controller) ActiveField() (string, bool) {
	if c.active == nil {
		return "", false
	}
	return c.active.field, true
}

// PointerDown starts a drag when the pointer lands within the hit radius of
// a field marker. While a drag is already in progress any further
// pointer-down is ignored, including one on another field. Returns whether a
// drag started.
func (c *Controller) PointerDown(canvasX, canvasY float64) bool {
	if c.active != nil {
		return false
	}

	field, fieldX, fieldY, ok := c.hitTest(canvasX, canvasY)
	if !ok {
		return false
	}

	c.active = &capture{
		field:   field,
		offsetX: canvasX - fieldX,
		offsetY: canvasY - fieldY,
	}
	return true
}

// PointerMove applies a drag step: the field anchor follows the pointer
// minus the captured offset, converted to PDF space and written through the
// layout (which clamps into page bounds). Every move is immediately durable
// in memory; persistence happens on an explicit store save.
func (c *Controller) PointerMove(canvasX, canvasY float64) {
	if c.active == nil {
		return
	}

	pdfX, pdfY, err := c.view.ToPDF(canvasX-c.active.offsetX, canvasY-c.active.offsetY)
	if err != nil {
		return
	}
	if err := c.layout.SetPosition(c.active.field, pdfX, pdfY); err != nil {
		return
	}

	if c.onChanged != nil {
		pos, err := c.layout.Position(c.active.field)
		if err == nil {
			c.onChanged(c.active.field, pos)
		}
	}
}

// PointerUp ends the drag. The last applied position stands; there is no
// separate commit step.
func (c *Controller) PointerUp() {
	c.active = nil
}

// Cancel aborts an in-progress drag, for example when the surface loses
// focus. Positions already applied are not rolled back.
func (c *Controller) Cancel() {
	c.active = nil
}

// hitTest finds the nearest field whose canvas position lies within the hit
// radius of the pointer. Returns the field name and its canvas position.
func (c *Controller) hitTest(canvasX, canvasY float64) (string, float64, float64, bool) {
	bestDist := c.hitRadius
	var bestField string
	var bestX, bestY float64

	for _, name := range layout.FieldNames() {
		pos, err := c.layout.Position(name)
		if err != nil {
			continue
		}
		fx, fy, err := c.view.ToCanvas(pos.X, pos.Y)
		if err != nil {
			return "", 0, 0, false
		}
		dist := math.Hypot(canvasX-fx, canvasY-fy)
		if dist <= bestDist {
			bestDist = dist
			bestField = name
			bestX, bestY = fx, fy
		}
	}

	if bestField == "" {
		return "", 0, 0, false
	}
	return bestField, bestX, bestY, true
}
