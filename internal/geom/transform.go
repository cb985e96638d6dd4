// Package geom converts between the editor's canvas space and PDF page space.
//
// Canvas space is what the editing surface shows: pixels, origin top-left,
// y growing downward, scaled by a zoom factor and shifted by a pan offset.
// PDF space is fixed page geometry: points (1/72 inch), origin bottom-left,
// y growing upward.
package geom

import (
	"errors"
	"fmt"
)

// Zoom limits for the editing surface. Conversions themselves accept any
// positive zoom; these bound what the editor lets the user reach.
const (
	MinZoom  = 0.1
	MaxZoom  = 5.0
	ZoomStep = 1.25
)

// ErrInvalidZoom is returned when a conversion is asked for with a zoom
// factor that is zero or negative.
var ErrInvalidZoom = errors.New("invalid zoom")

// ToPDF converts a canvas point to PDF page space.
//
// panX/panY are the canvas coordinates of the page's top-left corner,
// pageHeight is the page height in points. The y axis flips between the two
// spaces: canvas grows downward, PDF grows upward.
func ToPDF(canvasX, canvasY, zoom, panX, panY, pageHeight float64) (float64, float64, error) {
	if zoom <= 0 {
		return 0, 0, fmt.Errorf("%w: %g", ErrInvalidZoom, zoom)
	}
	pdfX := (canvasX - panX) / zoom
	pdfY := pageHeight - (canvasY-panY)/zoom
	return pdfX, pdfY, nil
}

// ToCanvas converts a PDF page point back to canvas space. Inverse of ToPDF
// for the same zoom/pan/page parameters.
func ToCanvas(pdfX, pdfY, zoom, panX, panY, pageHeight float64) (float64, float64, error) {
	if zoom <= 0 {
		return 0, 0, fmt.Errorf("%w: %g", ErrInvalidZoom, zoom)
	}
	canvasX := pdfX*zoom + panX
	canvasY := (pageHeight-pdfY)*zoom + panY
	return canvasX, canvasY, nil
}

// ClampZoom pins a requested zoom factor into the supported range.
func ClampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// View bundles the parameters of one editing surface: the current zoom and
// pan plus the page dimensions of the template being edited.
type View struct {
	Zoom       float64
	PanX       float64
	PanY       float64
	PageWidth  float64
	PageHeight float64
}

// NewView returns a view over a page at 100% zoom with no pan.
func NewView(pageWidth, pageHeight float64) View {
	return View{Zoom: 1.0, PageWidth: pageWidth, PageHeight: pageHeight}
}

// ToPDF converts a canvas point using the view's zoom and pan.
func (v View) ToPDF(canvasX, canvasY float64) (float64, float64, error) {
	return ToPDF(canvasX, canvasY, v.Zoom, v.PanX, v.PanY, v.PageHeight)
}

// ToCanvas converts a PDF point using the view's zoom and pan.
func (v View) ToCanvas(pdfX, pdfY float64) (float64, float64, error) {
	return ToCanvas(pdfX, pdfY, v.Zoom, v.PanX, v.PanY, v.PageHeight)
}

// ZoomIn returns the view scaled one step closer, clamped to MaxZoom.
func (v View) ZoomIn() View {
	v.Zoom = ClampZoom(v.Zoom * ZoomStep)
	return v
}

// ZoomOut returns the view scaled one step further away, clamped to MinZoom.
func (v View) ZoomOut() View {
	v.Zoom = ClampZoom(v.Zoom / ZoomStep)
	return v
}
