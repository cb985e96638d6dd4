package layout

import (
	"fmt"
)

// Layout is the complete set of field positions for one template. It is
// total: every recognized field always has a position. A Layout is mutated
// by a single writer (the editor) and must not be shared with a running
// batch.
type Layout struct {
	templateID string
	source     string
	pageW      float64
	pageH      float64
	fields     map[string]Position
}

// New builds a layout from the built-in defaults, clamped into the given
// page bounds. templateID keys persistence; source is the template path and
// is informational only.
func New(templateID, source string, pageWidth, pageHeight float64) *Layout {
	l := &Layout{
		templateID: templateID,
		source:     source,
		pageW:      pageWidth,
		pageH:      pageHeight,
		fields:     make(map[string]Position, len(fieldOrder)),
	}
	for _, info := range Fields() {
		pos := info.Default
		pos.X, pos.Y = l.clamp(pos.X, pos.Y)
		l.fields[info.Name] = pos
	}
	return l
}

// TemplateID returns the identity of the template this layout belongs to.
func (l *Layout) TemplateID() string { return l.templateID }

// Source returns the template path recorded at creation time.
func (l *Layout) Source() string { return l.source }

// PageWidth returns the page width in points.
func (l *Layout) PageWidth() float64 { return l.pageW }

// PageHeight returns the page height in points.
func (l *Layout) PageHeight() float64 { return l.pageH }

// Position returns the placement of a recognized field. After construction
// every recognized field resolves, so the error only reports unknown names.
func (l *Layout) Position(name string) (Position, error) {
	info, err := FieldByName(name)
	if err != nil {
		return Position{}, err
	}
	return l.fields[info.Name], nil
}

// SetPosition moves a field, clamping the coordinates into the page bounds.
// Out-of-page coordinates are pinned to the nearest edge, never rejected.
func (l *Layout) SetPosition(name string, x, y float64) error {
	info, err := FieldByName(name)
	if err != nil {
		return err
	}
	pos := l.fields[info.Name]
	pos.X, pos.Y = l.clamp(x, y)
	l.fields[info.Name] = pos
	return nil
}

// SetFontSize sets a field's font size, clamped into [6, 72] points.
func (l *Layout) SetFontSize(name string, size float64) error {
	info, err := FieldByName(name)
	if err != nil {
		return err
	}
	if size < 6 {
		size = 6
	}
	if size > 72 {
		size = 72
	}
	pos := l.fields[info.Name]
	pos.FontSize = size
	l.fields[info.Name] = pos
	return nil
}

// SetAlignment sets a field's horizontal alignment.
func (l *Layout) SetAlignment(name string, align Alignment) error {
	info, err := FieldByName(name)
	if err != nil {
		return err
	}
	if _, err := ParseAlignment(string(align)); err != nil {
		return err
	}
	pos := l.fields[info.Name]
	pos.Align = align
	l.fields[info.Name] = pos
	return nil
}

// Reset restores every field to its built-in default position.
func (l *Layout) Reset() {
	for _, info := range Fields() {
		pos := info.Default
		pos.X, pos.Y = l.clamp(pos.X, pos.Y)
		l.fields[info.Name] = pos
	}
}

// Snapshot returns a copy of the field map, keyed by canonical field name.
func (l *Layout) Snapshot() map[string]Position {
	out := make(map[string]Position, len(l.fields))
	for name, pos := range l.fields {
		out[name] = pos
	}
	return out
}

func (l *Layout) clamp(x, y float64) (float64, float64) {
	if x < 0 {
		x = 0
	}
	if x > l.pageW {
		x = l.pageW
	}
	if y < 0 {
		y = 0
	}
	if y > l.pageH {
		y = l.pageH
	}
	return x, y
}

// applyPersisted overlays persisted positions onto the defaults. Unknown
// field names in the persisted data are dropped, recognized ones are clamped
// into the current page bounds, and fields absent from the persisted data
// keep their defaults. This keeps loaded layouts total.
func (l *Layout) applyPersisted(fields map[string]Position) {
	for name, pos := range fields {
		info, err := FieldByName(name)
		if err != nil {
			continue
		}
		if pos.FontSize <= 0 {
			pos.FontSize = DefaultFontSize
		}
		if _, err := ParseAlignment(string(pos.Align)); err != nil {
			pos.Align = AlignLeft
		}
		if pos.Align == "" {
			pos.Align = AlignLeft
		}
		pos.X, pos.Y = l.clamp(pos.X, pos.Y)
		l.fields[info.Name] = pos
	}
}

// String summarizes the layout for debug output.
func (l *Layout) String() string {
	return fmt.Sprintf("layout %s (%gx%g, %d fields)", l.templateID, l.pageW, l.pageH, len(l.fields))
}
