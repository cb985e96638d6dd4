package editor

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const halfBlock = '▀'

var (
	backdropColor   = color.RGBA{R: 35, G: 35, B: 38, A: 255}
	markerColor     = color.RGBA{R: 255, G: 95, B: 175, A: 255}
	markerSelected  = color.RGBA{R: 95, G: 215, B: 255, A: 255}
	markerImageTint = color.RGBA{R: 175, G: 135, B: 255, A: 255}
	labelColor      = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// cellGrid is a w by h matrix of terminal cells. Each cell shows two
// vertically stacked pixels through the upper-halfblock glyph: the foreground
// colour paints the top pixel, the background colour the bottom one. Pixel
// coordinates map to cells as x = column, y = row*2 (top) and row*2+1
// (bottom).
type cellGrid struct {
	w, h  int
	cells []gridCell
}

type gridCell struct {
	ch   rune
	fg   color.RGBA
	bg   color.RGBA
	bold bool
}

func newCellGrid(w, h int) *cellGrid {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	g := &cellGrid{w: w, h: h, cells: make([]gridCell, w*h)}
	for i := range g.cells {
		g.cells[i] = gridCell{ch: halfBlock, fg: backdropColor, bg: backdropColor}
	}
	return g
}

// blit copies the rendered page into the grid. The bitmap's top-left corner
// lands at canvas pixel (panX, panY); everything outside it keeps the
// backdrop colour.
func (g *cellGrid) blit(img *image.RGBA, panX, panY float64) {
	if img == nil {
		return
	}
	offX, offY := int(panX), int(panY)
	for row := 0; row < g.h; row++ {
		for col := 0; col < g.w; col++ {
			c := &g.cells[row*g.w+col]
			c.fg = samplePixel(img, col-offX, row*2-offY)
			c.bg = samplePixel(img, col-offX, row*2+1-offY)
		}
	}
}

func samplePixel(img *image.RGBA, x, y int) color.RGBA {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return backdropColor
	}
	return img.RGBAAt(x, y)
}

// marker stamps a field anchor glyph. The bottom-pixel colour of the cell is
// kept so the page stays visible around the glyph.
func (g *cellGrid) marker(col, row int, selected, isImage bool) {
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return
	}
	c := &g.cells[row*g.w+col]
	c.ch = '+'
	if isImage {
		c.ch = '#'
	}
	c.fg = markerColor
	if isImage {
		c.fg = markerImageTint
	}
	if selected {
		c.fg = markerSelected
	}
	c.bold = true
}

// label writes text starting at (col, row), clipped at the right edge.
func (g *cellGrid) label(col, row int, text string, selected bool) {
	if row < 0 || row >= g.h {
		return
	}
	fg := labelColor
	if selected {
		fg = markerSelected
	}
	for _, r := range text {
		if col >= g.w {
			return
		}
		if col >= 0 {
			c := &g.cells[row*g.w+col]
			c.ch = r
			c.fg = fg
			c.bold = selected
		}
		col++
	}
}

// String renders the grid with ANSI colours, batching runs of cells that
// share the same attributes to keep the frame small.
func (g *cellGrid) String() string {
	var sb strings.Builder
	var run strings.Builder
	for row := 0; row < g.h; row++ {
		col := 0
		for col < g.w {
			first := g.cells[row*g.w+col]
			run.Reset()
			for col < g.w {
				c := g.cells[row*g.w+col]
				if c.fg != first.fg || c.bg != first.bg || c.bold != first.bold {
					break
				}
				run.WriteRune(c.ch)
				col++
			}
			style := lipgloss.NewStyle().
				Foreground(hexColor(first.fg)).
				Background(hexColor(first.bg))
			if first.bold {
				style = style.Bold(true)
			}
			sb.WriteString(style.Render(run.String()))
		}
		if row < g.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
