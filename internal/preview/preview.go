// Package preview produces the editor's page background bitmaps. A real
// PDF rasterizer is out of scope, so the canvas is either a schematic
// placeholder page or an externally rasterized page image supplied by
// the user.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	// Register decoders for externally rasterized page images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Renderer rasterizes a template page at a scale factor. The returned
// bitmap is scale*(pageW x pageH) pixels, one canvas pixel per scaled
// point.
type Renderer interface {
	Render(pageW, pageH, scale float64) (*image.RGBA, error)
}

// Placeholder renders a schematic page when no rasterized image is
// available: a white sheet with a border, an inch grid and a label.
type Placeholder struct {
	// Label is drawn in the top left corner, usually the template name.
	Label string
}

var (
	gridColor   = color.RGBA{229, 229, 229, 255}
	borderColor = color.RGBA{120, 120, 120, 255}
	labelColor  = color.RGBA{150, 150, 150, 255}
)

func (p Placeholder) Render(pageW, pageH, scale float64) (*image.RGBA, error) {
	w, h, err := bitmapSize(pageW, pageH, scale)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Inch grid, light enough to read positions against.
	for gx := 72.0; gx < pageW; gx += 72 {
		x := int(math.Round(gx * scale))
		if x >= w {
			continue
		}
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, gridColor)
		}
	}
	for gy := 72.0; gy < pageH; gy += 72 {
		y := int(math.Round(gy * scale))
		if y >= h {
			continue
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, gridColor)
		}
	}

	for x := 0; x < w; x++ {
		img.SetRGBA(x, 0, borderColor)
		img.SetRGBA(x, h-1, borderColor)
	}
	for y := 0; y < h; y++ {
		img.SetRGBA(0, y, borderColor)
		img.SetRGBA(w-1, y, borderColor)
	}

	if p.Label != "" {
		face := basicfont.Face7x13
		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(labelColor),
			Face: face,
			Dot:  fixed.P(8, 6+face.Metrics().Ascent.Ceil()),
		}
		drawer.DrawString(p.Label)
	}
	return img, nil
}

// Bitmap serves a pre-rasterized page image, rescaled per render call.
type Bitmap struct {
	src image.Image
}

// NewBitmap wraps an already decoded page image.
func NewBitmap(src image.Image) *Bitmap {
	return &Bitmap{src: src}
}

// LoadBitmap reads a rasterized page image (PNG, JPEG or GIF).
func LoadBitmap(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open preview image: %w", err)
	}
	defer func() { _ = f.Close() }()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode preview image %s: %w", path, err)
	}
	return NewBitmap(src), nil
}

func (b *Bitmap) Render(pageW, pageH, scale float64) (*image.RGBA, error) {
	w, h, err := bitmapSize(pageW, pageH, scale)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), b.src, b.src.Bounds(), draw.Src, nil)
	return dst, nil
}

func bitmapSize(pageW, pageH, scale float64) (int, int, error) {
	if pageW <= 0 || pageH <= 0 {
		return 0, 0, fmt.Errorf("invalid page size %gx%g", pageW, pageH)
	}
	if scale <= 0 {
		return 0, 0, fmt.Errorf("invalid scale %g", scale)
	}
	w := int(math.Round(pageW * scale))
	h := int(math.Round(pageH * scale))
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return w, h, nil
}
