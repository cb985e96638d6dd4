// Package report turns patient records into finished PDF reports: it
// validates the template, composes one page per record (template
// background, photo, field values, generation timestamp) and runs
// batches across a worker pool.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/mrsinham/reportforge/internal/layout"
	"github.com/mrsinham/reportforge/internal/photo"
	"github.com/mrsinham/reportforge/internal/record"
)

const (
	reportFont = "Helvetica"

	// noteFontSize is used for the placeholder note drawn when a record
	// has no usable photo.
	noteFontSize = 9.0

	// stampFontSize, stampMarginX and stampMarginY place the generation
	// timestamp in the bottom right corner of the page.
	stampFontSize = 8.0
	stampMarginX  = 20.0
	stampMarginY  = 15.0
)

// Compositor renders report pages. The zero value is not usable, call
// NewCompositor. A single Compositor is safe for concurrent Compose
// calls: each call builds its own document.
type Compositor struct {
	// Compress controls content stream compression of the output.
	Compress bool
	// Now supplies the generation timestamp.
	Now func() time.Time
}

// NewCompositor returns a Compositor with production defaults.
func NewCompositor() *Compositor {
	return &Compositor{
		Compress: true,
		Now:      time.Now,
	}
}

// Compose renders one report for rec on top of the template first page.
// ph may be nil, in which case a short note is drawn at the photo
// anchor instead of an image. The returned bytes are a complete
// single-page PDF document.
//
// The template page is never modified: it is imported as a form XObject
// and painted first, so patient content always sits above it.
func (c *Compositor) Compose(tpl *Template, lay *layout.Layout, rec record.Patient, ph *photo.Photo) ([]byte, error) {
	pageW, pageH := tpl.PageWidth, tpl.PageHeight

	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetCompression(c.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: pageW, Ht: pageH})

	if err := paintTemplate(pdf, tpl); err != nil {
		return nil, err
	}

	c.drawPhoto(pdf, lay, rec, ph, pageH)
	c.drawFields(pdf, lay, rec, pageH)
	c.drawStamp(pdf, pageW, pageH)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("compose report: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("compose report: %w", err)
	}
	return buf.Bytes(), nil
}

// paintTemplate imports the first template page into pdf and paints it
// across the whole page. gofpdi signals malformed input by panicking,
// so the import is fenced and surfaced as ErrTemplateUnreadable.
func paintTemplate(pdf *fpdf.Fpdf, tpl *Template) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTemplateUnreadable, r)
		}
	}()

	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(tpl.Bytes))
	imported := imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	imp.UseImportedTemplate(pdf, imported, 0, 0, tpl.PageWidth, tpl.PageHeight)

	if pdfErr := pdf.Error(); pdfErr != nil {
		return fmt.Errorf("%w: %v", ErrTemplateUnreadable, pdfErr)
	}
	return nil
}

// drawPhoto scales the patient photo into the fixed photo box whose top
// left corner sits at the image field position, preserving aspect ratio
// and centering inside the box. Without a photo it draws a short note
// at the anchor so the gap is visible on the printed page.
func (c *Compositor) drawPhoto(pdf *fpdf.Fpdf, lay *layout.Layout, rec record.Patient, ph *photo.Photo, pageH float64) {
	pos, err := lay.Position(layout.ImageField)
	if err != nil {
		return
	}
	// Layout coordinates have their origin at the bottom left, fpdf
	// draws from the top left.
	top := pageH - pos.Y

	if ph == nil {
		note := "Image not found"
		if strings.TrimSpace(rec.ImagePath) == "" {
			note = "No image path"
		}
		pdf.SetFont(reportFont, "I", noteFontSize)
		pdf.SetTextColor(128, 128, 128)
		pdf.Text(pos.X, top+noteFontSize, note)
		return
	}

	w, h, offX, offY := ph.FitBox(layout.ImageBoxSide, layout.ImageBoxSide)
	if w <= 0 || h <= 0 {
		return
	}

	opts := fpdf.ImageOptions{ImageType: imageType(ph.Format)}
	pdf.RegisterImageOptionsReader("patient_photo", opts, bytes.NewReader(ph.Data))
	pdf.ImageOptions("patient_photo", pos.X+offX, top+offY, w, h, false, opts, 0, "")
}

// drawFields draws every text field that has a value, honoring the
// per-field font size and alignment. The position is the text baseline:
// left alignment anchors the start of the string, center its middle,
// right its end.
func (c *Compositor) drawFields(pdf *fpdf.Fpdf, lay *layout.Layout, rec record.Patient, pageH float64) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTextColor(0, 0, 0)

	for _, info := range layout.Fields() {
		if info.Kind != layout.KindText {
			continue
		}
		value := rec.Value(info.Name)
		if value == "" {
			continue
		}
		pos, err := lay.Position(info.Name)
		if err != nil {
			continue
		}

		pdf.SetFont(reportFont, "", pos.FontSize)
		text := tr(value)

		x := pos.X
		switch pos.Align {
		case layout.AlignCenter:
			x -= pdf.GetStringWidth(text) / 2
		case layout.AlignRight:
			x -= pdf.GetStringWidth(text)
		}
		pdf.Text(x, pageH-pos.Y, text)
	}
}

// drawStamp writes the generation timestamp in the bottom right corner.
func (c *Compositor) drawStamp(pdf *fpdf.Fpdf, pageW, pageH float64) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	stamp := "Generated: " + now().Format("2006-01-02 15:04:05")

	pdf.SetFont(reportFont, "", stampFontSize)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(pageW-stampMarginX-pdf.GetStringWidth(stamp), pageH-stampMarginY, stamp)
}

// imageType maps a Go image format name to the type tag fpdf expects.
func imageType(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "JPG"
	case "gif":
		return "GIF"
	default:
		return "PNG"
	}
}
