package scaffold

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/mrsinham/reportforge/internal/layout"
)

// Default sample page size, US Letter in points.
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
)

// Template renders the sample template PDF for the given page size.
// Labels sit on the same baseline as the default field positions and
// the photo box outline matches the compositor's photo box exactly.
func Template(pageW, pageH float64) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetTitle("Patient Diagnosis Report", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: pageW, Ht: pageH})

	title := "PATIENT DIAGNOSIS REPORT"
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text((pageW-pdf.GetStringWidth(title))/2, 60, title)

	pdf.SetDrawColor(40, 40, 40)
	pdf.SetLineWidth(1.2)
	pdf.Line(40, 78, pageW-40, 78)

	// Field labels end a small gap left of where the value will be
	// drawn, sharing its baseline.
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	for _, info := range layout.Fields() {
		if info.Kind != layout.KindText {
			continue
		}
		label := info.Label + ":"
		baseline := pageH - info.Default.Y
		pdf.Text(info.Default.X-pdf.GetStringWidth(label)-8, baseline, label)
	}

	imgInfo, err := layout.FieldByName(layout.ImageField)
	if err != nil {
		return nil, err
	}
	boxTop := pageH - imgInfo.Default.Y
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.8)
	pdf.Rect(imgInfo.Default.X, boxTop, layout.ImageBoxSide, layout.ImageBoxSide, "D")

	caption := imgInfo.Label
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(150, 150, 150)
	pdf.Text(imgInfo.Default.X+(layout.ImageBoxSide-pdf.GetStringWidth(caption))/2, boxTop+layout.ImageBoxSide/2, caption)

	footer := "Oncology Department - Confidential"
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.Text((pageW-pdf.GetStringWidth(footer))/2, pageH-30, footer)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render sample template: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render sample template: %w", err)
	}
	return buf.Bytes(), nil
}
