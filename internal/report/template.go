package report

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrTemplateUnreadable is returned when the template file is missing or
// cannot be parsed as a PDF. It is fatal: no report can be generated
// without a background page.
var ErrTemplateUnreadable = errors.New("template unreadable")

// Template is a parsed report background. The first page supplies the
// page geometry; Bytes holds the raw file so the compositor can import
// the page into each generated document without touching disk again.
type Template struct {
	// Path is the file the template was loaded from.
	Path string
	// ID identifies the template content for layout persistence. Two
	// templates with identical bytes share an ID, so a saved layout
	// follows the template even if the file is renamed.
	ID string
	// Bytes is the raw PDF.
	Bytes []byte
	// PageWidth and PageHeight are the first page dimensions in points.
	PageWidth  float64
	PageHeight float64
	// Pages is the page count of the template document.
	Pages int
}

// LoadTemplate reads and validates a PDF template. Any failure to read
// or parse the file wraps ErrTemplateUnreadable.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnreadable, err)
	}
	return ParseTemplate(path, data)
}

// ParseTemplate validates raw PDF bytes as a report template.
func ParseTemplate(path string, data []byte) (*Template, error) {
	conf := model.NewDefaultConfiguration()

	pages, err := pdfapi.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnreadable, err)
	}
	if pages < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrTemplateUnreadable)
	}

	dims, err := pdfapi.PageDims(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnreadable, err)
	}
	if len(dims) == 0 || dims[0].Width <= 0 || dims[0].Height <= 0 {
		return nil, fmt.Errorf("%w: first page has no usable media box", ErrTemplateUnreadable)
	}

	sum := sha256.Sum256(data)

	return &Template{
		Path:       path,
		ID:         hex.EncodeToString(sum[:])[:12],
		Bytes:      data,
		PageWidth:  dims[0].Width,
		PageHeight: dims[0].Height,
		Pages:      pages,
	}, nil
}

// Name returns the template file name without its extension, used in
// user-facing messages.
func (t *Template) Name() string {
	base := filepath.Base(t.Path)
	return base[:len(base)-len(filepath.Ext(base))]
}
