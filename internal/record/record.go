// Package record models the rows of patient input data that drive report
// generation, and reads them from CSV.
package record

import (
	"strings"

	"github.com/mrsinham/reportforge/internal/layout"
)

// Patient is one row of input data. Values holds every column of the source
// row by (normalized) column name; ImagePath is the image_path column
// resolved to an absolute path against the source's own location, or empty
// when the row has none. A Patient is immutable once read.
type Patient struct {
	Values    map[string]string
	ImagePath string
}

// Value returns a column's literal string value, "" when absent.
func (p Patient) Value(name string) string {
	return p.Values[strings.ToLower(strings.TrimSpace(name))]
}

// Identity returns the value of the identity column, which output filenames
// derive from.
func (p Patient) Identity() string {
	return strings.TrimSpace(p.Value(layout.IdentityField))
}

// RequiredColumns returns the column set every input source must provide:
// the recognized field names.
func RequiredColumns() []string {
	return layout.FieldNames()
}
