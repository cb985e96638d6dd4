// Package layout models the named field positions of one report template:
// which fields exist, where each one sits on the page, and how the set is
// persisted and reloaded per template.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// FieldKind distinguishes fields drawn as text from the photo anchor.
type FieldKind int

const (
	// KindText fields render the record's column value as a text run.
	KindText FieldKind = iota
	// KindImage fields anchor the patient photo bounding box.
	KindImage
)

// Alignment is the horizontal alignment of a text field.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Alignments returns all supported alignments.
func Alignments() []Alignment {
	return []Alignment{AlignLeft, AlignCenter, AlignRight}
}

// ParseAlignment parses a string into an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignLeft, fmt.Errorf("invalid alignment: %s (valid: left, center, right)", s)
	}
}

// DefaultFontSize is used whenever a field has no explicit size.
const DefaultFontSize = 12.0

// ImageBoxSide is the side of the square photo bounding box in points
// (1.8 inch). The box extends right and down from the image field anchor.
const ImageBoxSide = 129.6

const (
	// IdentityField names the column output filenames derive from.
	IdentityField = "name"
	// ImageField names the photo anchor field.
	ImageField = "image_path"
)

// Position is one field's placement on the page, in PDF points with the
// origin at the bottom-left corner.
type Position struct {
	X        float64   `yaml:"x"`
	Y        float64   `yaml:"y"`
	FontSize float64   `yaml:"font_size"`
	Align    Alignment `yaml:"align"`
}

// FieldInfo describes one recognized field.
type FieldInfo struct {
	Name    string
	Label   string
	Kind    FieldKind
	Default Position
}

// fieldOrder fixes the presentation and drawing order of the registry.
var fieldOrder = []string{
	"name",
	"age",
	"gender",
	"attendees",
	"date_of_diagnosis",
	"cancer_type",
	"cancer_stage",
	"cancer_grade",
	"image_path",
}

// fieldRegistry maps lowercase field names to their FieldInfo. Defaults are
// laid out for a Letter-sized page: a left column of text fields stepping
// down from (50, 700) and the photo box anchored top-right.
var fieldRegistry = map[string]FieldInfo{
	"name":              {Name: "name", Label: "Name", Kind: KindText, Default: Position{X: 50, Y: 700, FontSize: DefaultFontSize, Align: AlignLeft}},
	"age":               {Name: "age", Label: "Age", Kind: KindText, Default: Position{X: 50, Y: 675, FontSize: DefaultFontSize, Align: AlignLeft}},
	"gender":            {Name: "gender", Label: "Gender", Kind: KindText, Default: Position{X: 50, Y: 650, FontSize: DefaultFontSize, Align: AlignLeft}},
	"attendees":         {Name: "attendees", Label: "Attendees", Kind: KindText, Default: Position{X: 50, Y: 625, FontSize: DefaultFontSize, Align: AlignLeft}},
	"date_of_diagnosis": {Name: "date_of_diagnosis", Label: "Date of Diagnosis", Kind: KindText, Default: Position{X: 50, Y: 600, FontSize: DefaultFontSize, Align: AlignLeft}},
	"cancer_type":       {Name: "cancer_type", Label: "Cancer Type", Kind: KindText, Default: Position{X: 50, Y: 575, FontSize: DefaultFontSize, Align: AlignLeft}},
	"cancer_stage":      {Name: "cancer_stage", Label: "Cancer Stage", Kind: KindText, Default: Position{X: 50, Y: 550, FontSize: DefaultFontSize, Align: AlignLeft}},
	"cancer_grade":      {Name: "cancer_grade", Label: "Cancer Grade", Kind: KindText, Default: Position{X: 50, Y: 525, FontSize: DefaultFontSize, Align: AlignLeft}},
	"image_path":        {Name: "image_path", Label: "Patient Photo", Kind: KindImage, Default: Position{X: 410, Y: 720, FontSize: DefaultFontSize, Align: AlignLeft}},
}

// Fields returns the recognized fields in presentation order.
func Fields() []FieldInfo {
	out := make([]FieldInfo, 0, len(fieldOrder))
	for _, name := range fieldOrder {
		out = append(out, fieldRegistry[name])
	}
	return out
}

// FieldNames returns the recognized field names in presentation order.
func FieldNames() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// ErrUnknownField is returned when a field name is not in the recognized set.
var ErrUnknownField = errors.New("unknown field")

// FieldByName returns FieldInfo for a given field name.
// The lookup is case-insensitive. If the field is not found, an error is
// returned with a suggestion for the closest matching name (using
// Levenshtein distance).
func FieldByName(name string) (FieldInfo, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))

	if info, ok := fieldRegistry[normalized]; ok {
		return info, nil
	}

	if suggestion := findClosestFieldName(normalized); suggestion != "" {
		return FieldInfo{}, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownField, name, suggestion)
	}
	return FieldInfo{}, fmt.Errorf("%w %q", ErrUnknownField, name)
}

// findClosestFieldName finds the closest matching field name using
// Levenshtein distance. Returns empty string if no close match is found
// (distance > 5).
func findClosestFieldName(input string) string {
	const maxDistance = 5
	bestDistance := maxDistance + 1
	var bestMatch string

	for _, name := range fieldOrder {
		distance := levenshteinDistance(input, name)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = name
		}
	}

	if bestDistance <= maxDistance {
		return bestMatch
	}
	return ""
}

// levenshteinDistance calculates the minimum number of single-character
// edits (insertions, deletions, or substitutions) required to change one
// string into the other.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
