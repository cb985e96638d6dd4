package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrsinham/reportforge/internal/layout"
)

// ReadFile parses a patient CSV. Relative image paths in the file are
// resolved against the CSV's own directory.
func ReadFile(path string) ([]Patient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve csv path: %w", err)
	}
	return Read(f, filepath.Dir(abs))
}

// Read parses patient rows from r. baseDir anchors relative image paths;
// it should be the directory the data came from.
func Read(r io.Reader, baseDir string) ([]Patient, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		columns[i] = name
		seen[name] = true
	}

	var missing []string
	for _, required := range RequiredColumns() {
		if !seen[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv missing required columns: %s", strings.Join(missing, ", "))
	}

	var patients []Patient
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		values := make(map[string]string, len(columns))
		for i, v := range row {
			values[columns[i]] = strings.TrimSpace(v)
		}

		patients = append(patients, Patient{
			Values:    values,
			ImagePath: resolveImagePath(values[layout.ImageField], baseDir),
		})
	}

	return patients, nil
}

// resolveImagePath makes a row's image path absolute relative to the data
// source's directory. An empty value stays empty: the row simply has no
// image.
func resolveImagePath(raw, baseDir string) string {
	if raw == "" {
		return ""
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(baseDir, raw))
}
