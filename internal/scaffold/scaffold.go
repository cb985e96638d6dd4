// Package scaffold writes a ready-to-run sample workspace: a report
// template, a patient CSV and matching photos. It exists so `reportforge
// init` produces something generate can consume immediately.
package scaffold

import (
	"encoding/csv"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mrsinham/reportforge/internal/layout"
)

// Options configures Write.
type Options struct {
	// Patients is the number of sample CSV rows, 0 means 4.
	Patients int
	// Seed makes the sample data reproducible. 0 derives the seed from
	// the target directory name, so the same directory scaffolds the
	// same patients.
	Seed uint64
	// PageWidth and PageHeight size the sample template, 0 means Letter.
	PageWidth  float64
	PageHeight float64
	// Force overwrites files from a previous init.
	Force bool
}

// Files lists what Write created.
type Files struct {
	TemplatePath string
	CSVPath      string
	PhotoPaths   []string
}

// Write scaffolds a sample workspace under dir. It refuses to touch an
// already-initialized directory unless opts.Force is set.
func Write(dir string, opts Options) (*Files, error) {
	if opts.Patients <= 0 {
		opts.Patients = 4
	}
	if opts.Seed == 0 {
		h := fnv.New64a()
		_, _ = h.Write([]byte(filepath.Base(dir))) // hash.Write never returns an error
		opts.Seed = h.Sum64()
	}
	if opts.PageWidth <= 0 || opts.PageHeight <= 0 {
		opts.PageWidth = DefaultPageWidth
		opts.PageHeight = DefaultPageHeight
	}

	files := &Files{
		TemplatePath: filepath.Join(dir, "template.pdf"),
		CSVPath:      filepath.Join(dir, "patients.csv"),
	}

	if !opts.Force {
		if _, err := os.Stat(files.TemplatePath); err == nil {
			return nil, fmt.Errorf("%s already exists (use --force to overwrite)", files.TemplatePath)
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, "photos"), 0755); err != nil {
		return nil, fmt.Errorf("create photos directory: %w", err)
	}

	tpl, err := Template(opts.PageWidth, opts.PageHeight)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(files.TemplatePath, tpl, 0644); err != nil {
		return nil, fmt.Errorf("write sample template: %w", err)
	}

	patients := SamplePatients(opts.Patients, opts.Seed)

	for i, p := range patients {
		if p.PhotoKind == "" {
			continue
		}
		name := photoFileName(i, p.PhotoKind)

		var data []byte
		if p.PhotoKind == "dicom" {
			data, err = PhotoDICOM(photoSeed(opts.Seed, i), 128, 128)
		} else {
			data, err = PhotoPNG(photoSeed(opts.Seed, i), 240, 300)
		}
		if err != nil {
			return nil, err
		}

		path := filepath.Join(dir, "photos", name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write sample photo: %w", err)
		}
		files.PhotoPaths = append(files.PhotoPaths, path)
	}

	if err := writeCSV(files.CSVPath, patients); err != nil {
		return nil, err
	}
	return files, nil
}

// writeCSV writes the sample patient rows with the full recognized
// column set. Photo paths are relative to the CSV so the workspace can
// be moved around.
func writeCSV(path string, patients []SamplePatient) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write sample csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(layout.FieldNames()); err != nil {
		return fmt.Errorf("write sample csv: %w", err)
	}

	for i, p := range patients {
		imagePath := ""
		if p.PhotoKind != "" {
			imagePath = filepath.ToSlash(filepath.Join("photos", photoFileName(i, p.PhotoKind)))
		}
		row := []string{
			p.Name,
			strconv.Itoa(p.Age),
			p.Gender,
			p.Attendees,
			p.Diagnosed,
			p.CancerType,
			p.CancerStage,
			p.CancerGrade,
			imagePath,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write sample csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write sample csv: %w", err)
	}
	return f.Close()
}
