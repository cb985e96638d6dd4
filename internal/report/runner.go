package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/mrsinham/reportforge/internal/layout"
	"github.com/mrsinham/reportforge/internal/photo"
	"github.com/mrsinham/reportforge/internal/record"
)

// Status describes the outcome of one record.
type Status string

const (
	// StatusSuccess means the report was written with all content.
	StatusSuccess Status = "success"
	// StatusSkippedMissingImage means the report was written but the
	// patient photo was absent or unreadable.
	StatusSkippedMissingImage Status = "skipped_missing_image"
)

// failedStatus records a per-record failure together with its reason.
func failedStatus(err error) Status {
	return Status("failed: " + err.Error())
}

// Failed reports whether the record's report could not be written.
func (s Status) Failed() bool {
	return strings.HasPrefix(string(s), "failed: ")
}

// GeneratedReport is the outcome for a single input record.
type GeneratedReport struct {
	// Index is the zero-based position of the record in the input.
	Index int
	// Identity is the record's identity value, possibly empty.
	Identity string
	// OutputPath is the planned report file. On failure the file may
	// not exist.
	OutputPath string
	// Status is success, skipped_missing_image or failed: <reason>.
	Status Status
}

// RunOptions configures a batch run.
type RunOptions struct {
	// OutputDir receives the generated report files. Created if absent.
	OutputDir string
	// Workers is the number of parallel workers, 0 means NumCPU.
	Workers int
	// Quiet suppresses progress output.
	Quiet bool
	// ProgressCallback is invoked after each completed record.
	ProgressCallback func(current, total int)
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Total    int
	Written  int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Summarize counts report outcomes. Skipped reports are also written
// files, so Written includes them.
func Summarize(reports []GeneratedReport, duration time.Duration) Summary {
	s := Summary{Total: len(reports), Duration: duration}
	for _, r := range reports {
		switch {
		case r.Status.Failed():
			s.Failed++
		case r.Status == StatusSkippedMissingImage:
			s.Written++
			s.Skipped++
		default:
			s.Written++
		}
	}
	return s
}

// reportTask is the planned unit of work for one record.
type reportTask struct {
	index      int
	rec        record.Patient
	identity   string
	outputPath string
}

// Run generates one report per record, in parallel, and returns one
// GeneratedReport per processed record sorted by input order. Output
// file names are derived from the record identity during a sequential
// planning phase, so they are deterministic regardless of worker count.
//
// A record-level problem (unreadable photo, unwritable file) is
// reported in that record's Status and never aborts the run. Run only
// returns an error for run-level failures: an unusable template, an
// uncreatable output directory or a cancelled context. On cancellation
// the reports collected so far are returned alongside ctx.Err().
func Run(ctx context.Context, tpl *Template, lay *layout.Layout, records []record.Patient, opts RunOptions) ([]GeneratedReport, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = "reports"
	}

	// The template must paint before any record is worth processing.
	if err := probeTemplate(tpl); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	// Phase 1: plan tasks sequentially so collision suffixes follow
	// input order.
	names := newNamer()
	tasks := make([]reportTask, 0, len(records))
	for i, rec := range records {
		identity := rec.Identity()
		tasks = append(tasks, reportTask{
			index:      i,
			rec:        rec,
			identity:   identity,
			outputPath: filepath.Join(opts.OutputDir, names.next(identity)),
		})
	}

	if len(tasks) == 0 {
		return []GeneratedReport{}, nil
	}

	// Phase 2: process tasks in parallel.
	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(tasks) {
		numWorkers = len(tasks)
	}

	if !opts.Quiet {
		fmt.Printf("Generating %d reports with %d parallel workers...\n", len(tasks), numWorkers)
	}

	comp := NewCompositor()

	taskChan := make(chan reportTask, len(tasks))
	resultChan := make(chan GeneratedReport, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				// Stop between records once the run is cancelled.
				select {
				case <-ctx.Done():
					return
				default:
				}
				resultChan <- processTask(comp, tpl, lay, task)
			}
		}()
	}

	for _, task := range tasks {
		taskChan <- task
	}
	close(taskChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	reports := make([]GeneratedReport, 0, len(tasks))
	completed := 0
	for result := range resultChan {
		reports = append(reports, result)
		completed++
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(completed, len(tasks))
		}
		if !opts.Quiet && (completed%10 == 0 || completed == len(tasks)) {
			progress := float64(completed) / float64(len(tasks)) * 100
			fmt.Printf("  Progress: %d/%d (%.0f%%)\n", completed, len(tasks), progress)
		}
	}

	// Workers may finish out of order.
	sort.Slice(reports, func(i, j int) bool { return reports[i].Index < reports[j].Index })

	if err := ctx.Err(); err != nil {
		return reports, err
	}
	return reports, nil
}

// processTask composes and writes a single report. Photo problems
// degrade to a skipped status, everything else fails the record.
func processTask(comp *Compositor, tpl *Template, lay *layout.Layout, task reportTask) GeneratedReport {
	rep := GeneratedReport{
		Index:      task.index,
		Identity:   task.identity,
		OutputPath: task.outputPath,
		Status:     StatusSuccess,
	}

	ph, err := photo.Load(task.rec.ImagePath)
	if err != nil {
		ph = nil
		rep.Status = StatusSkippedMissingImage
	}

	data, err := comp.Compose(tpl, lay, task.rec, ph)
	if err != nil {
		rep.Status = failedStatus(err)
		return rep
	}

	if err := os.WriteFile(task.outputPath, data, 0644); err != nil {
		rep.Status = failedStatus(fmt.Errorf("write report: %w", err))
		return rep
	}
	return rep
}

// probeTemplate imports the template page into a throwaway document so
// an unusable template aborts the run before any record is processed.
func probeTemplate(tpl *Template) error {
	pdf := fpdf.New("P", "pt", "", "")
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: tpl.PageWidth, Ht: tpl.PageHeight})
	return paintTemplate(pdf, tpl)
}
