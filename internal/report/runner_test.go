package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mrsinham/reportforge/internal/layout"
	"github.com/mrsinham/reportforge/internal/record"
	"github.com/mrsinham/reportforge/internal/scaffold"
)

func writeTestPhoto(t *testing.T, dir, name string, seed uint64) string {
	t.Helper()
	data, err := scaffold.PhotoPNG(seed, 120, 150)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func patientWithPhoto(name, imagePath string) record.Patient {
	return record.Patient{
		Values:    map[string]string{"name": name, "image_path": imagePath},
		ImagePath: imagePath,
	}
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("report not written: %v", err)
		return
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("%s does not look like a PDF", path)
	}
}

func TestRunIsolatesRecordProblems(t *testing.T) {
	dir := t.TempDir()
	tpl := testTemplate(t)
	lay := testLayout(t, tpl)

	records := []record.Patient{
		patientWithPhoto("Alice Smith", writeTestPhoto(t, dir, "alice.png", 1)),
		patientWithPhoto("Bob Jones", filepath.Join(dir, "missing.png")),
		patientWithPhoto("Cara Lee", writeTestPhoto(t, dir, "cara.png", 2)),
	}

	out := filepath.Join(dir, "reports")
	reports, err := Run(context.Background(), tpl, lay, records, RunOptions{
		OutputDir: out,
		Workers:   2,
		Quiet:     true,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("reports = %d, want 3", len(reports))
	}

	wantStatus := []Status{StatusSuccess, StatusSkippedMissingImage, StatusSuccess}
	wantFile := []string{"Alice_Smith_report.pdf", "Bob_Jones_report.pdf", "Cara_Lee_report.pdf"}
	for i, rep := range reports {
		if rep.Index != i {
			t.Errorf("report %d has index %d, want input order", i, rep.Index)
		}
		if rep.Status != wantStatus[i] {
			t.Errorf("report %d status = %q, want %q", i, rep.Status, wantStatus[i])
		}
		if filepath.Base(rep.OutputPath) != wantFile[i] {
			t.Errorf("report %d file = %q, want %q", i, filepath.Base(rep.OutputPath), wantFile[i])
		}
		assertPDF(t, rep.OutputPath)
	}
}

func TestRunCollisionSuffixesFollowInputOrder(t *testing.T) {
	tpl := testTemplate(t)
	lay := testLayout(t, tpl)

	records := []record.Patient{
		namedPatient("Ann Lee"),
		namedPatient("Ann Lee"),
		namedPatient("J. Doe"),
		namedPatient("Ann Lee"),
	}

	out := filepath.Join(t.TempDir(), "reports")
	reports, err := Run(context.Background(), tpl, lay, records, RunOptions{
		OutputDir: out,
		Workers:   4,
		Quiet:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"Ann_Lee_report.pdf",
		"Ann_Lee_report_2.pdf",
		"J_Doe_report.pdf",
		"Ann_Lee_report_3.pdf",
	}
	for i, rep := range reports {
		if filepath.Base(rep.OutputPath) != want[i] {
			t.Errorf("report %d file = %q, want %q", i, filepath.Base(rep.OutputPath), want[i])
		}
		assertPDF(t, rep.OutputPath)
	}
}

func TestRunEmptyInput(t *testing.T) {
	tpl := testTemplate(t)
	lay := testLayout(t, tpl)

	reports, err := Run(context.Background(), tpl, lay, nil, RunOptions{
		OutputDir: filepath.Join(t.TempDir(), "reports"),
		Quiet:     true,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("reports = %d, want 0", len(reports))
	}
}

func TestRunUnreadableTemplateAbortsBeforeRecords(t *testing.T) {
	tpl := &Template{
		Path:       "broken.pdf",
		ID:         "deadbeef0000",
		Bytes:      []byte("junk"),
		PageWidth:  612,
		PageHeight: 792,
	}
	lay := layout.New(tpl.ID, tpl.Path, 612, 792)
	out := filepath.Join(t.TempDir(), "reports")

	reports, err := Run(context.Background(), tpl, lay, []record.Patient{namedPatient("J. Doe")}, RunOptions{
		OutputDir: out,
		Quiet:     true,
	})
	if err == nil {
		t.Fatal("Run should fail on an unreadable template")
	}
	if len(reports) != 0 {
		t.Errorf("reports = %d, want 0", len(reports))
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output directory should not be created for an unreadable template")
	}
}

func TestRunCancelledContext(t *testing.T) {
	tpl := testTemplate(t)
	lay := testLayout(t, tpl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []record.Patient{namedPatient("A"), namedPatient("B"), namedPatient("C")}
	reports, err := Run(ctx, tpl, lay, records, RunOptions{
		OutputDir: filepath.Join(t.TempDir(), "reports"),
		Workers:   1,
		Quiet:     true,
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(reports) != 0 {
		t.Errorf("reports = %d, want none after immediate cancellation", len(reports))
	}
}

func TestRunRecordWriteFailure(t *testing.T) {
	tpl := testTemplate(t)
	lay := testLayout(t, tpl)

	out := filepath.Join(t.TempDir(), "reports")
	// A directory squatting on the planned file name fails that record
	// without touching its neighbors.
	if err := os.MkdirAll(filepath.Join(out, "Ann_Lee_report.pdf"), 0755); err != nil {
		t.Fatal(err)
	}

	records := []record.Patient{namedPatient("Ann Lee"), namedPatient("J. Doe")}
	reports, err := Run(context.Background(), tpl, lay, records, RunOptions{
		OutputDir: out,
		Quiet:     true,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !reports[0].Status.Failed() {
		t.Errorf("squatted record status = %q, want failure", reports[0].Status)
	}
	if !strings.HasPrefix(string(reports[0].Status), "failed: ") {
		t.Errorf("failure status should carry a reason, got %q", reports[0].Status)
	}
	if reports[1].Status != StatusSkippedMissingImage {
		t.Errorf("neighbor status = %q, want %q", reports[1].Status, StatusSkippedMissingImage)
	}
	assertPDF(t, reports[1].OutputPath)
}

func TestRunManyWorkersKeepInputOrder(t *testing.T) {
	tpl := testTemplate(t)
	lay := testLayout(t, tpl)

	var records []record.Patient
	for i := 0; i < 12; i++ {
		records = append(records, namedPatient(fmt.Sprintf("Patient %02d", i)))
	}

	var calls int
	reports, err := Run(context.Background(), tpl, lay, records, RunOptions{
		OutputDir:        filepath.Join(t.TempDir(), "reports"),
		Workers:          4,
		Quiet:            true,
		ProgressCallback: func(current, total int) { calls++ },
	})
	if err != nil {
		t.Fatal(err)
	}

	for i, rep := range reports {
		if rep.Index != i {
			t.Fatalf("reports out of order at %d: index %d", i, rep.Index)
		}
		want := fmt.Sprintf("Patient_%02d_report.pdf", i)
		if filepath.Base(rep.OutputPath) != want {
			t.Errorf("report %d file = %q, want %q", i, filepath.Base(rep.OutputPath), want)
		}
	}
	if calls != len(records) {
		t.Errorf("progress callback ran %d times, want %d", calls, len(records))
	}
}

func TestSummarize(t *testing.T) {
	reports := []GeneratedReport{
		{Status: StatusSuccess},
		{Status: StatusSkippedMissingImage},
		{Status: failedStatus(fmt.Errorf("boom"))},
		{Status: StatusSuccess},
	}

	s := Summarize(reports, 2*time.Second)
	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.Written != 3 {
		t.Errorf("Written = %d, want 3", s.Written)
	}
	if s.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", s.Skipped)
	}
	if s.Failed != 1 {
		t.Errorf("Failed = %d, want 1", s.Failed)
	}
	if s.Duration != 2*time.Second {
		t.Errorf("Duration = %v, want 2s", s.Duration)
	}
}

func TestStatusFailed(t *testing.T) {
	if StatusSuccess.Failed() || StatusSkippedMissingImage.Failed() {
		t.Error("success and skipped are not failures")
	}
	st := failedStatus(fmt.Errorf("image exploded"))
	if !st.Failed() {
		t.Error("failed status should report Failed")
	}
	if st != "failed: image exploded" {
		t.Errorf("status = %q", st)
	}
}
