package record

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleHeader = "name,age,gender,attendees,date_of_diagnosis,cancer_type,cancer_stage,cancer_grade,image_path"

func TestRead_ResolvesRelativeImagePaths(t *testing.T) {
	data := sampleHeader + "\n" +
		"J. Doe,51,F,Dr. Smith,2024-03-01,Lung,II,2,photos/doe.png\n"

	patients, err := Read(strings.NewReader(data), "/data/batch1")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(patients) != 1 {
		t.Fatalf("got %d patients, want 1", len(patients))
	}

	p := patients[0]
	want := filepath.Join("/data/batch1", "photos", "doe.png")
	if p.ImagePath != want {
		t.Errorf("ImagePath = %s, want %s", p.ImagePath, want)
	}
	if p.Identity() != "J. Doe" {
		t.Errorf("Identity() = %q, want %q", p.Identity(), "J. Doe")
	}
	if p.Value("cancer_stage") != "II" {
		t.Errorf("cancer_stage = %q, want II", p.Value("cancer_stage"))
	}
}

func TestRead_AbsoluteImagePathKept(t *testing.T) {
	data := sampleHeader + "\n" +
		"A,1,M,B,2020-01-01,X,I,1,/abs/photo.jpg\n"

	patients, err := Read(strings.NewReader(data), "/elsewhere")
	if err != nil {
		t.Fatal(err)
	}
	if patients[0].ImagePath != "/abs/photo.jpg" {
		t.Errorf("ImagePath = %s, want /abs/photo.jpg", patients[0].ImagePath)
	}
}

func TestRead_EmptyImagePathStaysEmpty(t *testing.T) {
	data := sampleHeader + "\n" +
		"A,1,M,B,2020-01-01,X,I,1,\n"

	patients, err := Read(strings.NewReader(data), "/data")
	if err != nil {
		t.Fatal(err)
	}
	if patients[0].ImagePath != "" {
		t.Errorf("ImagePath = %q, want empty", patients[0].ImagePath)
	}
}

func TestRead_MissingColumnsNamed(t *testing.T) {
	data := "name,age\nJ,1\n"

	_, err := Read(strings.NewReader(data), "/data")
	if err == nil {
		t.Fatal("Read should fail when required columns are missing")
	}
	for _, col := range []string{"gender", "cancer_type", "image_path"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error should name missing column %s, got: %v", col, err)
		}
	}
}

func TestRead_HeaderCaseInsensitive(t *testing.T) {
	data := "Name,AGE,Gender,Attendees,Date_Of_Diagnosis,Cancer_Type,Cancer_Stage,Cancer_Grade,Image_Path\n" +
		"J,1,M,B,2020-01-01,X,I,1,\n"

	patients, err := Read(strings.NewReader(data), "/data")
	if err != nil {
		t.Fatalf("Read with capitalized header returned error: %v", err)
	}
	if patients[0].Value("name") != "J" {
		t.Errorf("name = %q, want J", patients[0].Value("name"))
	}
}

func TestRead_HeaderOnlyYieldsNoPatients(t *testing.T) {
	patients, err := Read(strings.NewReader(sampleHeader+"\n"), "/data")
	if err != nil {
		t.Fatalf("header-only csv should not error: %v", err)
	}
	if len(patients) != 0 {
		t.Errorf("got %d patients, want 0", len(patients))
	}
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""), "/data")
	if err == nil {
		t.Error("empty csv should return an error")
	}
}

func TestRead_ValuesKeptVerbatim(t *testing.T) {
	// Numeric and date values stay literal strings, no reformatting.
	data := sampleHeader + "\n" +
		"J,0051,M,B,01/02/2024,X,I,1,\n"

	patients, err := Read(strings.NewReader(data), "/data")
	if err != nil {
		t.Fatal(err)
	}
	if got := patients[0].Value("age"); got != "0051" {
		t.Errorf("age = %q, want literal 0051", got)
	}
	if got := patients[0].Value("date_of_diagnosis"); got != "01/02/2024" {
		t.Errorf("date_of_diagnosis = %q, want literal 01/02/2024", got)
	}
}

func TestReadFile_ResolvesAgainstCSVDir(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "patients.csv")
	data := sampleHeader + "\n" +
		"J,1,M,B,2020-01-01,X,I,1,img/j.png\n"
	if err := os.WriteFile(csvPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	patients, err := ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "img", "j.png")
	if patients[0].ImagePath != want {
		t.Errorf("ImagePath = %s, want %s", patients[0].ImagePath, want)
	}
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Error("ReadFile on a missing file should return an error")
	}
}
