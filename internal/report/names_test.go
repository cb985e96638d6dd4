package report

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		identity string
		want     string
	}{
		{"J. Doe", "J_Doe"},
		{"  Ann Lee  ", "Ann_Lee"},
		{"a b-c_d", "a_b-c_d"},
		{"O'Brien, Pat", "OBrien_Pat"},
		{"", "report"},
		{"...", "report"},
		{"名前", "report"},
		{"Ólafur", "lafur"},
	}
	for _, tt := range tests {
		if got := slugify(tt.identity); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.identity, got, tt.want)
		}
	}
}

func TestNamerCollisionSuffixes(t *testing.T) {
	n := newNamer()

	sequence := []struct {
		identity string
		want     string
	}{
		{"Ann Lee", "Ann_Lee_report.pdf"},
		{"Bob Ray", "Bob_Ray_report.pdf"},
		{"Ann Lee", "Ann_Lee_report_2.pdf"},
		{"Ann Lee", "Ann_Lee_report_3.pdf"},
		{"", "report_report.pdf"},
		{"", "report_report_2.pdf"},
	}
	for i, step := range sequence {
		if got := n.next(step.identity); got != step.want {
			t.Errorf("step %d: next(%q) = %q, want %q", i, step.identity, got, step.want)
		}
	}
}

func TestNamerCollidesAfterSlugging(t *testing.T) {
	n := newNamer()

	// Distinct identities that slug to the same stem still collide.
	if got := n.next("J. Doe"); got != "J_Doe_report.pdf" {
		t.Fatalf("first = %q", got)
	}
	if got := n.next("J? Doe"); got != "J_Doe_report_2.pdf" {
		t.Fatalf("second = %q", got)
	}
}
