package scaffold

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// frenchNameProbability is the probability (0.0-1.0) of generating a
// French patient name.
const frenchNameProbability = 0.20

var (
	englishFemaleFirstNames = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Susan", "Jessica",
		"Sarah", "Karen", "Emily", "Michelle", "Amanda", "Melissa", "Stephanie",
		"Rebecca", "Laura", "Emma", "Nicole", "Samantha", "Rachel", "Olivia",
		"Victoria", "Lauren", "Hannah", "Abigail", "Sophia", "Grace", "Charlotte",
	}

	englishMaleFirstNames = []string{
		"James", "John", "Robert", "Michael", "William", "David", "Richard",
		"Thomas", "Charles", "Daniel", "Matthew", "Mark", "Steven", "Andrew",
		"Joshua", "Kevin", "Brian", "George", "Edward", "Ryan", "Jacob",
		"Nicholas", "Jonathan", "Stephen", "Benjamin", "Samuel", "Patrick", "Nathan",
	}

	englishLastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Wilson", "Anderson", "Taylor", "Moore", "Jackson", "Martin",
		"Lee", "Thompson", "White", "Harris", "Clark", "Lewis", "Robinson",
		"Walker", "Young", "King", "Wright", "Scott", "Hill", "Green",
	}

	frenchFemaleFirstNames = []string{
		"Marie", "Nathalie", "Isabelle", "Sylvie", "Catherine", "Sophie",
		"Céline", "Julie", "Caroline", "Claire", "Camille", "Léa",
		"Chloé", "Charlotte", "Lucie", "Hélène", "Pauline", "Élodie",
	}

	frenchMaleFirstNames = []string{
		"Jean", "Pierre", "Michel", "Philippe", "Alain", "Jacques",
		"François", "Nicolas", "Olivier", "Laurent", "Julien", "Antoine",
		"Alexandre", "Thomas", "Lucas", "Hugo", "Louis", "Paul",
	}

	frenchLastNames = []string{
		"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Petit",
		"Durand", "Leroy", "Moreau", "Simon", "Laurent", "Michel",
		"Roux", "Fournier", "Girard", "Mercier", "Dupont", "Lambert",
	}

	cancerTypes = []string{
		"Breast Carcinoma", "Lung Adenocarcinoma", "Colorectal Carcinoma",
		"Prostate Adenocarcinoma", "Melanoma", "Non-Hodgkin Lymphoma",
		"Pancreatic Carcinoma", "Ovarian Carcinoma", "Renal Cell Carcinoma",
	}

	cancerStages = []string{"Stage I", "Stage II", "Stage III", "Stage IV"}

	cancerGrades = []string{"Grade 1", "Grade 2", "Grade 3"}

	attendeeNames = []string{
		"Dr. Moreau", "Dr. Lindqvist", "Dr. Osei", "Dr. Tanaka",
		"Dr. Alvarez", "Dr. Novak", "Dr. Haddad", "Dr. Keller",
	}
)

// SamplePatient is one generated row of the sample CSV. PhotoKind
// selects the photo file written for the row: "png", "dicom" or ""
// for a deliberately blank image path.
type SamplePatient struct {
	Name        string
	Age         int
	Gender      string
	Attendees   string
	Diagnosed   string
	CancerType  string
	CancerStage string
	CancerGrade string
	PhotoKind   string
}

// generatePatientName generates a realistic patient name. Names are
// 80% English and 20% French. sex should be "M" or "F", anything else
// is treated as "F".
func generatePatientName(sex string, rng *rand.Rand) string {
	useFrench := rng.Float64() < frenchNameProbability

	var first, last string
	if useFrench {
		if sex == "M" {
			first = frenchMaleFirstNames[rng.IntN(len(frenchMaleFirstNames))]
		} else {
			first = frenchFemaleFirstNames[rng.IntN(len(frenchFemaleFirstNames))]
		}
		last = frenchLastNames[rng.IntN(len(frenchLastNames))]
	} else {
		if sex == "M" {
			first = englishMaleFirstNames[rng.IntN(len(englishMaleFirstNames))]
		} else {
			first = englishFemaleFirstNames[rng.IntN(len(englishFemaleFirstNames))]
		}
		last = englishLastNames[rng.IntN(len(englishLastNames))]
	}
	return first + " " + last
}

// SamplePatients generates n deterministic sample rows. The same seed
// always produces the same rows. The last row has a blank image path
// so a fresh workspace demonstrates the skipped_missing_image outcome,
// and one row carries a DICOM photo instead of a PNG.
func SamplePatients(n int, seed uint64) []SamplePatient {
	rng := rand.New(rand.NewPCG(seed, seed))

	patients := make([]SamplePatient, 0, n)
	for i := 0; i < n; i++ {
		sex := "F"
		gender := "Female"
		if rng.IntN(2) == 0 {
			sex = "M"
			gender = "Male"
		}

		diagnosed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -rng.IntN(700)).
			Format("2006-01-02")

		attendees := attendeeNames[rng.IntN(len(attendeeNames))]
		if rng.IntN(2) == 0 {
			second := attendeeNames[rng.IntN(len(attendeeNames))]
			if second != attendees {
				attendees = attendees + "; " + second
			}
		}

		photoKind := "png"
		switch {
		case n > 1 && i == n-1:
			photoKind = ""
		case i == 1:
			photoKind = "dicom"
		}

		patients = append(patients, SamplePatient{
			Name:        generatePatientName(sex, rng),
			Age:         28 + rng.IntN(60),
			Gender:      gender,
			Attendees:   attendees,
			Diagnosed:   diagnosed,
			CancerType:  cancerTypes[rng.IntN(len(cancerTypes))],
			CancerStage: cancerStages[rng.IntN(len(cancerStages))],
			CancerGrade: cancerGrades[rng.IntN(len(cancerGrades))],
			PhotoKind:   photoKind,
		})
	}
	return patients
}

// photoSeed derives a per-row pixel seed so each sample photo differs.
func photoSeed(seed uint64, index int) uint64 {
	return seed*31 + uint64(index) + 1
}

// photoFileName names a sample photo file for row index i.
func photoFileName(i int, kind string) string {
	if kind == "dicom" {
		return fmt.Sprintf("patient_%02d.dcm", i+1)
	}
	return fmt.Sprintf("patient_%02d.png", i+1)
}
