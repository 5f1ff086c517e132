package schema

import (
	"time"

	"github.com/google/uuid"
)

// Test results a subject may self-report.
const (
	TestNegative = "Negative"
	TestPositive = "Positive"
)

// Report is the single evolving self-report of a subject. There is at
// most one row per subject; resubmissions mutate it in place. The last
// write wins on concurrent submissions, which is acceptable for
// self-reported status and deliberately not guarded by optimistic
// locking.
type Report struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	SubjectID     uuid.UUID  `json:"subject_id" gorm:"type:uuid;unique_index"`
	DiseaseID     uuid.UUID  `json:"disease_id" gorm:"type:uuid"`
	TestResult    string     `json:"test_result" gorm:"default:'Negative'"`
	DataStarted   *Date      `json:"data_started" gorm:"type:date"`
	TestedDate    *Date      `json:"tested_date" gorm:"type:date"`
	IsTested      bool       `json:"is_tested"`
	IsVaccinated  bool       `json:"is_vaccinated"`
	CurrentStatus string     `json:"current_status"`
	Port          string     `json:"port"`
	Symptoms      []Symptom  `json:"symptoms" gorm:"many2many:report_symptoms"`
	TestingID     *uuid.UUID `json:"-" gorm:"type:uuid"`
	Testing       *Testing   `json:"testing,omitempty" gorm:"foreignkey:TestingID"`
	VaccineID     *uuid.UUID `json:"-" gorm:"type:uuid"`
	Vaccine       *Vaccine   `json:"vaccine,omitempty" gorm:"foreignkey:VaccineID"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Positive reports whether the report flags the subject as infectious.
func (r *Report) Positive() bool {
	return r != nil && r.TestResult == TestPositive
}

// Testing is a lab test record referenced by a report.
type Testing struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	SubjectID  uuid.UUID `json:"subject_id" gorm:"type:uuid"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	TestedDate Date      `json:"tested_date" gorm:"type:date"`
	TestResult string    `json:"test_result" gorm:"default:'Negative'"`
	IsReminded bool      `json:"is_reminded"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Vaccine is a vaccination record referenced by a report.
type Vaccine struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	SubjectID      uuid.UUID `json:"subject_id" gorm:"type:uuid"`
	VaccinatedDate Date      `json:"vaccinated_date" gorm:"type:date"`
	Manufacturer   string    `json:"manufacturer"`
	Dosage         string    `json:"dosage"`
	Lot            string    `json:"lot"`
	IsReminded     bool      `json:"is_reminded"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
