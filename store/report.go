package store

import (
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/schema"
)

// ReportParams is one report submission. Symptoms may be catalog ids
// or free-text names; unknown names are added to the catalog.
type ReportParams struct {
	DiseaseID      uuid.UUID    `json:"disease"`
	Symptoms       []string     `json:"symptoms"`
	TestResult     string       `json:"test_result"`
	DataStarted    *schema.Date `json:"data_started"`
	TestedDate     *schema.Date `json:"tested_date"`
	IsTested       bool         `json:"is_tested"`
	IsVaccinated   bool         `json:"is_vaccinated"`
	VaccinatedDate *schema.Date `json:"vaccinated_date"`
	Manufacturer   string       `json:"manufacturer"`
	Dosage         string       `json:"dosage"`
	Lot            string       `json:"lot"`
	IsReminded     bool         `json:"is_reminded"`
	CurrentStatus  string       `json:"current_status"`
	Port           string       `json:"port"`
}

// GetReport returns the subject's single report, fully loaded.
func (s *TraceStore) GetReport(subjectID uuid.UUID) (*schema.Report, error) {
	var report schema.Report
	err := s.ormDB.
		Preload("Symptoms").
		Preload("Testing").
		Preload("Vaccine").
		Where("subject_id = ?", subjectID).First(&report).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// getReport is the bare in-transaction lookup used by the propagation
// path.
func getReport(tx *gorm.DB, subjectID uuid.UUID) (*schema.Report, error) {
	var report schema.Report
	if err := tx.Where("subject_id = ?", subjectID).First(&report).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// SubmitReport creates or mutates the subject's singleton report and
// runs the full lifecycle transition: every exposure previously
// attributed to this subject is retracted, then rebuilt if the new
// state is Positive with an onset date. The whole pass is one
// transaction; notification of newly at-risk counterparts happens
// after commit, driven by the returned result.
func (s *TraceStore) SubmitReport(subjectID uuid.UUID, params ReportParams) (*schema.Report, *exposure.Result, error) {
	if params.TestResult != schema.TestPositive && params.TestResult != schema.TestNegative {
		return nil, nil, ErrUnknownTestResult
	}
	if _, err := s.GetSubject(subjectID); err != nil {
		return nil, nil, err
	}

	tx := s.ormDB.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	report, err := getReportForUpdate(tx, subjectID)
	if err != nil && err != ErrReportNotFound {
		tx.Rollback()
		return nil, nil, err
	}
	if report == nil {
		report = &schema.Report{
			ID:        uuid.New(),
			SubjectID: subjectID,
		}
	}

	report.DiseaseID = params.DiseaseID
	report.TestResult = params.TestResult
	report.DataStarted = params.DataStarted
	report.TestedDate = params.TestedDate
	report.IsTested = params.IsTested
	report.IsVaccinated = params.IsVaccinated
	report.CurrentStatus = params.CurrentStatus
	report.Port = params.Port

	if err := s.attachTesting(tx, report, params); err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := s.attachVaccine(tx, report, params); err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Save(report).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := s.replaceSymptoms(tx, report, params.Symptoms); err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	result := exposure.NewResult()

	// Tear down whatever the previous state propagated, then rebuild.
	// Resubmitting an identical positive report converges to the same
	// links and counters.
	if err := unlinkBySourceSubject(tx, result, subjectID); err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := s.clearOwnEvents(tx, subjectID); err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if report.Positive() && report.DataStarted != nil {
		if err := s.applyPositive(tx, result, subjectID, *report.DataStarted); err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	}

	if _, _, err := recomputeRisk(tx, subjectID); err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	full, err := s.GetReport(subjectID)
	if err != nil {
		return nil, nil, err
	}
	return full, result, nil
}

// getReportForUpdate locks the singleton report row for the lifecycle
// transition. Last write wins between concurrent submissions; the lock
// only keeps one transition's propagation from interleaving with
// another's.
func getReportForUpdate(tx *gorm.DB, subjectID uuid.UUID) (*schema.Report, error) {
	var report schema.Report
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where("subject_id = ?", subjectID).First(&report).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (s *TraceStore) attachTesting(tx *gorm.DB, report *schema.Report, params ReportParams) error {
	if !params.IsTested || params.TestedDate == nil {
		return nil
	}

	if report.TestingID != nil {
		return tx.Model(schema.Testing{}).Where("id = ?", *report.TestingID).
			Updates(map[string]interface{}{
				"tested_date": *params.TestedDate,
				"test_result": params.TestResult,
			}).Error
	}

	testing := schema.Testing{
		ID:         uuid.New(),
		SubjectID:  report.SubjectID,
		TestedDate: *params.TestedDate,
		TestResult: params.TestResult,
		IsReminded: params.IsReminded,
	}
	if err := tx.Create(&testing).Error; err != nil {
		return err
	}
	report.TestingID = &testing.ID
	return nil
}

func (s *TraceStore) attachVaccine(tx *gorm.DB, report *schema.Report, params ReportParams) error {
	if !params.IsVaccinated || params.VaccinatedDate == nil {
		return nil
	}

	if report.VaccineID != nil {
		return tx.Model(schema.Vaccine{}).Where("id = ?", *report.VaccineID).
			Updates(map[string]interface{}{
				"vaccinated_date": *params.VaccinatedDate,
				"manufacturer":    params.Manufacturer,
				"dosage":          params.Dosage,
				"lot":             params.Lot,
				"is_reminded":     params.IsReminded,
			}).Error
	}

	vaccine := schema.Vaccine{
		ID:             uuid.New(),
		SubjectID:      report.SubjectID,
		VaccinatedDate: *params.VaccinatedDate,
		Manufacturer:   params.Manufacturer,
		Dosage:         params.Dosage,
		Lot:            params.Lot,
		IsReminded:     params.IsReminded,
	}
	if err := tx.Create(&vaccine).Error; err != nil {
		return err
	}
	report.VaccineID = &vaccine.ID
	return nil
}

// replaceSymptoms resolves ids and names to catalog rows, creating
// unknown names on the fly, and swaps the report's symptom set.
func (s *TraceStore) replaceSymptoms(tx *gorm.DB, report *schema.Report, symptoms []string) error {
	resolved := make([]schema.Symptom, 0, len(symptoms))
	for _, entry := range symptoms {
		if entry == "" {
			continue
		}

		var symptom schema.Symptom
		if id, err := uuid.Parse(entry); err == nil {
			if err := tx.Where("id = ?", id).First(&symptom).Error; err != nil {
				return err
			}
		} else {
			err := tx.Where("name = ?", entry).First(&symptom).Error
			if gorm.IsRecordNotFoundError(err) {
				symptom = schema.Symptom{ID: uuid.New(), Name: entry}
				err = tx.Create(&symptom).Error
			}
			if err != nil {
				return err
			}
		}
		resolved = append(resolved, symptom)
	}

	return tx.Model(report).Association("Symptoms").Replace(resolved).Error
}
