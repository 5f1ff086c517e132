package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/schema"
)

// SubjectParams carries the writable subject attributes.
type SubjectParams struct {
	Name         string `json:"name"`
	PhoneNumber  string `json:"phone_number"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// CreateSubject registers a person into the tracing system. The phone
// number is normalized before storing since it is the contact-channel
// join key.
func (s *TraceStore) CreateSubject(params SubjectParams) (*schema.Subject, error) {
	subject := schema.Subject{
		ID:             uuid.New(),
		Name:           params.Name,
		IsSubscribed:   params.IsSubscribed,
		LastActiveTime: time.Now().UTC(),
	}
	if phone := exposure.NormalizePhone(params.PhoneNumber); phone != "" {
		subject.PhoneNumber = &phone
	}

	if err := s.ormDB.Create(&subject).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrPhoneNumberTaken
		}
		return nil, err
	}

	return &subject, nil
}

// GetSubject returns a subject of a given id
func (s *TraceStore) GetSubject(id uuid.UUID) (*schema.Subject, error) {
	var subject schema.Subject
	if err := s.ormDB.Where("id = ?", id).First(&subject).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return &subject, nil
}

// GetSubjectByPhone resolves a phone number to a registered subject. A
// number that resolves to nobody is not an error for callers in the
// propagation path; they translate ErrSubjectNotFound into "record the
// event, skip propagation".
func (s *TraceStore) GetSubjectByPhone(phone string) (*schema.Subject, error) {
	return findSubjectByPhone(s.ormDB, phone)
}

func findSubjectByPhone(db *gorm.DB, phone string) (*schema.Subject, error) {
	normalized := exposure.NormalizePhone(phone)
	if normalized == "" {
		return nil, ErrSubjectNotFound
	}

	var subject schema.Subject
	if err := db.Where("phone_number = ?", normalized).First(&subject).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return &subject, nil
}

// UpdateSubject updates profile fields; exposure state is never
// writable from outside.
func (s *TraceStore) UpdateSubject(id uuid.UUID, params SubjectParams) (*schema.Subject, error) {
	subject, err := s.GetSubject(id)
	if err != nil {
		return nil, err
	}

	subject.Name = params.Name
	subject.IsSubscribed = params.IsSubscribed
	if phone := exposure.NormalizePhone(params.PhoneNumber); phone != "" {
		subject.PhoneNumber = &phone
	} else {
		subject.PhoneNumber = nil
	}
	subject.LastActiveTime = time.Now().UTC()

	if err := s.ormDB.Save(subject).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrPhoneNumberTaken
		}
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes a subject and everything they own permanently.
// Exposure the subject caused is retracted link by link first, so every
// affected counterpart's counters, flags and risk settle instead of
// pointing at links that no longer exist.
func (s *TraceStore) DeleteSubject(id uuid.UUID) (*exposure.Result, error) {
	tx := s.ormDB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	result := exposure.NewResult()

	var caused []schema.ExposureLink
	if err := tx.Where("counterpart_id = ?", id).Find(&caused).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, link := range caused {
		if err := unlinkAndCount(tx, result, link); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	for _, m := range []interface{}{
		schema.ExposureLink{},
		schema.ContactEvent{},
		schema.FlightEvent{},
		schema.Report{},
		schema.Testing{},
		schema.Vaccine{},
	} {
		if err := tx.Delete(m, "subject_id = ?", id).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Exec(`DELETE FROM location_taggings WHERE location_event_id IN
		(SELECT id FROM location_events WHERE subject_id = ?)`, id).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Delete(schema.LocationEvent{}, "subject_id = ?", id).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Delete(schema.Subject{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return result, nil
}

// adjustExposure moves one channel counter, clamped at zero. The clamp
// is done in SQL so concurrent writers cannot drive it negative.
func adjustExposure(tx *gorm.DB, id uuid.UUID, channel schema.ExposureChannel, delta int) error {
	column := channel.CounterColumn()
	return tx.Model(schema.Subject{}).Where("id = ?", id).
		Update(column, gorm.Expr("GREATEST("+column+" + ?, 0)", delta)).Error
}

// setRiskLevel flips the risk flag only when it actually changes, so
// callers can tell a fresh flip (notify) from a repeat (no-op).
func setRiskLevel(tx *gorm.DB, id uuid.UUID, risky bool) (bool, error) {
	result := tx.Model(schema.Subject{}).
		Where("id = ? AND risk_level <> ?", id, risky).
		Update("risk_level", risky)
	return result.RowsAffected > 0, result.Error
}

// recomputeRisk rederives the risk flag from what is on the ground: a
// positive own report or any non-zero exposure counter.
func recomputeRisk(tx *gorm.DB, id uuid.UUID) (atRisk bool, changed bool, err error) {
	var subject schema.Subject
	if err := tx.Where("id = ?", id).First(&subject).Error; err != nil {
		return false, false, err
	}

	report, err := getReport(tx, id)
	if err != nil && err != ErrReportNotFound {
		return false, false, err
	}

	atRisk = report.Positive() || subject.Exposed()
	changed, err = setRiskLevel(tx, id, atRisk)
	return atRisk, changed, err
}
