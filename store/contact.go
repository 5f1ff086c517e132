package store

import (
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/schema"
)

// ContactParams is one reported meeting with another person.
type ContactParams struct {
	Name          string      `json:"name"`
	PhoneNumber   string      `json:"phone_number"`
	DateContacted schema.Date `json:"date_contacted"`
	Latitude      float64     `json:"latitude"`
	Longitude     float64     `json:"longitude"`
	Location      string      `json:"location"`
}

// CreateContact records a meeting and runs both propagation directions
// inside one transaction. If the reporter is positive and the meeting
// falls in their infectious window, the counterpart is linked. If the
// counterpart is positive and the meeting falls in theirs, the reporter
// is linked the other way.
func (s *TraceStore) CreateContact(subjectID uuid.UUID, params ContactParams) (*schema.ContactEvent, *exposure.Result, error) {
	subject, err := s.GetSubject(subjectID)
	if err != nil {
		return nil, nil, err
	}

	tx := s.ormDB.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	event := schema.ContactEvent{
		ID:            uuid.New(),
		SubjectID:     subjectID,
		Name:          params.Name,
		PhoneNumber:   exposure.NormalizePhone(params.PhoneNumber),
		DateContacted: params.DateContacted,
		Latitude:      params.Latitude,
		Longitude:     params.Longitude,
		Location:      params.Location,
	}
	if err := tx.Create(&event).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	result := exposure.NewResult()

	counterpart, err := findSubjectByPhone(tx, event.PhoneNumber)
	switch err {
	case nil:
		counterpartID := counterpart.ID
		event.CounterpartID = &counterpartID
		if err := tx.Model(schema.ContactEvent{}).Where("id = ?", event.ID).
			Update("counterpart_id", counterpartID).Error; err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	case ErrSubjectNotFound:
		counterpart = nil
	default:
		result.Fail(uuid.Nil, err)
		counterpart = nil
	}

	if err := s.contactPositiveBranch(tx, result, subject, &event, counterpart); err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := s.contactCrossingBranch(tx, result, subject, &event, counterpart); err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	result.Infected = event.IsInfected
	return &event, result, nil
}

// contactPositiveBranch handles the reporter being the infected party.
func (s *TraceStore) contactPositiveBranch(tx *gorm.DB, result *exposure.Result, subject *schema.Subject, event *schema.ContactEvent, counterpart *schema.Subject) error {
	report, err := getReport(tx, subject.ID)
	if err == ErrReportNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if !report.Positive() || report.DataStarted == nil {
		return nil
	}
	if !exposure.OnsetWindow(*report.DataStarted).Contains(event.DateContacted) {
		return nil
	}

	if err := flagContact(tx, event); err != nil {
		return err
	}
	if counterpart == nil {
		return nil
	}
	return linkAndCount(tx, result, counterpart.ID, subject.ID,
		schema.ChannelContact, event.ID, nil)
}

// contactCrossingBranch handles the other side being the infected
// party. Two sources qualify: the resolved counterpart's own positive
// report with the meeting inside its window, and flagged entries other
// subjects hold for the same number within the contact window. Either
// way the new entry itself becomes the evidence the reporter was
// exposed. A flagged pool entry alone is not enough; its owner must
// still report positive, otherwise exposure would chain through people
// who were only exposed.
func (s *TraceStore) contactCrossingBranch(tx *gorm.DB, result *exposure.Result, subject *schema.Subject, event *schema.ContactEvent, counterpart *schema.Subject) error {
	if counterpart != nil {
		report, err := getReport(tx, counterpart.ID)
		if err != nil && err != ErrReportNotFound {
			return err
		}
		if report.Positive() && report.DataStarted != nil &&
			exposure.OnsetWindow(*report.DataStarted).Contains(event.DateContacted) {
			if err := flagContact(tx, event); err != nil {
				return err
			}
			targetID := event.ID
			if err := linkAndCount(tx, result, subject.ID, counterpart.ID,
				schema.ChannelContact, event.ID, &targetID); err != nil {
				return err
			}
		}
	}

	var pool []schema.ContactEvent
	if err := tx.Where("subject_id <> ? AND phone_number = ?",
		subject.ID, event.PhoneNumber).Find(&pool).Error; err != nil {
		return err
	}

	byID := make(map[uuid.UUID]schema.ContactEvent, len(pool))
	candidates := make([]exposure.Candidate, 0, len(pool))
	for _, other := range pool {
		byID[other.ID] = other
		candidates = append(candidates, exposure.ContactCandidate(other))
	}

	matched := exposure.MatchInfected(
		exposure.ContactCandidate(*event), candidates, exposure.ContactRule)
	for _, m := range matched {
		other := byID[m.ID]

		positive, err := subjectPositive(tx, other.SubjectID)
		if err != nil {
			result.Fail(other.SubjectID, err)
			continue
		}
		if !positive {
			continue
		}

		if err := flagContact(tx, event); err != nil {
			return err
		}
		targetID := event.ID
		if err := linkAndCount(tx, result, subject.ID, other.SubjectID,
			schema.ChannelContact, other.ID, &targetID); err != nil {
			return err
		}
	}
	return nil
}

// flagContact marks an entry infected once; repeated hits in one pass
// leave it alone.
func flagContact(tx *gorm.DB, event *schema.ContactEvent) error {
	if event.IsInfected {
		return nil
	}
	event.IsInfected = true
	return tx.Model(schema.ContactEvent{}).Where("id = ?", event.ID).
		Update("is_infected", true).Error
}

// ListContacts returns the subject's contact entries, tagged ones
// included, most recent first.
func (s *TraceStore) ListContacts(subjectID uuid.UUID) ([]schema.ContactEvent, error) {
	var events []schema.ContactEvent
	err := s.ormDB.Where("subject_id = ?", subjectID).
		Order("date_contacted DESC").Find(&events).Error
	return events, err
}

// DeleteContact removes an entry and retracts every exposure it
// evidenced. Counters and risk flags of both parties settle back as if
// the entry had never been made.
func (s *TraceStore) DeleteContact(subjectID, contactID uuid.UUID) (*exposure.Result, error) {
	var event schema.ContactEvent
	if err := s.ormDB.Where("id = ?", contactID).First(&event).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.SubjectID != subjectID {
		return nil, ErrNotEventOwner
	}

	tx := s.ormDB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	result := exposure.NewResult()
	if err := unlinkEvent(tx, result, contactID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Delete(schema.ContactEvent{}, "id = ?", contactID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return result, nil
}
