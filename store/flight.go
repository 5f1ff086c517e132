package store

import (
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/schema"
)

// FlightParams is one journey. Carrier is the airline name; unknown
// carriers are added to the catalog.
type FlightParams struct {
	Carrier     string      `json:"carrier"`
	FlightNo    string      `json:"flight_no"`
	DateJourney schema.Date `json:"date_journey"`
}

// CreateFlight records a journey and links co-passengers. Co-presence
// on the flight channel is exact: same carrier, same flight number,
// same journey date.
func (s *TraceStore) CreateFlight(subjectID uuid.UUID, params FlightParams) (*schema.FlightEvent, *exposure.Result, error) {
	subject, err := s.GetSubject(subjectID)
	if err != nil {
		return nil, nil, err
	}

	tx := s.ormDB.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	carrier, err := getOrCreateCarrier(tx, params.Carrier)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	event := schema.FlightEvent{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		FlightID:    carrier.ID,
		FlightNo:    params.FlightNo,
		DateJourney: params.DateJourney,
	}
	if err := tx.Create(&event).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	result := exposure.NewResult()

	report, err := getReport(tx, subjectID)
	if err != nil && err != ErrReportNotFound {
		tx.Rollback()
		return nil, nil, err
	}

	if report.Positive() && report.DataStarted != nil &&
		exposure.OnsetWindow(*report.DataStarted).Contains(event.DateJourney) {
		err = s.flightPositiveBranch(tx, result, subject, &event)
	} else {
		err = s.flightCrossingBranch(tx, result, subject, &event)
	}
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	event.Flight = carrier
	result.Infected = event.IsInfected
	return &event, result, nil
}

func (s *TraceStore) flightPositiveBranch(tx *gorm.DB, result *exposure.Result, subject *schema.Subject, event *schema.FlightEvent) error {
	event.IsInfected = true
	if err := tx.Model(schema.FlightEvent{}).Where("id = ?", event.ID).
		Update("is_infected", true).Error; err != nil {
		return err
	}

	var fellow []schema.FlightEvent
	if err := tx.Where("subject_id <> ? AND flight_id = ? AND flight_no = ? AND date_journey = ?",
		subject.ID, event.FlightID, event.FlightNo, event.DateJourney).
		Find(&fellow).Error; err != nil {
		return err
	}
	for _, other := range fellow {
		if err := tx.Model(schema.FlightEvent{}).Where("id = ?", other.ID).
			Update("is_infected", true).Error; err != nil {
			return err
		}
		targetID := other.ID
		if err := linkAndCount(tx, result, other.SubjectID, subject.ID,
			schema.ChannelFlight, event.ID, &targetID); err != nil {
			return err
		}
	}
	return nil
}

func (s *TraceStore) flightCrossingBranch(tx *gorm.DB, result *exposure.Result, subject *schema.Subject, event *schema.FlightEvent) error {
	var fellow []schema.FlightEvent
	if err := tx.Where("subject_id <> ? AND flight_id = ? AND flight_no = ? AND date_journey = ?",
		subject.ID, event.FlightID, event.FlightNo, event.DateJourney).
		Find(&fellow).Error; err != nil {
		return err
	}

	byID := make(map[uuid.UUID]schema.FlightEvent, len(fellow))
	candidates := make([]exposure.Candidate, 0, len(fellow))
	for _, other := range fellow {
		byID[other.ID] = other
		candidates = append(candidates, exposure.FlightCandidate(other))
	}

	matched := exposure.MatchInfected(
		exposure.FlightCandidate(*event), candidates, exposure.FlightRule)
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

		if !event.IsInfected {
			event.IsInfected = true
			if err := tx.Model(schema.FlightEvent{}).Where("id = ?", event.ID).
				Update("is_infected", true).Error; err != nil {
				return err
			}
		}
		targetID := event.ID
		if err := linkAndCount(tx, result, subject.ID, other.SubjectID,
			schema.ChannelFlight, other.ID, &targetID); err != nil {
			return err
		}
	}
	return nil
}

// ListFlights returns the subject's journeys with carrier details.
func (s *TraceStore) ListFlights(subjectID uuid.UUID) ([]schema.FlightEvent, error) {
	var events []schema.FlightEvent
	err := s.ormDB.Preload("Flight").
		Where("subject_id = ?", subjectID).
		Order("date_journey DESC").Find(&events).Error
	return events, err
}

// DeleteFlight removes a journey and retracts every exposure it
// evidenced.
func (s *TraceStore) DeleteFlight(subjectID, flightID uuid.UUID) (*exposure.Result, error) {
	var event schema.FlightEvent
	if err := s.ormDB.Where("id = ?", flightID).First(&event).Error; err != nil {
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
	if err := unlinkEvent(tx, result, flightID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Delete(schema.FlightEvent{}, "id = ?", flightID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return result, nil
}
