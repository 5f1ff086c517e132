package store

import (
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/samscloud-io/trace-api/consts"
	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/schema"
)

// applyPositive fans a positive report out over the subject's history:
// own events inside the infectious window are flagged, and every other
// subject who shared a phone contact, a location block or a flight with
// one of them is linked and counted. Counterparts that cannot be
// resolved are recorded as failures and skipped; the pass never gives
// up halfway because one lookup failed.
func (s *TraceStore) applyPositive(tx *gorm.DB, result *exposure.Result, subjectID uuid.UUID, onset schema.Date) error {
	var subject schema.Subject
	if err := tx.Where("id = ?", subjectID).First(&subject).Error; err != nil {
		return err
	}

	if err := s.applyPositiveContacts(tx, result, &subject, onset); err != nil {
		return err
	}
	if err := s.applyPositiveLocations(tx, result, &subject, onset); err != nil {
		return err
	}
	return s.applyPositiveFlights(tx, result, &subject, onset)
}

func (s *TraceStore) applyPositiveContacts(tx *gorm.DB, result *exposure.Result, subject *schema.Subject, onset schema.Date) error {
	window := exposure.OnsetWindow(onset)

	var own []schema.ContactEvent
	if err := tx.Where("subject_id = ? AND date_contacted BETWEEN ? AND ?",
		subject.ID, window.From, window.To).Find(&own).Error; err != nil {
		return err
	}

	for _, event := range own {
		if err := tx.Model(schema.ContactEvent{}).Where("id = ?", event.ID).
			Update("is_infected", true).Error; err != nil {
			return err
		}

		counterpart, err := findSubjectByPhone(tx, event.PhoneNumber)
		if err == ErrSubjectNotFound {
			continue
		}
		if err != nil {
			result.Fail(uuid.Nil, err)
			continue
		}

		// The counterpart's own record of the meeting, when one exists,
		// corroborates the link and gets flagged with it.
		var reciprocal []schema.ContactEvent
		if subject.PhoneNumber != nil {
			recipWindow := exposure.DateWindow{
				From: event.DateContacted.AddDays(-consts.ONSET_WINDOW_DAYS),
				To:   event.DateContacted.AddDays(consts.ONSET_WINDOW_DAYS),
			}
			if err := tx.Where("subject_id = ? AND phone_number = ? AND date_contacted BETWEEN ? AND ?",
				counterpart.ID, *subject.PhoneNumber, recipWindow.From, recipWindow.To).
				Find(&reciprocal).Error; err != nil {
				return err
			}
		}

		if len(reciprocal) == 0 {
			if err := linkAndCount(tx, result, counterpart.ID, subject.ID,
				schema.ChannelContact, event.ID, nil); err != nil {
				return err
			}
			continue
		}
		for _, r := range reciprocal {
			if err := tx.Model(schema.ContactEvent{}).Where("id = ?", r.ID).
				Update("is_infected", true).Error; err != nil {
				return err
			}
			targetID := r.ID
			if err := linkAndCount(tx, result, counterpart.ID, subject.ID,
				schema.ChannelContact, event.ID, &targetID); err != nil {
				return err
			}
		}
	}

	// The other direction: people who logged the subject's number even
	// though the subject never logged theirs.
	if subject.PhoneNumber == nil {
		return nil
	}
	var inbound []schema.ContactEvent
	if err := tx.Where("subject_id <> ? AND phone_number = ? AND date_contacted BETWEEN ? AND ?",
		subject.ID, *subject.PhoneNumber, window.From, window.To).Find(&inbound).Error; err != nil {
		return err
	}
	for _, event := range inbound {
		if err := tx.Model(schema.ContactEvent{}).Where("id = ?", event.ID).
			Update("is_infected", true).Error; err != nil {
			return err
		}
		targetID := event.ID
		if err := linkAndCount(tx, result, event.SubjectID, subject.ID,
			schema.ChannelContact, event.ID, &targetID); err != nil {
			return err
		}
	}
	return nil
}

func (s *TraceStore) applyPositiveLocations(tx *gorm.DB, result *exposure.Result, subject *schema.Subject, onset schema.Date) error {
	var own []schema.LocationEvent
	if err := tx.Where("subject_id = ? AND location_date >= ?",
		subject.ID, onset).Find(&own).Error; err != nil {
		return err
	}

	for _, visit := range own {
		if err := flagVisit(tx, visit.ID, true); err != nil {
			return err
		}

		var pool []schema.LocationEvent
		if err := tx.Where("subject_id <> ? AND location_date = ? AND latitude = ? AND longitude = ?",
			subject.ID, visit.LocationDate, visit.Latitude, visit.Longitude).
			Find(&pool).Error; err != nil {
			return err
		}

		byID := make(map[uuid.UUID]schema.LocationEvent, len(pool))
		candidates := make([]exposure.Candidate, 0, len(pool))
		for _, other := range pool {
			byID[other.ID] = other
			candidates = append(candidates, exposure.LocationCandidate(other))
		}

		matched := exposure.Match(
			exposure.LocationCandidate(visit), candidates, exposure.LocationReconcileRule)
		for _, m := range matched {
			if err := s.linkCoPresence(tx, result, subject, visit, byID[m.ID]); err != nil {
				return err
			}
		}
	}
	return nil
}

// linkCoPresence wires up one infected visit crossing another subject's
// visit: the other visit is flagged, the location link counted, and a
// tagged contact entry is surfaced in the exposed party's contact list
// and counted on the contact channel too.
func (s *TraceStore) linkCoPresence(tx *gorm.DB, result *exposure.Result, infected *schema.Subject, infectedVisit, exposedVisit schema.LocationEvent) error {
	if err := flagVisit(tx, exposedVisit.ID, true); err != nil {
		return err
	}
	targetID := exposedVisit.ID
	if err := linkAndCount(tx, result, exposedVisit.SubjectID, infected.ID,
		schema.ChannelLocation, infectedVisit.ID, &targetID); err != nil {
		return err
	}

	tagged, err := ensureTaggedContact(tx, exposedVisit.SubjectID, infected, exposedVisit)
	if err != nil {
		return err
	}
	taggedID := tagged.ID
	if err := tx.Model(schema.ContactEvent{}).Where("id = ?", tagged.ID).
		Update("is_infected", true).Error; err != nil {
		return err
	}
	return linkAndCount(tx, result, exposedVisit.SubjectID, infected.ID,
		schema.ChannelContact, taggedID, &taggedID)
}

// ensureTaggedContact materializes a location co-presence as a contact
// entry owned by the exposed party, one per counterpart per day.
func ensureTaggedContact(tx *gorm.DB, owner uuid.UUID, counterpart *schema.Subject, visit schema.LocationEvent) (*schema.ContactEvent, error) {
	var existing schema.ContactEvent
	err := tx.Where("subject_id = ? AND counterpart_id = ? AND date_contacted = ?",
		owner, counterpart.ID, visit.LocationDate).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	phone := ""
	if counterpart.PhoneNumber != nil {
		phone = *counterpart.PhoneNumber
	}
	counterpartID := counterpart.ID
	tagged := schema.ContactEvent{
		ID:            uuid.New(),
		SubjectID:     owner,
		CounterpartID: &counterpartID,
		Name:          counterpart.Name,
		PhoneNumber:   phone,
		DateContacted: visit.LocationDate,
		Latitude:      visit.Latitude,
		Longitude:     visit.Longitude,
		Location:      visit.Location,
		IsTagged:      true,
	}
	if err := tx.Create(&tagged).Error; err != nil {
		return nil, err
	}
	return &tagged, nil
}

func (s *TraceStore) applyPositiveFlights(tx *gorm.DB, result *exposure.Result, subject *schema.Subject, onset schema.Date) error {
	window := exposure.OnsetWindow(onset)

	var own []schema.FlightEvent
	if err := tx.Where("subject_id = ? AND date_journey BETWEEN ? AND ?",
		subject.ID, window.From, window.To).Find(&own).Error; err != nil {
		return err
	}

	for _, flight := range own {
		if err := tx.Model(schema.FlightEvent{}).Where("id = ?", flight.ID).
			Update("is_infected", true).Error; err != nil {
			return err
		}

		var fellow []schema.FlightEvent
		if err := tx.Where("subject_id <> ? AND flight_id = ? AND flight_no = ? AND date_journey = ?",
			subject.ID, flight.FlightID, flight.FlightNo, flight.DateJourney).
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
				schema.ChannelFlight, flight.ID, &targetID); err != nil {
				return err
			}
		}
	}
	return nil
}

// flagVisit sets a visit's infected flag along with its tagging rows.
func flagVisit(tx *gorm.DB, visitID uuid.UUID, infected bool) error {
	if err := tx.Model(schema.LocationEvent{}).Where("id = ?", visitID).
		Update("is_infected", infected).Error; err != nil {
		return err
	}
	return tx.Model(schema.LocationTagging{}).Where("location_event_id = ?", visitID).
		Update("is_infected", infected).Error
}

// clearOwnEvents resets the infected flags on everything the subject
// owns, sparing events that another infected subject's surviving link
// still corroborates. It runs after the subject's outgoing links are
// retracted, so a following applyPositive pass starts from clean flags.
func (s *TraceStore) clearOwnEvents(tx *gorm.DB, subjectID uuid.UUID) error {
	corroborated := "id NOT IN (SELECT target_event_id FROM exposure_links WHERE target_event_id IS NOT NULL)"

	for _, model := range []interface{}{
		schema.ContactEvent{},
		schema.LocationEvent{},
		schema.FlightEvent{},
	} {
		if err := tx.Model(model).
			Where("subject_id = ? AND "+corroborated, subjectID).
			Update("is_infected", false).Error; err != nil {
			return err
		}
	}

	return tx.Exec(`UPDATE location_taggings SET is_infected = false
		WHERE location_event_id IN
			(SELECT id FROM location_events WHERE subject_id = ? AND is_infected = false)`,
		subjectID).Error
}

// subjectPositive tells whether a subject currently reports positive,
// used by crossing checks before attributing an exposure to them.
func subjectPositive(tx *gorm.DB, subjectID uuid.UUID) (bool, error) {
	report, err := getReport(tx, subjectID)
	if err == ErrReportNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return report.Positive(), nil
}
