package store

import (
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/schema"
)

// linkExposure records one attributable exposure: exposed crossed
// source, an infected event owned by infected. Returns whether this is
// the first link between the pair on the channel, which is the only
// case a counter moves. Re-inserting the same link is a no-op, so
// tagging merges and resubmissions cannot double count.
func linkExposure(tx *gorm.DB, exposed, infected uuid.UUID, channel schema.ExposureChannel, sourceEvent uuid.UUID, targetEvent *uuid.UUID) (bool, error) {
	var prior int
	if err := tx.Model(schema.ExposureLink{}).
		Where("subject_id = ? AND counterpart_id = ? AND channel = ?", exposed, infected, channel).
		Count(&prior).Error; err != nil {
		return false, err
	}

	link := schema.ExposureLink{
		ID:            uuid.New(),
		SubjectID:     exposed,
		CounterpartID: infected,
		Channel:       channel,
		SourceEventID: sourceEvent,
		TargetEventID: targetEvent,
	}
	if err := tx.Create(&link).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			// already linked through this source
			return false, nil
		}
		return false, err
	}

	return prior == 0, nil
}

// linkAndCount is the increment half of the ledger: insert the link,
// bump the counter on a first link, raise the risk flag, and note a
// fresh flip in the result so the caller can notify.
func linkAndCount(tx *gorm.DB, result *exposure.Result, exposed, infected uuid.UUID, channel schema.ExposureChannel, sourceEvent uuid.UUID, targetEvent *uuid.UUID) error {
	first, err := linkExposure(tx, exposed, infected, channel, sourceEvent, targetEvent)
	if err != nil {
		return err
	}
	if first {
		if err := adjustExposure(tx, exposed, channel, 1); err != nil {
			return err
		}
		result.AddLinked(infected)
	}

	changed, err := setRiskLevel(tx, exposed, true)
	if err != nil {
		return err
	}
	if changed {
		result.AddNewlyAtRisk(exposed)
	}
	return nil
}

// unlinkAndCount is the decrement half: remove the link, and when it
// was the last one between the pair on its channel, take the counter
// back down, clear the target event flag if nothing else corroborates
// it, and rederive the exposed party's risk flag.
func unlinkAndCount(tx *gorm.DB, result *exposure.Result, link schema.ExposureLink) error {
	if err := tx.Delete(schema.ExposureLink{}, "id = ?", link.ID).Error; err != nil {
		return err
	}

	var remaining int
	if err := tx.Model(schema.ExposureLink{}).
		Where("subject_id = ? AND counterpart_id = ? AND channel = ?",
			link.SubjectID, link.CounterpartID, link.Channel).
		Count(&remaining).Error; err != nil {
		return err
	}
	if remaining == 0 {
		if err := adjustExposure(tx, link.SubjectID, link.Channel, -1); err != nil {
			return err
		}
		result.AddUnlinked(link.CounterpartID)
	}

	if link.TargetEventID != nil {
		if err := clearEventIfUncorroborated(tx, link.SubjectID, link.Channel, *link.TargetEventID); err != nil {
			return err
		}
	}

	atRisk, changed, err := recomputeRisk(tx, link.SubjectID)
	if err != nil {
		return err
	}
	if changed && !atRisk {
		result.AddRiskCleared(link.SubjectID)
	}
	return nil
}

// clearEventIfUncorroborated resets an event's infected flag once no
// surviving link references it and its owner's own report is not
// positive. The flag is derived state; it must never outlive its
// sources.
func clearEventIfUncorroborated(tx *gorm.DB, owner uuid.UUID, channel schema.ExposureChannel, eventID uuid.UUID) error {
	var corroborating int
	if err := tx.Model(schema.ExposureLink{}).
		Where("target_event_id = ?", eventID).
		Count(&corroborating).Error; err != nil {
		return err
	}
	if corroborating > 0 {
		return nil
	}

	report, err := getReport(tx, owner)
	if err != nil && err != ErrReportNotFound {
		return err
	}
	if report.Positive() {
		return nil
	}

	var model interface{}
	switch channel {
	case schema.ChannelContact:
		model = schema.ContactEvent{}
	case schema.ChannelLocation:
		model = schema.LocationEvent{}
	case schema.ChannelFlight:
		model = schema.FlightEvent{}
	}
	return tx.Model(model).Where("id = ?", eventID).Update("is_infected", false).Error
}

// unlinkEvent tears down every link touching an event, in both roles:
// links the event sourced (others exposed through it) and links it was
// the target of (its owner exposed by others, evidenced by this row).
func unlinkEvent(tx *gorm.DB, result *exposure.Result, eventID uuid.UUID) error {
	var links []schema.ExposureLink
	if err := tx.Where("source_event_id = ? OR target_event_id = ?", eventID, eventID).
		Find(&links).Error; err != nil {
		return err
	}

	for _, link := range links {
		if err := unlinkAndCount(tx, result, link); err != nil {
			return err
		}
	}
	return nil
}

// unlinkBySourceSubject retracts every exposure attributable to one
// infected subject, used when their report flips away from Positive.
func unlinkBySourceSubject(tx *gorm.DB, result *exposure.Result, infected uuid.UUID) error {
	var links []schema.ExposureLink
	if err := tx.Where("counterpart_id = ?", infected).Find(&links).Error; err != nil {
		return err
	}

	for _, link := range links {
		if err := unlinkAndCount(tx, result, link); err != nil {
			return err
		}
	}
	return nil
}
