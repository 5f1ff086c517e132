package schema

import (
	"time"

	"github.com/google/uuid"
)

// ExposureChannel is a category of exposure event with its own key and
// window rules.
type ExposureChannel string

const (
	ChannelContact  ExposureChannel = "contact"
	ChannelLocation ExposureChannel = "location"
	ChannelFlight   ExposureChannel = "flight"
)

// CounterColumn returns the subjects column backing this channel's
// exposure counter.
func (c ExposureChannel) CounterColumn() string {
	switch c {
	case ChannelContact:
		return "contact_exposure"
	case ChannelLocation:
		return "location_exposure"
	case ChannelFlight:
		return "flight_exposure"
	}
	return ""
}

// ExposureLink is one attributable reason a subject's exposure counter
// is non-zero: the subject crossed SourceEventID, an infected event
// owned by CounterpartID. A counter increments only when the first link
// for (subject, counterpart, channel) appears and decrements only when
// the last one goes, so overlapping events with the same counterpart
// never double count and a Positive-to-Negative flip only clears state
// that has no surviving corroborating source.
//
// TargetEventID, when set, is the subject's own event row that was
// flagged infected because of this link; its flag is cleared once no
// link references it and the owner's report is not positive.
type ExposureLink struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	SubjectID     uuid.UUID       `json:"subject_id" gorm:"type:uuid;unique_index:idx_exposure_link"`
	CounterpartID uuid.UUID       `json:"counterpart_id" gorm:"type:uuid;unique_index:idx_exposure_link"`
	Channel       ExposureChannel `json:"channel" gorm:"unique_index:idx_exposure_link"`
	SourceEventID uuid.UUID       `json:"source_event_id" gorm:"type:uuid;unique_index:idx_exposure_link;index"`
	TargetEventID *uuid.UUID      `json:"target_event_id" gorm:"type:uuid;index"`
	CreatedAt     time.Time       `json:"created_at"`
}
