package schema

import (
	"time"

	"github.com/google/uuid"
)

// Subject is a person using the tracing system. The phone number, when
// present, is the natural join key for the contact channel. The three
// exposure counters and the risk flag are derived state maintained by
// the exposure ledger; they must always equal the number of distinct
// infected counterparts recorded in exposure_links per channel.
type Subject struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	Name             string    `json:"name"`
	PhoneNumber      *string   `json:"phone_number" gorm:"unique_index"`
	RiskLevel        bool      `json:"risk_level"`
	ContactExposure  int       `json:"contact_exposure"`
	LocationExposure int       `json:"location_exposure"`
	FlightExposure   int       `json:"flight_exposure"`
	IsSubscribed     bool      `json:"is_subscribed"`
	LastActiveTime   time.Time `json:"last_active_time"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Exposure returns the counter for one channel.
func (s Subject) Exposure(channel ExposureChannel) int {
	switch channel {
	case ChannelContact:
		return s.ContactExposure
	case ChannelLocation:
		return s.LocationExposure
	case ChannelFlight:
		return s.FlightExposure
	}
	return 0
}

// Exposed reports whether any channel counter is non-zero.
func (s Subject) Exposed() bool {
	return s.ContactExposure > 0 || s.LocationExposure > 0 || s.FlightExposure > 0
}
