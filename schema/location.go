package schema

import (
	"time"

	"github.com/google/uuid"
)

// LocationEvent records a visit: a subject was at a place on a date
// within [FromTime, ToTime]. Latitude and longitude are stored already
// truncated to four decimal places, which is the co-presence
// granularity. A continuous stay is kept as one row whose span is
// extended by tagging merges; the incremental pings live in
// LocationTagging child rows.
type LocationEvent struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	SubjectID     uuid.UUID `json:"subject_id" gorm:"type:uuid;index"`
	Location      string    `json:"location"`
	CountryRegion string    `json:"country_region"`
	ProvinceState string    `json:"province_state"`
	City          string    `json:"city"`
	LocationDate  Date      `json:"location_date" gorm:"type:date;index"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	FromTime      TimeOfDay `json:"from_time"`
	ToTime        TimeOfDay `json:"to_time"`
	IsInfected    bool      `json:"is_infected"`
	IsHidden      bool      `json:"is_hidden"`
	PlaceTag      string    `json:"place_tag"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Taggings []LocationTagging `json:"-" gorm:"foreignkey:LocationEventID"`
}

// LocationTagging is one merged ping inside a visit. The first tagging
// row of a visit is the signal that the visit is new, which is what
// keeps merges from re-incrementing exposure counters.
type LocationTagging struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	LocationEventID uuid.UUID `json:"location_event_id" gorm:"type:uuid;index"`
	FromTime        TimeOfDay `json:"from_time"`
	ToTime          TimeOfDay `json:"to_time"`
	IsInfected      bool      `json:"is_infected"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
