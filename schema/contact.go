package schema

import (
	"time"

	"github.com/google/uuid"
)

// ContactEvent records that a subject met the person behind a phone
// number on a given date. CounterpartID is resolved from the phone
// number when the counterpart is a registered subject; it stays nil
// otherwise and the event never propagates. IsTagged marks events the
// system created itself from a co-location match.
type ContactEvent struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	SubjectID     uuid.UUID  `json:"subject_id" gorm:"type:uuid;index"`
	CounterpartID *uuid.UUID `json:"counterpart_id" gorm:"type:uuid"`
	Name          string     `json:"name"`
	PhoneNumber   string     `json:"phone_number" gorm:"index"`
	DateContacted Date       `json:"date_contacted" gorm:"type:date"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	Location      string     `json:"location"`
	IsInfected    bool       `json:"is_infected"`
	IsTagged      bool       `json:"is_tagged"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
