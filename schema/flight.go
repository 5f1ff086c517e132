package schema

import (
	"time"

	"github.com/google/uuid"
)

// Flight is a carrier catalog entry.
type Flight struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"unique_index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FlightEvent records that a subject took a flight on a date. Two
// events with the same carrier, flight number and journey date count
// as co-presence.
type FlightEvent struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	SubjectID   uuid.UUID `json:"subject_id" gorm:"type:uuid;index"`
	FlightID    uuid.UUID `json:"flight_id" gorm:"type:uuid"`
	Flight      *Flight   `json:"flight,omitempty" gorm:"foreignkey:FlightID"`
	FlightNo    string    `json:"flight_no"`
	DateJourney Date      `json:"date_journey" gorm:"type:date;index"`
	IsInfected  bool      `json:"is_infected"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
