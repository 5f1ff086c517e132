package schema

import (
	"time"

	"github.com/google/uuid"
)

// Symptom is a catalog entry. Official symptoms are seeded at deploy;
// customized ones are created on demand when a report names something
// new.
type Symptom struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"unique_index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Disease is the catalog of diseases a report can be filed against.
type Disease struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"unique_index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
