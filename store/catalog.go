package store

import (
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/samscloud-io/trace-api/schema"
)

// ListSymptoms returns the symptom catalog, seeded entries and
// free-text additions alike.
func (s *TraceStore) ListSymptoms() ([]schema.Symptom, error) {
	var symptoms []schema.Symptom
	err := s.ormDB.Order("name").Find(&symptoms).Error
	return symptoms, err
}

// ListDiseases returns the disease catalog.
func (s *TraceStore) ListDiseases() ([]schema.Disease, error) {
	var diseases []schema.Disease
	err := s.ormDB.Order("name").Find(&diseases).Error
	return diseases, err
}

// ListCarriers returns the airline catalog.
func (s *TraceStore) ListCarriers() ([]schema.Flight, error) {
	var carriers []schema.Flight
	err := s.ormDB.Order("name").Find(&carriers).Error
	return carriers, err
}

// getOrCreateCarrier resolves an airline by name, adding unknown names
// to the catalog.
func getOrCreateCarrier(tx *gorm.DB, name string) (*schema.Flight, error) {
	var carrier schema.Flight
	err := tx.Where("name = ?", name).First(&carrier).Error
	if gorm.IsRecordNotFoundError(err) {
		carrier = schema.Flight{ID: uuid.New(), Name: name}
		err = tx.Create(&carrier).Error
	}
	if err != nil {
		return nil, err
	}
	return &carrier, nil
}
