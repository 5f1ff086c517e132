package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/samscloud-io/trace-api/consts"
	"github.com/samscloud-io/trace-api/schema"
)

// mergeOrCreateVisit folds a new check-in into the subject's most
// recent visit at the same date and coordinate block whose to_time
// reaches within the merge tolerance of the new span's start. A merged
// check-in extends the visit's to_time and appends a tagging
// sub-record; clients polling every few minutes produce one visit row,
// not dozens. Returns the visit and whether it was merged rather than
// created.
func mergeOrCreateVisit(tx *gorm.DB, subjectID uuid.UUID, params LocationParams) (*schema.LocationEvent, bool, error) {
	mergeFloor := int(params.FromTime) - int(consts.TAGGING_MERGE_DELTA/time.Minute)

	var visit schema.LocationEvent
	err := tx.Where("subject_id = ? AND location_date = ? AND latitude = ? AND longitude = ? AND to_time >= ?",
		subjectID, params.LocationDate, params.Latitude, params.Longitude, mergeFloor).
		Order("to_time DESC").First(&visit).Error
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		return nil, false, err
	}

	if err == nil {
		if params.ToTime > visit.ToTime {
			visit.ToTime = params.ToTime
			if err := tx.Model(schema.LocationEvent{}).Where("id = ?", visit.ID).
				Update("to_time", visit.ToTime).Error; err != nil {
				return nil, false, err
			}
		}

		// Resending the same span leaves the record untouched.
		var duplicate int
		if err := tx.Model(schema.LocationTagging{}).
			Where("location_event_id = ? AND from_time = ? AND to_time = ?",
				visit.ID, params.FromTime, params.ToTime).
			Count(&duplicate).Error; err != nil {
			return nil, false, err
		}
		if duplicate == 0 {
			tagging := schema.LocationTagging{
				ID:              uuid.New(),
				LocationEventID: visit.ID,
				FromTime:        params.FromTime,
				ToTime:          params.ToTime,
				IsInfected:      visit.IsInfected,
			}
			if err := tx.Create(&tagging).Error; err != nil {
				return nil, false, err
			}
		}
		return &visit, true, nil
	}

	visit = schema.LocationEvent{
		ID:            uuid.New(),
		SubjectID:     subjectID,
		Location:      params.Location,
		CountryRegion: params.CountryRegion,
		ProvinceState: params.ProvinceState,
		City:          params.City,
		LocationDate:  params.LocationDate,
		Latitude:      params.Latitude,
		Longitude:     params.Longitude,
		FromTime:      params.FromTime,
		ToTime:        params.ToTime,
		PlaceTag:      params.PlaceTag,
	}
	if err := tx.Create(&visit).Error; err != nil {
		return nil, false, err
	}
	tagging := schema.LocationTagging{
		ID:              uuid.New(),
		LocationEventID: visit.ID,
		FromTime:        params.FromTime,
		ToTime:          params.ToTime,
	}
	if err := tx.Create(&tagging).Error; err != nil {
		return nil, false, err
	}
	return &visit, false, nil
}
