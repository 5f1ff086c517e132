package store

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/schema"
)

// LocationParams is one check-in. Coordinates are truncated to the
// co-presence granularity before matching and storage.
type LocationParams struct {
	Location      string           `json:"location"`
	PlaceTag      string           `json:"place_tag"`
	CountryRegion string           `json:"country_region"`
	ProvinceState string           `json:"province_state"`
	City          string           `json:"city"`
	LocationDate  schema.Date      `json:"location_date"`
	Latitude      float64          `json:"latitude"`
	Longitude     float64          `json:"longitude"`
	FromTime      schema.TimeOfDay `json:"from_time"`
	ToTime        schema.TimeOfDay `json:"to_time"`
}

// LocationStats summarizes a named place across all subjects.
type LocationStats struct {
	Location       string       `json:"location"`
	Visits         int          `json:"visits"`
	InfectedVisits int          `json:"infected_visits"`
	Subjects       int          `json:"subjects"`
	FirstExposure  *schema.Date `json:"first_exposure,omitempty"`
	LatestExposure *schema.Date `json:"latest_exposure,omitempty"`
}

// CreateLocation records a check-in: merge it into an existing visit or
// create one, then run propagation. A positive reporter's visit flags
// and links everyone sharing the coordinate block; anyone else is
// checked against infected visits already there. Merge, links, counters
// and flags move in one transaction.
func (s *TraceStore) CreateLocation(subjectID uuid.UUID, params LocationParams) (*schema.LocationEvent, *exposure.Result, error) {
	subject, err := s.GetSubject(subjectID)
	if err != nil {
		return nil, nil, err
	}

	params.Latitude = exposure.TruncateCoordinate(params.Latitude)
	params.Longitude = exposure.TruncateCoordinate(params.Longitude)
	s.enrichLocation(&params)

	tx := s.ormDB.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	visit, merged, err := mergeOrCreateVisit(tx, subjectID, params)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	result := exposure.NewResult()

	report, err := getReport(tx, subjectID)
	if err != nil && err != ErrReportNotFound {
		tx.Rollback()
		return nil, nil, err
	}

	if report.Positive() && report.DataStarted != nil && !visit.LocationDate.Before(*report.DataStarted) {
		if err := s.locationPositiveBranch(tx, result, subject, visit); err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	} else {
		if err := s.locationCrossingBranch(tx, result, subject, visit); err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	log.WithFields(logrus.Fields{
		"subject": subjectID,
		"visit":   visit.ID,
		"merged":  merged,
	}).Debug("check-in recorded")

	result.Infected = visit.IsInfected
	return visit, result, nil
}

// locationPositiveBranch flags the reporter's visit and links everyone
// whose visit the merged span covers within the live tolerance.
func (s *TraceStore) locationPositiveBranch(tx *gorm.DB, result *exposure.Result, subject *schema.Subject, visit *schema.LocationEvent) error {
	if err := flagVisit(tx, visit.ID, true); err != nil {
		return err
	}
	visit.IsInfected = true

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
		exposure.LocationCandidate(*visit), candidates, exposure.LocationTaggingRule)
	for _, m := range matched {
		if err := s.linkCoPresence(tx, result, subject, *visit, byID[m.ID]); err != nil {
			return err
		}
	}
	return nil
}

// locationCrossingBranch checks a fresh visit against infected visits
// at the same block. An infected flag alone is not enough to attribute
// an exposure; the flagged visit's owner must themselves report
// positive, otherwise exposure would chain through people who were only
// exposed.
func (s *TraceStore) locationCrossingBranch(tx *gorm.DB, result *exposure.Result, subject *schema.Subject, visit *schema.LocationEvent) error {
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

	matched := exposure.MatchInfected(
		exposure.LocationCandidate(*visit), candidates, exposure.LocationCrossingRule)
	for _, m := range matched {
		other := byID[m.ID]

		positive, err := subjectPositive(tx, other.SubjectID)
		if err != nil {
			result.Fail(other.SubjectID, err)
			continue
		}
		if !positive {
			continue
		}

		var counterpart schema.Subject
		if err := tx.Where("id = ?", other.SubjectID).First(&counterpart).Error; err != nil {
			result.Fail(other.SubjectID, err)
			continue
		}
		if err := s.linkCoPresence(tx, result, &counterpart, other, *visit); err != nil {
			return err
		}
		visit.IsInfected = true
	}
	return nil
}

// ListLocations returns the subject's visible visit history with its
// tagging sub-records, most recent first.
func (s *TraceStore) ListLocations(subjectID uuid.UUID) ([]schema.LocationEvent, error) {
	var events []schema.LocationEvent
	err := s.ormDB.Preload("Taggings").
		Where("subject_id = ? AND is_hidden = ?", subjectID, false).
		Order("location_date DESC, from_time DESC").Find(&events).Error
	return events, err
}

// HideLocation removes a visit from the subject's own history without
// touching exposure state.
func (s *TraceStore) HideLocation(subjectID, locationID uuid.UUID) error {
	var visit schema.LocationEvent
	if err := s.ormDB.Where("id = ?", locationID).First(&visit).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return ErrEventNotFound
		}
		return err
	}
	if visit.SubjectID != subjectID {
		return ErrNotEventOwner
	}
	return s.ormDB.Model(schema.LocationEvent{}).Where("id = ?", locationID).
		Update("is_hidden", true).Error
}

// DeleteLocation removes a visit with its taggings and retracts every
// exposure it evidenced.
func (s *TraceStore) DeleteLocation(subjectID, locationID uuid.UUID) (*exposure.Result, error) {
	var visit schema.LocationEvent
	if err := s.ormDB.Where("id = ?", locationID).First(&visit).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if visit.SubjectID != subjectID {
		return nil, ErrNotEventOwner
	}

	tx := s.ormDB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	result := exposure.NewResult()
	if err := unlinkEvent(tx, result, locationID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Delete(schema.LocationTagging{}, "location_event_id = ?", locationID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Delete(schema.LocationEvent{}, "id = ?", locationID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return result, nil
}

// GetLocationStats aggregates a named place across all subjects.
func (s *TraceStore) GetLocationStats(location string) (*LocationStats, error) {
	stats := LocationStats{Location: location}

	if err := s.ormDB.Model(schema.LocationEvent{}).
		Where("location = ?", location).Count(&stats.Visits).Error; err != nil {
		return nil, err
	}
	if err := s.ormDB.Model(schema.LocationEvent{}).
		Where("location = ? AND is_infected = ?", location, true).
		Count(&stats.InfectedVisits).Error; err != nil {
		return nil, err
	}
	if err := s.ormDB.Model(schema.LocationEvent{}).
		Where("location = ?", location).
		Select("COUNT(DISTINCT subject_id)").Row().Scan(&stats.Subjects); err != nil {
		return nil, err
	}

	var first, latest sql.NullTime
	if err := s.ormDB.Model(schema.LocationEvent{}).
		Where("location = ? AND is_infected = ?", location, true).
		Select("MIN(location_date), MAX(location_date)").Row().Scan(&first, &latest); err != nil {
		return nil, err
	}
	if first.Valid {
		d := schema.NewDate(first.Time.Year(), first.Time.Month(), first.Time.Day())
		stats.FirstExposure = &d
	}
	if latest.Valid {
		d := schema.NewDate(latest.Time.Year(), latest.Time.Month(), latest.Time.Day())
		stats.LatestExposure = &d
	}
	return &stats, nil
}

// enrichLocation fills missing region fields from reverse geocoding.
// Lookup failure is not fatal; the check-in proceeds unenriched.
func (s *TraceStore) enrichLocation(params *LocationParams) {
	if s.geoClient == nil {
		return
	}
	if params.CountryRegion != "" && params.ProvinceState != "" && params.City != "" {
		return
	}

	results, err := s.geoClient.Get(params.Latitude, params.Longitude)
	if err != nil {
		log.WithError(err).Warn("reverse geocode failed")
		return
	}

	for _, r := range results {
		for _, c := range r.AddressComponents {
			for _, t := range c.Types {
				switch t {
				case "country":
					if params.CountryRegion == "" {
						params.CountryRegion = c.LongName
					}
				case "administrative_area_level_1":
					if params.ProvinceState == "" {
						params.ProvinceState = c.LongName
					}
				case "locality":
					if params.City == "" {
						params.City = c.LongName
					}
				}
			}
		}
	}
}
