package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/external/geoinfo"
	"github.com/samscloud-io/trace-api/schema"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "store")
}

var (
	ErrSubjectNotFound   = fmt.Errorf("subject not found")
	ErrPhoneNumberTaken  = fmt.Errorf("this phone number has already registered")
	ErrEventNotFound     = fmt.Errorf("event not found")
	ErrNotEventOwner     = fmt.Errorf("event does not belong to the subject")
	ErrReportNotFound    = fmt.Errorf("no report submitted yet")
	ErrUnknownTestResult = fmt.Errorf("test result must be Positive or Negative")
)

// TraceCore is the tracing datastore. Every mutation that touches
// exposure state runs inside a single transaction: the event row, the
// exposure links, the counters and the risk flags move together or not
// at all.
type TraceCore interface {
	Ping() error

	// Subject
	CreateSubject(params SubjectParams) (*schema.Subject, error)
	GetSubject(id uuid.UUID) (*schema.Subject, error)
	GetSubjectByPhone(phone string) (*schema.Subject, error)
	UpdateSubject(id uuid.UUID, params SubjectParams) (*schema.Subject, error)
	DeleteSubject(id uuid.UUID) (*exposure.Result, error)

	// Report lifecycle
	GetReport(subjectID uuid.UUID) (*schema.Report, error)
	SubmitReport(subjectID uuid.UUID, params ReportParams) (*schema.Report, *exposure.Result, error)

	// Contact channel
	CreateContact(subjectID uuid.UUID, params ContactParams) (*schema.ContactEvent, *exposure.Result, error)
	ListContacts(subjectID uuid.UUID) ([]schema.ContactEvent, error)
	DeleteContact(subjectID, contactID uuid.UUID) (*exposure.Result, error)

	// Location channel
	CreateLocation(subjectID uuid.UUID, params LocationParams) (*schema.LocationEvent, *exposure.Result, error)
	ListLocations(subjectID uuid.UUID) ([]schema.LocationEvent, error)
	HideLocation(subjectID, locationID uuid.UUID) error
	DeleteLocation(subjectID, locationID uuid.UUID) (*exposure.Result, error)
	GetLocationStats(location string) (*LocationStats, error)

	// Flight channel
	CreateFlight(subjectID uuid.UUID, params FlightParams) (*schema.FlightEvent, *exposure.Result, error)
	ListFlights(subjectID uuid.UUID) ([]schema.FlightEvent, error)
	DeleteFlight(subjectID, flightID uuid.UUID) (*exposure.Result, error)

	// Catalogs
	ListSymptoms() ([]schema.Symptom, error)
	ListDiseases() ([]schema.Disease, error)
	ListCarriers() ([]schema.Flight, error)
}

// TraceStore is an implementation of TraceCore on Postgres.
type TraceStore struct {
	ormDB     *gorm.DB
	geoClient geoinfo.GeoInfo
}

func NewTraceStore(ormDB *gorm.DB, geoClient geoinfo.GeoInfo) *TraceStore {
	return &TraceStore{
		ormDB:     ormDB,
		geoClient: geoClient,
	}
}

// Ping is to check the storage health status
func (s *TraceStore) Ping() error {
	return s.ormDB.DB().Ping()
}
