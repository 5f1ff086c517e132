package store

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/stretchr/testify/suite"
	"googlemaps.github.io/maps"

	"github.com/samscloud-io/trace-api/external/mocks"
	"github.com/samscloud-io/trace-api/schema"
)

var testModels = []interface{}{
	schema.Subject{},
	schema.Report{},
	schema.Symptom{},
	schema.Disease{},
	schema.Testing{},
	schema.Vaccine{},
	schema.ContactEvent{},
	schema.LocationEvent{},
	schema.LocationTagging{},
	schema.Flight{},
	schema.FlightEvent{},
	schema.ExposureLink{},
}

type TraceStoreTestSuite struct {
	suite.Suite
	connURI string
	ormDB   *gorm.DB
	store   *TraceStore
}

func NewTraceStoreTestSuite(connURI string) *TraceStoreTestSuite {
	return &TraceStoreTestSuite{
		connURI: connURI,
	}
}

func (s *TraceStoreTestSuite) SetupSuite() {
	ormDB, err := gorm.Open("postgres", s.connURI)
	if err != nil {
		s.T().Skipf("connect test database: %s", err)
	}
	s.ormDB = ormDB

	if err := ormDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		s.T().Fatalf("create uuid extension: %s", err)
	}
	if err := ormDB.DropTableIfExists(testModels...).Error; err != nil {
		s.T().Fatalf("drop tables: %s", err)
	}
	if err := ormDB.AutoMigrate(testModels...).Error; err != nil {
		s.T().Fatalf("migrate tables: %s", err)
	}

	ctrl := gomock.NewController(s.T())
	geoClientMock := mocks.NewMockGeoInfo(ctrl)
	geoClientMock.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return([]maps.GeocodingResult{}, nil).AnyTimes()

	s.store = NewTraceStore(ormDB, geoClientMock)
}

func (s *TraceStoreTestSuite) SetupTest() {
	for _, m := range testModels {
		s.NoError(s.ormDB.Delete(m).Error)
	}
}

func (s *TraceStoreTestSuite) TearDownSuite() {
	if s.ormDB != nil {
		s.NoError(s.ormDB.Close())
	}
}

func (s *TraceStoreTestSuite) registerSubject(name, phone string) *schema.Subject {
	subject, err := s.store.CreateSubject(SubjectParams{
		Name:        name,
		PhoneNumber: phone,
	})
	s.Require().NoError(err)
	return subject
}

func (s *TraceStoreTestSuite) reload(subject *schema.Subject) *schema.Subject {
	reloaded, err := s.store.GetSubject(subject.ID)
	s.Require().NoError(err)
	return reloaded
}

func (s *TraceStoreTestSuite) TestPositiveReportPropagatesToContact() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	onset := schema.NewDate(2021, 3, 1)
	_, _, err := s.store.CreateContact(alice.ID, ContactParams{
		Name:          "Bob",
		PhoneNumber:   "+15550100002",
		DateContacted: onset.AddDays(3),
	})
	s.Require().NoError(err)

	_, result, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)
	s.Contains(result.NewlyAtRisk, bob.ID)

	bob = s.reload(bob)
	s.Equal(1, bob.ContactExposure)
	s.True(bob.RiskLevel)

	alice = s.reload(alice)
	s.True(alice.RiskLevel)
}

func (s *TraceStoreTestSuite) TestNegativeFlipRetractsExposure() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	onset := schema.NewDate(2021, 3, 1)
	event, _, err := s.store.CreateContact(alice.ID, ContactParams{
		PhoneNumber:   "+15550100002",
		DateContacted: onset.AddDays(1),
	})
	s.Require().NoError(err)

	_, _, err = s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)
	s.Equal(1, s.reload(bob).ContactExposure)

	_, result, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult: schema.TestNegative,
	})
	s.Require().NoError(err)
	s.Contains(result.RiskCleared, bob.ID)

	bob = s.reload(bob)
	s.Equal(0, bob.ContactExposure)
	s.False(bob.RiskLevel)

	alice = s.reload(alice)
	s.False(alice.RiskLevel)

	var reloadedEvent schema.ContactEvent
	s.NoError(s.ormDB.Where("id = ?", event.ID).First(&reloadedEvent).Error)
	s.False(reloadedEvent.IsInfected)
}

func (s *TraceStoreTestSuite) TestDistinctCounterpartCountsOnce() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	onset := schema.NewDate(2021, 3, 1)
	for _, days := range []int{1, 5} {
		_, _, err := s.store.CreateContact(alice.ID, ContactParams{
			PhoneNumber:   "+15550100002",
			DateContacted: onset.AddDays(days),
		})
		s.Require().NoError(err)
	}

	_, _, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)

	s.Equal(1, s.reload(bob).ContactExposure)
}

func (s *TraceStoreTestSuite) TestContactCrossingOnCreate() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	onset := schema.NewDate(2021, 3, 1)
	_, _, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)

	event, result, err := s.store.CreateContact(bob.ID, ContactParams{
		PhoneNumber:   "+15550100001",
		DateContacted: onset.AddDays(2),
	})
	s.Require().NoError(err)

	s.True(event.IsInfected)
	s.Contains(result.NewlyAtRisk, bob.ID)

	bob = s.reload(bob)
	s.Equal(1, bob.ContactExposure)
	s.True(bob.RiskLevel)
}

func (s *TraceStoreTestSuite) TestContactSharedPhoneCrossing() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	onset := schema.NewDate(2021, 3, 1)
	_, _, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)

	// both log the same unregistered third number, differently formatted
	_, _, err = s.store.CreateContact(alice.ID, ContactParams{
		Name:          "Carol",
		PhoneNumber:   "+15550102000",
		DateContacted: onset.AddDays(3),
	})
	s.Require().NoError(err)

	event, result, err := s.store.CreateContact(bob.ID, ContactParams{
		Name:          "Carol",
		PhoneNumber:   "+1 555-010-2000",
		DateContacted: onset.AddDays(10),
	})
	s.Require().NoError(err)

	s.True(event.IsInfected)
	s.Contains(result.NewlyAtRisk, bob.ID)

	bob = s.reload(bob)
	s.Equal(1, bob.ContactExposure)
	s.True(bob.RiskLevel)
}

func (s *TraceStoreTestSuite) TestContactOutsideWindowDoesNotPropagate() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	onset := schema.NewDate(2021, 3, 1)
	_, _, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)

	event, _, err := s.store.CreateContact(bob.ID, ContactParams{
		PhoneNumber:   "+15550100001",
		DateContacted: onset.AddDays(16),
	})
	s.Require().NoError(err)

	s.False(event.IsInfected)
	s.Equal(0, s.reload(bob).ContactExposure)
}

func (s *TraceStoreTestSuite) TestTaggingMergeIdempotent() {
	bob := s.registerSubject("Bob", "+15550100002")

	params := LocationParams{
		Location:     "Downtown Cafe",
		LocationDate: schema.NewDate(2021, 5, 5),
		Latitude:     40.743329,
		Longitude:    -74.032459,
		FromTime:     schema.TimeOfDay(14 * 60),
		ToTime:       schema.TimeOfDay(14*60 + 10),
	}

	first, _, err := s.store.CreateLocation(bob.ID, params)
	s.Require().NoError(err)

	// consecutive ping extending the stay
	params.FromTime = schema.TimeOfDay(14*60 + 10)
	params.ToTime = schema.TimeOfDay(14*60 + 20)
	second, _, err := s.store.CreateLocation(bob.ID, params)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal(schema.TimeOfDay(14*60+20), second.ToTime)

	visits, err := s.store.ListLocations(bob.ID)
	s.Require().NoError(err)
	s.Len(visits, 1)
	s.Len(visits[0].Taggings, 2)
}

func (s *TraceStoreTestSuite) TestTaggingMergeOutOfOrderPing() {
	bob := s.registerSubject("Bob", "+15550100002")

	params := LocationParams{
		Location:     "Downtown Cafe",
		LocationDate: schema.NewDate(2021, 5, 5),
		Latitude:     40.743329,
		Longitude:    -74.032459,
		FromTime:     schema.TimeOfDay(14 * 60),
		ToTime:       schema.TimeOfDay(15 * 60),
	}
	first, _, err := s.store.CreateLocation(bob.ID, params)
	s.Require().NoError(err)

	// a ping delivered late, from before the visit began, still folds in
	params.FromTime = schema.TimeOfDay(13*60 + 30)
	params.ToTime = schema.TimeOfDay(13*60 + 50)
	second, _, err := s.store.CreateLocation(bob.ID, params)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal(schema.TimeOfDay(15*60), second.ToTime)

	visits, err := s.store.ListLocations(bob.ID)
	s.Require().NoError(err)
	s.Len(visits, 1)
	s.Len(visits[0].Taggings, 2)
}

func (s *TraceStoreTestSuite) TestReportReconcilesCoLocatedVisit() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	day := schema.NewDate(2021, 5, 5)
	bobVisit, _, err := s.store.CreateLocation(bob.ID, LocationParams{
		Location:     "Downtown Cafe",
		LocationDate: day,
		Latitude:     40.743301,
		Longitude:    -74.032401,
		FromTime:     schema.TimeOfDay(12 * 60),
		ToTime:       schema.TimeOfDay(13*60 + 30),
	})
	s.Require().NoError(err)

	_, _, err = s.store.CreateLocation(alice.ID, LocationParams{
		Location:     "Downtown Cafe",
		LocationDate: day,
		Latitude:     40.743329,
		Longitude:    -74.032459,
		FromTime:     schema.TimeOfDay(14 * 60),
		ToTime:       schema.TimeOfDay(15 * 60),
	})
	s.Require().NoError(err)
	s.Equal(0, s.reload(bob).LocationExposure)

	onset := schema.NewDate(2021, 5, 1)
	_, result, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)
	s.Contains(result.NewlyAtRisk, bob.ID)

	bob = s.reload(bob)
	s.Equal(1, bob.LocationExposure)
	s.True(bob.RiskLevel)

	var reloadedVisit schema.LocationEvent
	s.NoError(s.ormDB.Where("id = ?", bobVisit.ID).First(&reloadedVisit).Error)
	s.True(reloadedVisit.IsInfected)

	contacts, err := s.store.ListContacts(bob.ID)
	s.Require().NoError(err)
	s.Require().Len(contacts, 1)
	s.True(contacts[0].IsTagged)
	s.Equal(alice.ID, *contacts[0].CounterpartID)
}

func (s *TraceStoreTestSuite) TestReportPropagatesToSharedFlight() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	day := schema.NewDate(2021, 4, 3)
	bobFlight, _, err := s.store.CreateFlight(bob.ID, FlightParams{
		Carrier:     "American Airlines",
		FlightNo:    "AA100",
		DateJourney: day,
	})
	s.Require().NoError(err)

	_, _, err = s.store.CreateFlight(alice.ID, FlightParams{
		Carrier:     "American Airlines",
		FlightNo:    "AA100",
		DateJourney: day,
	})
	s.Require().NoError(err)
	s.Equal(0, s.reload(bob).FlightExposure)

	onset := schema.NewDate(2021, 4, 1)
	_, result, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)
	s.Contains(result.NewlyAtRisk, bob.ID)

	bob = s.reload(bob)
	s.Equal(1, bob.FlightExposure)
	s.True(bob.RiskLevel)

	var reloadedFlight schema.FlightEvent
	s.NoError(s.ormDB.Where("id = ?", bobFlight.ID).First(&reloadedFlight).Error)
	s.True(reloadedFlight.IsInfected)
}

func (s *TraceStoreTestSuite) TestLocationCrossingLinksAndTags() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	onset := schema.NewDate(2021, 5, 1)
	_, _, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)

	day := schema.NewDate(2021, 5, 5)
	_, _, err = s.store.CreateLocation(alice.ID, LocationParams{
		Location:     "Downtown Cafe",
		LocationDate: day,
		Latitude:     40.743329,
		Longitude:    -74.032459,
		FromTime:     schema.TimeOfDay(14 * 60),
		ToTime:       schema.TimeOfDay(14*60 + 30),
	})
	s.Require().NoError(err)

	visit, result, err := s.store.CreateLocation(bob.ID, LocationParams{
		Location:     "Downtown Cafe",
		LocationDate: day,
		Latitude:     40.743301,
		Longitude:    -74.032401,
		FromTime:     schema.TimeOfDay(14*60 + 35),
		ToTime:       schema.TimeOfDay(14*60 + 50),
	})
	s.Require().NoError(err)

	s.True(visit.IsInfected)
	s.Contains(result.NewlyAtRisk, bob.ID)

	bob = s.reload(bob)
	s.Equal(1, bob.LocationExposure)
	s.True(bob.RiskLevel)

	// co-presence surfaces in the contact list as a tagged entry
	contacts, err := s.store.ListContacts(bob.ID)
	s.Require().NoError(err)
	s.Require().Len(contacts, 1)
	s.True(contacts[0].IsTagged)
	s.Equal(alice.ID, *contacts[0].CounterpartID)
	s.Equal(1, bob.ContactExposure)
}

func (s *TraceStoreTestSuite) TestDeleteContactRoundTrip() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	onset := schema.NewDate(2021, 3, 1)
	_, _, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)

	event, _, err := s.store.CreateContact(bob.ID, ContactParams{
		PhoneNumber:   "+15550100001",
		DateContacted: onset.AddDays(2),
	})
	s.Require().NoError(err)
	s.Equal(1, s.reload(bob).ContactExposure)

	result, err := s.store.DeleteContact(bob.ID, event.ID)
	s.Require().NoError(err)
	s.Contains(result.RiskCleared, bob.ID)

	bob = s.reload(bob)
	s.Equal(0, bob.ContactExposure)
	s.False(bob.RiskLevel)
}

func (s *TraceStoreTestSuite) TestFlightCoPresence() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	onset := schema.NewDate(2021, 4, 1)
	_, _, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)

	day := onset.AddDays(2)
	_, _, err = s.store.CreateFlight(alice.ID, FlightParams{
		Carrier:     "American Airlines",
		FlightNo:    "AA100",
		DateJourney: day,
	})
	s.Require().NoError(err)

	event, result, err := s.store.CreateFlight(bob.ID, FlightParams{
		Carrier:     "American Airlines",
		FlightNo:    "AA100",
		DateJourney: day,
	})
	s.Require().NoError(err)

	s.True(event.IsInfected)
	s.Contains(result.NewlyAtRisk, bob.ID)
	s.Equal(1, s.reload(bob).FlightExposure)
}

func (s *TraceStoreTestSuite) TestDeleteSubjectRetractsExposure() {
	alice := s.registerSubject("Alice", "+15550100001")
	bob := s.registerSubject("Bob", "+15550100002")

	onset := schema.NewDate(2021, 3, 1)
	_, _, err := s.store.SubmitReport(alice.ID, ReportParams{
		TestResult:  schema.TestPositive,
		DataStarted: &onset,
	})
	s.Require().NoError(err)

	event, _, err := s.store.CreateContact(bob.ID, ContactParams{
		PhoneNumber:   "+15550100001",
		DateContacted: onset.AddDays(2),
	})
	s.Require().NoError(err)
	s.Equal(1, s.reload(bob).ContactExposure)

	result, err := s.store.DeleteSubject(alice.ID)
	s.Require().NoError(err)
	s.Contains(result.RiskCleared, bob.ID)

	bob = s.reload(bob)
	s.Equal(0, bob.ContactExposure)
	s.False(bob.RiskLevel)

	var reloadedEvent schema.ContactEvent
	s.NoError(s.ormDB.Where("id = ?", event.ID).First(&reloadedEvent).Error)
	s.False(reloadedEvent.IsInfected)

	var links int
	s.NoError(s.ormDB.Model(schema.ExposureLink{}).Count(&links).Error)
	s.Equal(0, links)
}

func (s *TraceStoreTestSuite) TestCounterClampAtZero() {
	bob := s.registerSubject("Bob", "+15550100002")

	s.NoError(adjustExposure(s.ormDB, bob.ID, schema.ChannelContact, -1))
	s.Equal(0, s.reload(bob).ContactExposure)
}

func (s *TraceStoreTestSuite) TestPhoneNumberTaken() {
	s.registerSubject("Alice", "+15550100001")

	_, err := s.store.CreateSubject(SubjectParams{
		Name:        "Mallory",
		PhoneNumber: "+1 555-010-0001",
	})
	s.Equal(ErrPhoneNumberTaken, err)
}

func TestTraceStoreTestSuite(t *testing.T) {
	suite.Run(t, NewTraceStoreTestSuite(
		"postgres://postgres@127.0.0.1:5432/trace-test?sslmode=disable"))
}
