package exposure

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/samscloud-io/trace-api/schema"
)

func contact(subject uuid.UUID, phone string, date schema.Date, infected bool) Candidate {
	return ContactCandidate(schema.ContactEvent{
		ID:            uuid.New(),
		SubjectID:     subject,
		PhoneNumber:   phone,
		DateContacted: date,
		IsInfected:    infected,
	})
}

func visit(subject uuid.UUID, date schema.Date, lat, lng float64, from, to schema.TimeOfDay, infected bool) Candidate {
	return LocationCandidate(schema.LocationEvent{
		ID:           uuid.New(),
		SubjectID:    subject,
		LocationDate: date,
		Latitude:     TruncateCoordinate(lat),
		Longitude:    TruncateCoordinate(lng),
		FromTime:     from,
		ToTime:       to,
		IsInfected:   infected,
	})
}

func TestMatchContactWindow(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	onset := schema.NewDate(2021, 3, 1)

	candidate := contact(a, "+1 555-010-2000", onset, false)
	pool := []Candidate{
		contact(b, "15550102000", onset.AddDays(15), true),  // boundary, included
		contact(b, "15550102000", onset.AddDays(16), true),  // out of window
		contact(b, "15550109999", onset, true),              // different phone
		contact(a, "15550102000", onset, true),              // own event, skipped
	}

	matched := Match(candidate, pool, ContactRule)
	assert.Equal(t, 1, len(matched))
	assert.Equal(t, b, matched[0].Subject)
}

func TestMatchFlightExactDate(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	carrier := uuid.New()
	day := schema.NewDate(2021, 4, 2)

	candidate := FlightCandidate(schema.FlightEvent{
		ID: uuid.New(), SubjectID: a, FlightID: carrier, FlightNo: "AA100", DateJourney: day,
	})
	pool := []Candidate{
		FlightCandidate(schema.FlightEvent{
			ID: uuid.New(), SubjectID: b, FlightID: carrier, FlightNo: "AA100", DateJourney: day, IsInfected: true,
		}),
		FlightCandidate(schema.FlightEvent{
			ID: uuid.New(), SubjectID: b, FlightID: carrier, FlightNo: "AA100", DateJourney: day.AddDays(1), IsInfected: true,
		}),
		FlightCandidate(schema.FlightEvent{
			ID: uuid.New(), SubjectID: b, FlightID: carrier, FlightNo: "AA200", DateJourney: day, IsInfected: true,
		}),
	}

	matched := MatchInfected(candidate, pool, FlightRule)
	assert.Equal(t, 1, len(matched))
}

func TestMatchLocationCrossingBand(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	day := schema.NewDate(2021, 5, 5)

	candidate := visit(a, day, 40.743329, -74.032459, schema.TimeOfDay(14*60), schema.TimeOfDay(14*60+30), false)
	pool := []Candidate{
		// ends 6 minutes before the candidate arrives, inside the 8 minute band
		visit(b, day, 40.743301, -74.032401, schema.TimeOfDay(13*60), schema.TimeOfDay(14*60-6), true),
		// ends 20 minutes before, outside the band
		visit(b, day, 40.743301, -74.032401, schema.TimeOfDay(13*60), schema.TimeOfDay(14*60-20), true),
		// same time span, different block
		visit(b, day, 40.753301, -74.032401, schema.TimeOfDay(14*60), schema.TimeOfDay(14*60+30), true),
	}

	matched := MatchInfected(candidate, pool, LocationCrossingRule)
	assert.Equal(t, 1, len(matched))
}

func TestMatchLocationReconcileCoversSpan(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	day := schema.NewDate(2021, 5, 5)

	// the infected visit is the candidate; its span widened by 3 hours
	// must cover the whole of the other visit
	candidate := visit(a, day, 40.743329, -74.032459, schema.TimeOfDay(14*60), schema.TimeOfDay(15*60), true)
	pool := []Candidate{
		// 12:00-13:30, inside [11:00, 18:00]
		visit(b, day, 40.743301, -74.032401, schema.TimeOfDay(12*60), schema.TimeOfDay(13*60+30), false),
		// starts at 10:30, before the widened span opens
		visit(b, day, 40.743301, -74.032401, schema.TimeOfDay(10*60+30), schema.TimeOfDay(12*60), false),
	}

	matched := Match(candidate, pool, LocationReconcileRule)
	assert.Equal(t, 1, len(matched))
	assert.Equal(t, schema.TimeOfDay(12*60), matched[0].From)
}

func TestMatchLocationOverMidnight(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	day := schema.NewDate(2021, 5, 5)

	// visit crossing midnight: 23:30-00:30; another at 23:45-00:10 must match
	candidate := visit(a, day, 40.743329, -74.032459, schema.TimeOfDay(23*60+45), schema.TimeOfDay(10), false)
	pool := []Candidate{
		visit(b, day, 40.743329, -74.032459, schema.TimeOfDay(23*60+30), schema.TimeOfDay(30), true),
	}

	matched := MatchInfected(candidate, pool, LocationCrossingRule)
	assert.Equal(t, 1, len(matched))
}

func TestDistinctSubjects(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	day := schema.NewDate(2021, 3, 10)

	matches := []Candidate{
		contact(a, "15550102000", day, true),
		contact(a, "15550102000", day.AddDays(1), true),
		contact(b, "15550102000", day, true),
	}

	subjects := DistinctSubjects(matches)
	assert.Equal(t, 2, len(subjects))
	assert.Equal(t, a, subjects[0])
	assert.Equal(t, b, subjects[1])
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"+1 555-010-2000", "15550102000"},
		{"+15550102000", "15550102000"},
		{"(555) 010 2000", "5550102000"},
		{"5550102000", "5550102000"},
		{"", ""},
	}
	for _, c := range cases {
		if NormalizePhone(c.in) != c.expected {
			t.Fatalf("normalize %q: expected %q got %q", c.in, c.expected, NormalizePhone(c.in))
		}
	}
}
