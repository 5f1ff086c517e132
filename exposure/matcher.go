package exposure

import (
	"time"

	"github.com/google/uuid"

	"github.com/samscloud-io/trace-api/consts"
	"github.com/samscloud-io/trace-api/schema"
)

// Candidate is one exposure-type event reduced to channel-neutral
// terms: who, where (Key), when, and whether it is already flagged.
// The three channels produce candidates through the adapter functions
// below, and a single Rule decides overlap for all of them.
type Candidate struct {
	ID       uuid.UUID
	Subject  uuid.UUID
	Key      string
	Date     schema.Date
	From     schema.TimeOfDay
	To       schema.TimeOfDay
	Timed    bool
	Infected bool
}

// ContactCandidate keys a contact event by the normalized counterpart
// phone number.
func ContactCandidate(e schema.ContactEvent) Candidate {
	return Candidate{
		ID:       e.ID,
		Subject:  e.SubjectID,
		Key:      NormalizePhone(e.PhoneNumber),
		Date:     e.DateContacted,
		Infected: e.IsInfected,
	}
}

// LocationCandidate keys a visit by date plus truncated coordinates and
// carries its time span.
func LocationCandidate(e schema.LocationEvent) Candidate {
	return Candidate{
		ID:       e.ID,
		Subject:  e.SubjectID,
		Key:      e.LocationDate.String() + "|" + CoordinateKey(e.Latitude, e.Longitude),
		Date:     e.LocationDate,
		From:     e.FromTime,
		To:       e.ToTime,
		Timed:    true,
		Infected: e.IsInfected,
	}
}

// FlightCandidate keys a flight event by carrier and flight number;
// co-presence additionally requires the exact journey date, expressed
// by the zero date tolerance of FlightRule.
func FlightCandidate(e schema.FlightEvent) Candidate {
	return Candidate{
		ID:       e.ID,
		Subject:  e.SubjectID,
		Key:      e.FlightID.String() + "|" + e.FlightNo,
		Date:     e.DateJourney,
		Infected: e.IsInfected,
	}
}

// Rule parameterizes overlap for one channel and pass. DateTolerance
// is the number of days either side of the candidate's date that still
// counts (zero means same-day only). TimeDelta, when non-zero, widens
// a time span and requires the other event to fall inside it: by
// default the pool event's span must contain the candidate's start
// time; with CoverSpan set, the candidate's widened span must cover the
// pool event's entire span instead.
type Rule struct {
	DateTolerance int
	TimeDelta     time.Duration
	CoverSpan     bool
}

var (
	// ContactRule matches contacts with the same phone within 15 days.
	ContactRule = Rule{DateTolerance: consts.ONSET_WINDOW_DAYS}

	// FlightRule matches the same flight code on the same day.
	FlightRule = Rule{}

	// LocationReconcileRule is the wide historical band used when a
	// report changes and old visits are re-scanned against everyone
	// else's.
	LocationReconcileRule = Rule{TimeDelta: consts.RECONCILE_TIME_DELTA, CoverSpan: true}

	// LocationTaggingRule is the live tolerance a freshly flagged visit
	// sweeps its co-visitors with.
	LocationTaggingRule = Rule{TimeDelta: consts.TAGGING_MERGE_DELTA, CoverSpan: true}

	// LocationCrossingRule tests a fresh check-in against infected
	// visits.
	LocationCrossingRule = Rule{TimeDelta: consts.CROSSING_TIME_DELTA}
)

// Overlaps reports whether other spatio-temporally overlaps candidate
// under the rule.
func (r Rule) Overlaps(candidate, other Candidate) bool {
	if candidate.Key == "" || candidate.Key != other.Key {
		return false
	}
	if candidate.Date.DaysApart(other.Date) > r.DateTolerance {
		return false
	}
	if r.TimeDelta > 0 && other.Timed {
		if r.CoverSpan {
			return NewTimeBand(candidate.From, candidate.To, r.TimeDelta).
				Covers(other.From, other.To)
		}
		return NewTimeBand(other.From, other.To, r.TimeDelta).Contains(candidate.From)
	}
	return true
}

// Match returns the pool events that overlap the candidate and belong
// to other subjects.
func Match(candidate Candidate, pool []Candidate, r Rule) []Candidate {
	matched := make([]Candidate, 0)
	for _, other := range pool {
		if other.ID == candidate.ID || other.Subject == candidate.Subject {
			continue
		}
		if r.Overlaps(candidate, other) {
			matched = append(matched, other)
		}
	}
	return matched
}

// MatchInfected is Match restricted to already-flagged pool events.
func MatchInfected(candidate Candidate, pool []Candidate, r Rule) []Candidate {
	matched := make([]Candidate, 0)
	for _, other := range Match(candidate, pool, r) {
		if other.Infected {
			matched = append(matched, other)
		}
	}
	return matched
}

// DistinctSubjects deduplicates match owners, preserving order of first
// appearance. Counters are per counterpart, not per event.
func DistinctSubjects(matches []Candidate) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	subjects := make([]uuid.UUID, 0)
	for _, m := range matches {
		if !seen[m.Subject] {
			seen[m.Subject] = true
			subjects = append(subjects, m.Subject)
		}
	}
	return subjects
}
