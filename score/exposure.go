package score

import (
	"github.com/samscloud-io/trace-api/schema"
)

const (
	ContactExposureWeight  = 1.0
	LocationExposureWeight = 0.8
	FlightExposureWeight   = 0.6

	// counters above this contribute no additional penalty
	exposureCap = 5
)

// ExposureScore grades a subject's exposure history on a 0-100 safety
// scale: 100 means no known exposure, each linked counterpart pulls the
// score down by its channel weight until the cap.
func ExposureScore(subject *schema.Subject) float64 {
	maxPenalty := (ContactExposureWeight + LocationExposureWeight + FlightExposureWeight) * exposureCap

	penalty := ContactExposureWeight*capped(subject.ContactExposure) +
		LocationExposureWeight*capped(subject.LocationExposure) +
		FlightExposureWeight*capped(subject.FlightExposure)

	return 100 - 100*penalty/maxPenalty
}

func capped(count int) float64 {
	if count > exposureCap {
		return float64(exposureCap)
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
