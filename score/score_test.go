package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samscloud-io/trace-api/schema"
)

func TestExposureScore(t *testing.T) {
	clean := schema.Subject{}
	assert.Equal(t, float64(100), ExposureScore(&clean))

	oneContact := schema.Subject{ContactExposure: 1}
	assert.Less(t, ExposureScore(&oneContact), float64(100))

	saturated := schema.Subject{
		ContactExposure:  100,
		LocationExposure: 100,
		FlightExposure:   100,
	}
	assert.Equal(t, float64(0), ExposureScore(&saturated))

	// contact channel weighs more than flight
	contact := schema.Subject{ContactExposure: 2}
	flight := schema.Subject{FlightExposure: 2}
	assert.Less(t, ExposureScore(&contact), ExposureScore(&flight))
}

func TestSymptomScore(t *testing.T) {
	assert.Equal(t, float64(100), SymptomScore(nil))

	mild := []schema.Symptom{{Name: "Headache"}}
	severe := []schema.Symptom{{Name: "Fever"}, {Name: "Shortness of Breath"}}
	assert.Less(t, SymptomScore(severe), SymptomScore(mild))

	// unknown symptoms still count with the default weight
	custom := []schema.Symptom{{Name: "itchy elbow"}}
	assert.Less(t, SymptomScore(custom), float64(100))

	many := make([]schema.Symptom, 20)
	for i := range many {
		many[i] = schema.Symptom{Name: "fever"}
	}
	assert.Equal(t, float64(0), SymptomScore(many))
}

func TestTotalScore(t *testing.T) {
	assert.Equal(t, float64(100), TotalScore(100, 100, false))
	assert.Equal(t, float64(0), TotalScore(100, 100, true))
	assert.Equal(t, float64(60), TotalScore(100, 0, false))
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, "red", ScoreColor(0))
	assert.Equal(t, "red", ScoreColor(33))
	assert.Equal(t, "yellow", ScoreColor(50))
	assert.Equal(t, "green", ScoreColor(67))
	assert.Equal(t, "green", ScoreColor(100))
}
