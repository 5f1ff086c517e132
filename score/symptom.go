package score

import (
	"strings"

	"github.com/samscloud-io/trace-api/schema"
)

// DefaultSymptomWeights grades reported symptoms by how strongly they
// indicate infection. Symptoms outside the table count with the
// default weight.
var DefaultSymptomWeights = map[string]float64{
	"fever":               3,
	"dry cough":           2,
	"shortness of breath": 3,
	"loss of taste":       3,
	"loss of smell":       3,
	"fatigue":             1,
	"sore throat":         1,
	"headache":            1,
}

const defaultSymptomWeight = 1

// maxSymptomPenalty caps the total weighted symptom load mapped onto
// the 0-100 scale.
const maxSymptomPenalty = 10

// SymptomScore grades reported symptoms on a 0-100 safety scale.
func SymptomScore(symptoms []schema.Symptom) float64 {
	var penalty float64
	for _, s := range symptoms {
		w, ok := DefaultSymptomWeights[strings.ToLower(s.Name)]
		if !ok {
			w = defaultSymptomWeight
		}
		penalty += w
	}

	if penalty > maxSymptomPenalty {
		penalty = maxSymptomPenalty
	}
	return 100 - 100*penalty/maxSymptomPenalty
}
