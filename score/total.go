package score

const (
	DefaultExposureCoefficient = 0.6
	DefaultSymptomCoefficient  = 0.4
)

// TotalScore combines the channel scores. A confirmed positive report
// overrides everything: the subject is a source, not merely at risk.
func TotalScore(exposureScore, symptomScore float64, positive bool) float64 {
	if positive {
		return 0
	}
	return DefaultExposureCoefficient*exposureScore + DefaultSymptomCoefficient*symptomScore
}

// ScoreColor buckets a score for clients.
// Red:     0 ~ 33
// Yellow: 34 ~ 66
// Green:  67 ~ 100
func ScoreColor(score float64) string {
	switch {
	case score <= 33:
		return "red"
	case score <= 66:
		return "yellow"
	default:
		return "green"
	}
}
