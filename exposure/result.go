package exposure

import "github.com/google/uuid"

// Failure records a counterpart whose state could not be updated
// during a propagation pass. The pass continues past it; the caller
// reports the batch as a partial success instead of discarding the
// error.
type Failure struct {
	Counterpart uuid.UUID `json:"counterpart"`
	Err         error     `json:"-"`
	Message     string    `json:"error"`
}

// Result is the outcome of one propagation pass: whether the
// triggering event ended up flagged, which counterparts were linked or
// unlinked, and whose risk flag flipped. NewlyAtRisk drives
// notification dispatch downstream of the committed transaction.
type Result struct {
	Infected    bool        `json:"infected"`
	Linked      []uuid.UUID `json:"linked,omitempty"`
	Unlinked    []uuid.UUID `json:"unlinked,omitempty"`
	NewlyAtRisk []uuid.UUID `json:"newly_at_risk,omitempty"`
	RiskCleared []uuid.UUID `json:"risk_cleared,omitempty"`
	Failures    []Failure   `json:"failures,omitempty"`
}

func NewResult() *Result {
	return &Result{}
}

func (r *Result) AddLinked(counterpart uuid.UUID) {
	r.Linked = append(r.Linked, counterpart)
}

func (r *Result) AddUnlinked(counterpart uuid.UUID) {
	r.Unlinked = append(r.Unlinked, counterpart)
}

func (r *Result) AddNewlyAtRisk(subject uuid.UUID) {
	r.NewlyAtRisk = append(r.NewlyAtRisk, subject)
}

func (r *Result) AddRiskCleared(subject uuid.UUID) {
	r.RiskCleared = append(r.RiskCleared, subject)
}

func (r *Result) Fail(counterpart uuid.UUID, err error) {
	r.Failures = append(r.Failures, Failure{
		Counterpart: counterpart,
		Err:         err,
		Message:     err.Error(),
	})
}

// Failed reports whether any counterpart update was lost.
func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

// Merge folds another pass into this one.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Infected = r.Infected || other.Infected
	r.Linked = append(r.Linked, other.Linked...)
	r.Unlinked = append(r.Unlinked, other.Unlinked...)
	r.NewlyAtRisk = append(r.NewlyAtRisk, other.NewlyAtRisk...)
	r.RiskCleared = append(r.RiskCleared, other.RiskCleared...)
	r.Failures = append(r.Failures, other.Failures...)
}
