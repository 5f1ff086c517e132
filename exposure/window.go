package exposure

import (
	"fmt"
	"math"
	"time"

	"github.com/samscloud-io/trace-api/consts"
	"github.com/samscloud-io/trace-api/schema"
)

// DateWindow is an inclusive range of calendar dates.
type DateWindow struct {
	From schema.Date
	To   schema.Date
}

// OnsetWindow is the infectious window around an onset date: 15 days
// either side, both boundaries included.
func OnsetWindow(onset schema.Date) DateWindow {
	return DateWindow{
		From: onset.AddDays(-consts.ONSET_WINDOW_DAYS),
		To:   onset.AddDays(consts.ONSET_WINDOW_DAYS),
	}
}

func (w DateWindow) Contains(d schema.Date) bool {
	return !d.Before(w.From) && !d.After(w.To)
}

// TimeBand is a time-of-day range. When From > To the band crosses
// midnight and is treated as the union of [From, 24:00) and [00:00, To].
type TimeBand struct {
	From schema.TimeOfDay
	To   schema.TimeOfDay
}

// NewTimeBand widens [from, to] by delta on both sides, wrapping at
// midnight.
func NewTimeBand(from, to schema.TimeOfDay, delta time.Duration) TimeBand {
	minutes := int(delta / time.Minute)
	return TimeBand{
		From: from.AddMinutes(-minutes),
		To:   to.AddMinutes(minutes),
	}
}

func (b TimeBand) Contains(t schema.TimeOfDay) bool {
	if b.From <= b.To {
		return t >= b.From && t <= b.To
	}
	// Over midnight
	return t >= b.From || t <= b.To
}

// Covers reports whether an entire [from, to] span lies inside the
// band.
func (b TimeBand) Covers(from, to schema.TimeOfDay) bool {
	return b.Contains(from) && b.Contains(to)
}

// TruncateCoordinate cuts a coordinate to the co-presence granularity,
// truncating toward zero.
func TruncateCoordinate(v float64) float64 {
	scale := math.Pow10(consts.COORDINATE_DIGITS)
	return math.Trunc(v*scale) / scale
}

// CoordinateKey renders a truncated coordinate pair as a stable map
// key.
func CoordinateKey(latitude, longitude float64) string {
	return fmt.Sprintf("%.4f,%.4f", TruncateCoordinate(latitude), TruncateCoordinate(longitude))
}
