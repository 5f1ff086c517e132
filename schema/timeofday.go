package schema

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// MinutesPerDay is the wrap point for clock arithmetic.
const MinutesPerDay = 24 * 60

// TimeOfDay is a clock time stored as minutes after midnight. Clock
// arithmetic wraps at midnight, which matters for location visits that
// span it.
type TimeOfDay int

// ParseTimeOfDay accepts "15:04" or "15:04:05"; seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("invalid time of day: %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time of day: %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// AddMinutes shifts the clock time, wrapping past midnight in either
// direction.
func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	shifted := (int(t) + minutes) % MinutesPerDay
	if shifted < 0 {
		shifted += MinutesPerDay
	}
	return TimeOfDay(shifted)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.New("time of day must be a JSON string")
	}
	parsed, err := ParseTimeOfDay(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TimeOfDay) Scan(src interface{}) error {
	v, ok := src.(int64)
	if !ok {
		return errors.New("Type assertion .(int64) failed.")
	}
	*t = TimeOfDay(v)
	return nil
}
