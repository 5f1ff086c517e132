package exposure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/samscloud-io/trace-api/schema"
)

func TestOnsetWindowBoundary(t *testing.T) {
	onset := schema.NewDate(2021, 3, 1)
	w := OnsetWindow(onset)

	assert.True(t, w.Contains(onset))
	assert.True(t, w.Contains(onset.AddDays(15)))
	assert.True(t, w.Contains(onset.AddDays(-15)))
	assert.False(t, w.Contains(onset.AddDays(16)))
	assert.False(t, w.Contains(onset.AddDays(-16)))
}

func TestTimeBandContains(t *testing.T) {
	mustTime := func(s string) schema.TimeOfDay {
		v, err := schema.ParseTimeOfDay(s)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	cases := []struct {
		from     string
		to       string
		delta    time.Duration
		probe    string
		expected bool
	}{
		{"10:00", "11:00", 0, "10:30", true},
		{"10:00", "11:00", 0, "11:01", false},
		{"10:00", "11:00", 10 * time.Minute, "11:05", true},
		{"10:00", "11:00", 10 * time.Minute, "09:49", false},
		// Over midnight
		{"23:30", "00:30", 0, "23:45", true},
		{"23:30", "00:30", 0, "00:10", true},
		{"23:30", "00:30", 0, "01:00", false},
		{"23:30", "00:30", 0, "12:00", false},
		// Delta pushes the band across midnight
		{"23:55", "23:59", 8 * time.Minute, "00:05", true},
		{"00:01", "00:10", 8 * time.Minute, "23:55", true},
	}

	for _, c := range cases {
		band := NewTimeBand(mustTime(c.from), mustTime(c.to), c.delta)
		if band.Contains(mustTime(c.probe)) != c.expected {
			t.Fatalf("band %s-%s delta %s probe %s: expected %v",
				c.from, c.to, c.delta, c.probe, c.expected)
		}
	}
}

func TestTimeBandCovers(t *testing.T) {
	band := TimeBand{From: schema.TimeOfDay(23*60 + 30), To: schema.TimeOfDay(30)}

	assert.True(t, band.Covers(schema.TimeOfDay(23*60+45), schema.TimeOfDay(10)))
	assert.False(t, band.Covers(schema.TimeOfDay(23*60+45), schema.TimeOfDay(60)))
}

func TestTruncateCoordinate(t *testing.T) {
	cases := []struct {
		value    float64
		expected float64
	}{
		{40.743329, 40.7433},
		{-74.032459, -74.0324},
		{0, 0},
		{12.3, 12.3},
	}
	for _, c := range cases {
		if TruncateCoordinate(c.value) != c.expected {
			t.Fatalf("truncate %f: expected %f got %f", c.value, c.expected, TruncateCoordinate(c.value))
		}
	}
}

func TestCoordinateKey(t *testing.T) {
	assert.Equal(t, CoordinateKey(40.743329, -74.032459), CoordinateKey(40.743301, -74.032401))
	assert.NotEqual(t, CoordinateKey(40.743329, -74.032459), CoordinateKey(40.744329, -74.032459))
}
