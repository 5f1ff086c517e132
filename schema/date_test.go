package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateDaysApart(t *testing.T) {
	d := NewDate(2021, time.March, 10)

	assert.Equal(t, 0, d.DaysApart(d))
	assert.Equal(t, 15, d.DaysApart(d.AddDays(15)))
	assert.Equal(t, 15, d.DaysApart(d.AddDays(-15)))
	assert.Equal(t, 3, d.DaysApart(NewDate(2021, time.March, 13)))
}

func TestDateAddDaysCrossesMonth(t *testing.T) {
	d := NewDate(2021, time.February, 27)
	assert.Equal(t, "2021-03-02", d.AddDays(3).String())
	assert.Equal(t, "2021-01-31", d.AddDays(-27).String())
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2021, time.March, 1)

	b, err := json.Marshal(d)
	assert.Nil(t, err)
	assert.Equal(t, `"2021-03-01"`, string(b))

	var parsed Date
	err = json.Unmarshal([]byte(`"2021-03-01"`), &parsed)
	assert.Nil(t, err)
	assert.True(t, parsed.Equal(d))

	err = json.Unmarshal([]byte(`20210301`), &parsed)
	assert.NotNil(t, err)
}

func TestParseTimeOfDay(t *testing.T) {
	parsed, err := ParseTimeOfDay("09:30")
	assert.Nil(t, err)
	assert.Equal(t, TimeOfDay(9*60+30), parsed)

	parsed, err = ParseTimeOfDay("23:59:59")
	assert.Nil(t, err)
	assert.Equal(t, TimeOfDay(23*60+59), parsed)

	_, err = ParseTimeOfDay("24:00")
	assert.NotNil(t, err)
	_, err = ParseTimeOfDay("noon")
	assert.NotNil(t, err)
}

func TestTimeOfDayWrapsAtMidnight(t *testing.T) {
	late, _ := ParseTimeOfDay("23:55")
	early, _ := ParseTimeOfDay("00:05")

	assert.Equal(t, early, late.AddMinutes(10))
	assert.Equal(t, late, early.AddMinutes(-10))
	assert.Equal(t, "23:55", early.AddMinutes(-10).String())
}
