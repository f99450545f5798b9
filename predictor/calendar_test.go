package predictor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restockd/config"
	"restockd/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeHolidaySource struct {
	holidays []models.LiveHoliday
	err      error
	calls    int
}

func (f *fakeHolidaySource) HolidaysForYear(year int) ([]models.LiveHoliday, error) {
	f.calls++
	return f.holidays, f.err
}

func newResolver(live HolidaySource) *CalendarResolver {
	return NewCalendarResolver(config.DefaultCalendarTable(), live)
}

func TestResolveExactFestivalMatch(t *testing.T) {
	r := newResolver(nil)

	event := r.Resolve(day("2025-03-31"))
	assert.True(t, event.HasEvent)
	assert.Equal(t, models.EventFestival, event.Type)
	assert.Equal(t, "Hari Raya Aidilfitri", event.EventName)
	assert.Equal(t, 0.50, event.Factor)
	assert.Equal(t, models.SourceConfigured, event.Source)
}

func TestResolvePreFestivalDecay(t *testing.T) {
	r := newResolver(nil)

	// 5-day pre-window before Chinese New Year (2025-01-29, base 0.40).
	// The factor must be monotonically non-decreasing toward the event.
	previous := -1.0
	for daysBefore := 5; daysBefore >= 1; daysBefore-- {
		event := r.Resolve(day("2025-01-29").AddDate(0, 0, -daysBefore))
		require.Equal(t, models.EventPreFestival, event.Type, "day -%d", daysBefore)
		expected := 0.40 * (1 - float64(daysBefore)/5) * 0.7
		assert.InDelta(t, expected, event.Factor, 1e-9)
		assert.GreaterOrEqual(t, event.Factor, previous)
		previous = event.Factor
	}
}

func TestResolvePostFestivalSlump(t *testing.T) {
	r := newResolver(nil)

	event := r.Resolve(day("2025-04-02"))
	assert.Equal(t, models.EventPostFestival, event.Type)
	assert.Equal(t, -0.25, event.Factor)
}

func TestResolveRamadanRamp(t *testing.T) {
	r := newResolver(nil)

	// More than 14 days before the window end: flat factor.
	early := r.Resolve(day("2025-03-02"))
	assert.Equal(t, models.EventRamadan, early.Type)
	assert.Equal(t, 0.10, early.Factor)

	// 10 days to the end: ramping toward Raya.
	late := r.Resolve(day("2025-03-20"))
	require.Equal(t, models.EventRamadan, late.Type)
	assert.InDelta(t, 0.15+(14-10.0)/14*0.20, late.Factor, 1e-9)

	// Raya itself outranks the ramp.
	raya := r.Resolve(day("2025-03-31"))
	assert.Equal(t, models.EventFestival, raya.Type)
}

func TestResolveSchoolHoliday(t *testing.T) {
	r := newResolver(nil)

	event := r.Resolve(day("2025-08-20")) // Wednesday inside the short break
	assert.Equal(t, models.EventSchoolHoliday, event.Type)
	assert.Equal(t, "School Holiday (Short Break)", event.EventName)
	assert.Equal(t, 0.10, event.Factor)
}

func TestResolveFriday(t *testing.T) {
	r := newResolver(nil)

	event := r.Resolve(day("2025-07-18")) // plain Friday in July
	assert.Equal(t, models.EventFriday, event.Type)
	assert.Equal(t, 0.12, event.Factor)
}

func TestResolveNormalDay(t *testing.T) {
	r := newResolver(nil)

	event := r.Resolve(day("2025-07-15")) // Tuesday, nothing on the calendar
	assert.False(t, event.HasEvent)
	assert.Equal(t, models.EventNormal, event.Type)
	assert.Equal(t, 0.0, event.Factor)
}

func TestResolveLiveSourceSupersedesStatic(t *testing.T) {
	live := &fakeHolidaySource{holidays: []models.LiveHoliday{
		{Name: "Nuzul Al-Quran", Date: day("2025-07-15"), Type: "Religious holiday"},
	}}
	r := newResolver(live)

	event := r.Resolve(day("2025-07-15"))
	assert.Equal(t, models.EventFestival, event.Type)
	assert.Equal(t, "Nuzul Al-Quran", event.EventName)
	assert.Equal(t, 0.40, event.Factor)
	assert.Equal(t, models.SourceLiveLookup, event.Source)
}

func TestResolveLiveFailureFallsBackToRules(t *testing.T) {
	live := &fakeHolidaySource{err: errors.New("upstream down")}
	r := newResolver(live)

	// The static chain must still answer: Friday rule applies.
	event := r.Resolve(day("2025-07-18"))
	assert.Equal(t, models.EventFriday, event.Type)
	assert.Equal(t, 0.12, event.Factor)
	assert.Equal(t, 1, live.calls)
}

func TestClassifyLiveHolidayFactors(t *testing.T) {
	cases := []struct {
		name     string
		typeTag  string
		factor   float64
		pre      int
		post     int
	}{
		{"Hari Raya Aidilfitri", "Religious holiday", 0.50, 3, 1},
		{"Thaipusam", "Religious holiday", 0.40, 3, 1},
		{"Merdeka Day", "National holiday", 0.20, 1, 0},
		{"Penang Heritage Day", "Local holiday", 0.15, 1, 0},
	}
	for _, tc := range cases {
		entry := classifyLiveHoliday(models.LiveHoliday{Name: tc.name, Date: day("2025-06-01"), Type: tc.typeTag})
		assert.Equal(t, tc.factor, entry.factor, tc.name)
		assert.Equal(t, tc.pre, entry.pre, tc.name)
		assert.Equal(t, tc.post, entry.post, tc.name)
	}
}
