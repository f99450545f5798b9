package predictor

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"restockd/config"
	"restockd/models"
)

// HolidaySource supplies live named holidays for a year. Implementations own
// their timeouts and caching; an empty result is a valid answer.
type HolidaySource interface {
	HolidaysForYear(year int) ([]models.LiveHoliday, error)
}

// holidayEntry is one named holiday with its resolved source tag.
type holidayEntry struct {
	date   time.Time
	name   string
	factor float64
	pre    int
	post   int
	source string
}

// CalendarResolver resolves demand-shifting events for a date by layering the
// live holiday source over the static rule tables.
type CalendarResolver struct {
	table *config.CalendarTable
	live  HolidaySource // nil when no live source is configured
}

func NewCalendarResolver(table *config.CalendarTable, live HolidaySource) *CalendarResolver {
	return &CalendarResolver{table: table, live: live}
}

// Resolve returns the calendar event applying to the given date. Rules are
// checked in priority order; the first match wins. The live source can only
// add named holidays; on any live failure the static chain still answers.
func (r *CalendarResolver) Resolve(target time.Time) models.CalendarEvent {
	day := dateOnly(target)
	holidays := r.holidayEntries(day)

	// Exact-date festival match.
	for _, h := range holidays {
		if h.date.Equal(day) {
			return models.CalendarEvent{
				HasEvent:  true,
				EventName: h.name,
				Factor:    h.factor,
				Type:      models.EventFestival,
				Source:    h.source,
			}
		}
	}

	// Proximity windows around each holiday: a discounted linear ramp toward
	// the event, and a fixed post-event slump.
	for _, h := range holidays {
		daysBefore := daysBetween(day, h.date)
		if daysBefore > 0 && daysBefore <= h.pre {
			factor := h.factor * (1 - float64(daysBefore)/float64(h.pre)) * 0.7
			return models.CalendarEvent{
				HasEvent:  true,
				EventName: fmt.Sprintf("%d days before %s", daysBefore, h.name),
				Factor:    factor,
				Type:      models.EventPreFestival,
				Source:    models.SourceCalculated,
			}
		}

		daysAfter := daysBetween(h.date, day)
		if daysAfter > 0 && daysAfter <= h.post {
			return models.CalendarEvent{
				HasEvent:  true,
				EventName: fmt.Sprintf("%d days after %s", daysAfter, h.name),
				Factor:    -0.25,
				Type:      models.EventPostFestival,
				Source:    models.SourceCalculated,
			}
		}
	}

	// Ramadan: flat factor, ramping up over the last 14 days toward Raya.
	for _, period := range r.table.Ramadan {
		if !period.Contains(day) {
			continue
		}
		daysToEnd := daysBetween(day, period.End.Time)
		if daysToEnd <= 14 {
			factor := 0.15 + float64(14-daysToEnd)/14*0.20
			return models.CalendarEvent{
				HasEvent:  true,
				EventName: "Ramadan (approaching Raya)",
				Factor:    factor,
				Type:      models.EventRamadan,
				Source:    models.SourceCalculated,
			}
		}
		return models.CalendarEvent{
			HasEvent:  true,
			EventName: "Ramadan",
			Factor:    0.10,
			Type:      models.EventRamadan,
			Source:    models.SourceRuleBased,
		}
	}

	for _, holiday := range r.table.SchoolHolidays {
		if holiday.Contains(day) {
			return models.CalendarEvent{
				HasEvent:  true,
				EventName: fmt.Sprintf("School Holiday (%s)", holiday.Name),
				Factor:    holiday.Factor,
				Type:      models.EventSchoolHoliday,
				Source:    models.SourceConfigured,
			}
		}
	}

	if day.Weekday() == time.Friday {
		return models.CalendarEvent{
			HasEvent:  true,
			EventName: "Friday (weekend preparation)",
			Factor:    0.12,
			Type:      models.EventFriday,
			Source:    models.SourceRuleBased,
		}
	}

	return models.CalendarEvent{
		EventName: "Normal day",
		Factor:    0.0,
		Type:      models.EventNormal,
		Source:    models.SourceRuleBased,
	}
}

// holidayEntries merges the static holiday table with live holidays around the
// target year, sorted by date so window matching is deterministic.
func (r *CalendarResolver) holidayEntries(day time.Time) []holidayEntry {
	merged := make(map[string]holidayEntry, len(r.table.Holidays))
	for dateStr, h := range r.table.Holidays {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		merged[dateStr] = holidayEntry{
			date:   date,
			name:   h.Name,
			factor: h.Factor,
			pre:    h.PreDays,
			post:   h.PostDays,
			source: models.SourceConfigured,
		}
	}

	if r.live != nil {
		years := []int{day.Year()}
		// Pre-windows can reach across a year boundary.
		if day.Month() == time.December {
			years = append(years, day.Year()+1)
		}
		for _, year := range years {
			live, err := r.live.HolidaysForYear(year)
			if err != nil {
				// Degrade silently to the static chain.
				log.Printf("holiday lookup failed for %d: %v", year, err)
				continue
			}
			for _, lh := range live {
				entry := classifyLiveHoliday(lh)
				merged[lh.Date.Format("2006-01-02")] = entry
			}
		}
	}

	entries := make([]holidayEntry, 0, len(merged))
	for _, e := range merged {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].date.Before(entries[j].date) })
	return entries
}

// classifyLiveHoliday assigns a base factor and proximity windows to a live
// holiday from its type tag: major religious festivals carry the largest
// demand swings, national days a moderate one, anything else a small bump.
func classifyLiveHoliday(lh models.LiveHoliday) holidayEntry {
	entry := holidayEntry{
		date:   dateOnly(lh.Date),
		name:   lh.Name,
		source: models.SourceLiveLookup,
	}

	typeTag := strings.ToLower(lh.Type)
	name := strings.ToLower(lh.Name)
	switch {
	case strings.Contains(name, "hari raya aidilfitri"):
		entry.factor = 0.50
	case strings.Contains(typeTag, "religious"):
		entry.factor = 0.40
	case strings.Contains(typeTag, "national"):
		entry.factor = 0.20
	default:
		entry.factor = 0.15
	}

	if entry.factor >= 0.25 {
		entry.pre, entry.post = 3, 1
	} else {
		entry.pre, entry.post = 1, 0
	}
	return entry
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween is the whole number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}
