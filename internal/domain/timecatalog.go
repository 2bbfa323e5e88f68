package domain

import (
	"time"

	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/types"
)

// DayType groups weekdays into the three recurring lesson patterns
// the academy schedules by
type DayType string

const (
	DayTypeMonWedFri DayType = "mon_wed_fri"
	DayTypeTueThu    DayType = "tue_thu"
	DayTypeSatSun    DayType = "sat_sun"
)

// Valid reports whether the value is one of the known day types
func (d DayType) Valid() bool {
	switch d {
	case DayTypeMonWedFri, DayTypeTueThu, DayTypeSatSun:
		return true
	}
	return false
}

// DayTypeForDate maps a calendar date to its day-type bucket
func DayTypeForDate(date time.Time) DayType {
	switch date.Weekday() {
	case time.Monday, time.Wednesday, time.Friday:
		return DayTypeMonWedFri
	case time.Tuesday, time.Thursday:
		return DayTypeTueThu
	default:
		return DayTypeSatSun
	}
}

// TimeBand is an immutable bookable band of the day. Bands are defined
// at deploy time and never mutated afterwards.
type TimeBand struct {
	ID              string          // stable identifier, e.g. "0600"
	Label           string          // display label, e.g. "06:00 - 07:00"
	Range           types.TimeRange // "06:00-07:00"
	DefaultCapacity int
}

// TimeCatalog is the static enumeration of time bands, constructed once
// at startup and passed explicitly to the generator and the sweep
type TimeCatalog struct {
	bands []TimeBand
	byID  map[string]TimeBand
}

// NewTimeCatalog builds a catalog from a fixed band list
func NewTimeCatalog(bands []TimeBand) *TimeCatalog {
	byID := make(map[string]TimeBand, len(bands))
	for _, b := range bands {
		byID[b.ID] = b
	}
	return &TimeCatalog{bands: bands, byID: byID}
}

// DefaultTimeCatalog returns the academy's deploy-time band set:
// hourly bands from 06:00 to 12:00 and from 16:00 to 21:00
func DefaultTimeCatalog() *TimeCatalog {
	ranges := []string{
		"06:00-07:00", "07:00-08:00", "08:00-09:00",
		"09:00-10:00", "10:00-11:00", "11:00-12:00",
		"16:00-17:00", "17:00-18:00", "18:00-19:00",
		"19:00-20:00", "20:00-21:00",
	}

	bands := make([]TimeBand, 0, len(ranges))
	for _, r := range ranges {
		tr, err := types.NewTimeRangeFromString(r)
		if err != nil {
			// ranges above are compile-time constants; a parse failure is a programming error
			panic("domain: invalid default time band " + r)
		}
		bands = append(bands, TimeBand{
			ID:              string(tr.Start)[:2] + string(tr.Start)[3:],
			Label:           string(tr.Start) + " - " + string(tr.End),
			Range:           tr,
			DefaultCapacity: 10,
		})
	}

	return NewTimeCatalog(bands)
}

// Bands returns all bands in catalog order
func (c *TimeCatalog) Bands() []TimeBand {
	return c.bands
}

// BandByID looks a band up by its identifier
func (c *TimeCatalog) BandByID(id string) (TimeBand, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// BandByRange looks a band up by its "HH:MM-HH:MM" range
func (c *TimeCatalog) BandByRange(r types.TimeRange) (TimeBand, bool) {
	for _, b := range c.bands {
		if b.Range == r {
			return b, true
		}
	}
	return TimeBand{}, false
}
