package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/types"
)

// ScheduleTemplate is a recurring per-season rule used to generate slots:
// (day type, time range) -> (category, capacity, break flag).
// Templates are hand-authored by staff; deleting one does not cascade to
// slots that were already generated from it.
type ScheduleTemplate struct {
	ID         uuid.UUID
	SeasonID   string
	DayType    DayType
	TimeRange  types.TimeRange // "HH:MM-HH:MM"
	CategoryID *string         // nil when the template marks a break
	Capacity   int
	IsBreak    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Matches reports whether the template applies to the given calendar date
func (t *ScheduleTemplate) Matches(date time.Time) bool {
	return t.DayType == DayTypeForDate(date)
}

// ConflictsWith reports whether two templates violate the season
// invariant: non-break templates with the same day type must not have
// overlapping time ranges. Break templates never conflict.
func (t *ScheduleTemplate) ConflictsWith(other *ScheduleTemplate) bool {
	if t.IsBreak || other.IsBreak {
		return false
	}
	if t.SeasonID != other.SeasonID || t.DayType != other.DayType {
		return false
	}
	return t.TimeRange.Overlaps(other.TimeRange)
}

// TemplatesFilter filter for querying season templates
type TemplatesFilter struct {
	SeasonID string
	DayType  *DayType // optional
}
