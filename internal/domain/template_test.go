package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/types"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/ptr"
)

func mkTemplate(t *testing.T, seasonID string, dayType DayType, timeRange string, isBreak bool) *ScheduleTemplate {
	t.Helper()
	tr, err := types.NewTimeRangeFromString(timeRange)
	require.NoError(t, err)
	tmpl := &ScheduleTemplate{
		SeasonID:  seasonID,
		DayType:   dayType,
		TimeRange: tr,
		Capacity:  10,
		IsBreak:   isBreak,
	}
	if !isBreak {
		tmpl.CategoryID = ptr.Ptr("kids")
	}
	return tmpl
}

func TestScheduleTemplate_Matches(t *testing.T) {
	tmpl := mkTemplate(t, "2026-2027", DayTypeMonWedFri, "06:00-07:00", false)

	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	assert.True(t, tmpl.Matches(monday))
	assert.False(t, tmpl.Matches(tuesday))
}

func TestScheduleTemplate_ConflictsWith(t *testing.T) {
	base := mkTemplate(t, "2026-2027", DayTypeMonWedFri, "06:00-08:00", false)

	overlapping := mkTemplate(t, "2026-2027", DayTypeMonWedFri, "07:00-09:00", false)
	assert.True(t, base.ConflictsWith(overlapping))
	assert.True(t, overlapping.ConflictsWith(base))

	// Смежные диапазоны не пересекаются
	adjacent := mkTemplate(t, "2026-2027", DayTypeMonWedFri, "08:00-09:00", false)
	assert.False(t, base.ConflictsWith(adjacent))

	// Другой тип дня или сезон конфликта не создаёт
	otherDay := mkTemplate(t, "2026-2027", DayTypeTueThu, "06:00-08:00", false)
	assert.False(t, base.ConflictsWith(otherDay))
	otherSeason := mkTemplate(t, "2027-2028", DayTypeMonWedFri, "06:00-08:00", false)
	assert.False(t, base.ConflictsWith(otherSeason))

	// Перерывы не конфликтуют ни с чем
	breakTmpl := mkTemplate(t, "2026-2027", DayTypeMonWedFri, "06:00-08:00", true)
	assert.False(t, base.ConflictsWith(breakTmpl))
	assert.False(t, breakTmpl.ConflictsWith(base))
}
