package domain

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyEntry is one fixed weekly lesson in a student's standing schedule,
// used by the rule-based generator to pre-fill attendees
type WeeklyEntry struct {
	Weekday    time.Weekday `json:"weekday"`
	TimeBandID string       `json:"timeBandId"`
}

// Student is the booking core's view of a student record: the credit
// counter and debt flag it reads and writes, plus the standing weekly
// schedule. Enrollment data beyond this lives with the directory screens.
type Student struct {
	ID               uuid.UUID
	FullName         string
	BirthYear        int
	RemainingCredits int
	HasDebt          bool
	IsActive         bool
	WeeklySchedule   []WeeklyEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBook reports whether the student passes the booking gate:
// no outstanding debt and at least one remaining credit
func (s *Student) CanBook() bool {
	return !s.HasDebt && s.RemainingCredits > 0
}

// AttendsBand reports whether the student's fixed weekly schedule
// includes the given weekday and band
func (s *Student) AttendsBand(weekday time.Weekday, timeBandID string) bool {
	for _, e := range s.WeeklySchedule {
		if e.Weekday == weekday && e.TimeBandID == timeBandID {
			return true
		}
	}
	return false
}

// AgeIn returns the student's age in the given year
func (s *Student) AgeIn(year int) int {
	return year - s.BirthYear
}
