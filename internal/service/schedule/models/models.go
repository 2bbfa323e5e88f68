package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
)

// SlotView слот дня с рассчитанной занятостью
type SlotView struct {
	Key         string      `json:"key"`
	Date        string      `json:"date"`
	TimeBandID  string      `json:"timeBandId"`
	BandLabel   string      `json:"bandLabel,omitempty"`
	CategoryID  *string     `json:"categoryId,omitempty"`
	IsBreak     bool        `json:"isBreak"`
	Capacity    int         `json:"capacity"`
	SeatsTaken  int         `json:"seatsTaken"` // участники + неистекшие локи
	SeatsFree   int         `json:"seatsFree"`
	AttendeeIDs []uuid.UUID `json:"attendeeIds"`
	ActiveLocks int         `json:"activeLocks"`
}

// DayScheduleResponse расписание одного дня
type DayScheduleResponse struct {
	Date  string      `json:"date"`
	Slots []*SlotView `json:"slots"`
}

// StudentBookingsResponse брони студента за период
type StudentBookingsResponse struct {
	StudentID uuid.UUID   `json:"studentId"`
	Confirmed []*SlotView `json:"confirmed"`
	Locked    []*SlotView `json:"locked"`
}

// FromDomainSlot строит представление слота на момент времени now
func FromDomainSlot(s *domain.Slot, catalog *domain.TimeCatalog, now time.Time) *SlotView {
	taken := s.SeatsTaken(now)
	free := s.Capacity - taken
	if free < 0 {
		free = 0
	}

	var label string
	if band, ok := catalog.BandByID(s.Key.TimeBandID); ok {
		label = band.Label
	}

	return &SlotView{
		Key:         s.Key.String(),
		Date:        s.Key.Date.Format(domain.DateFormat),
		TimeBandID:  s.Key.TimeBandID,
		BandLabel:   label,
		CategoryID:  s.CategoryID,
		IsBreak:     s.IsBreak,
		Capacity:    s.Capacity,
		SeatsTaken:  taken,
		SeatsFree:   free,
		AttendeeIDs: s.AttendeeIDs,
		ActiveLocks: len(s.ActiveLocks(now)),
	}
}
