package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lock is a time-boxed, non-committed reservation of one seat in a slot.
// Expired locks are filtered out on read, never actively deleted.
type Lock struct {
	StudentID uuid.UUID `json:"studentId"`
	TempName  *string   `json:"tempName,omitempty"` // display name for walk-ins
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the lock is no longer valid at the given instant
func (l Lock) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// Slot is a bookable unit of capacity for one date and time band.
// It is the central mutable entity of the scheduling core: mutated only
// through booking transactions and the settlement sweep, deleted only by
// bulk regeneration of its date range.
type Slot struct {
	Key        SlotKey
	SeasonID   *string    // nil for virtual slots materialized on confirm
	CategoryID *string    // nil for break slots
	TemplateID *uuid.UUID // nil for virtual slots
	Capacity   int
	IsBreak    bool

	AttendeeIDs       []uuid.UUID // confirmed bookings
	Locks             []Lock      // in-flight reservations
	AttendeesDeducted []uuid.UUID // attendance already charged by the sweep

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveLocks returns the locks that have not expired at the given instant
func (s *Slot) ActiveLocks(now time.Time) []Lock {
	active := make([]Lock, 0, len(s.Locks))
	for _, l := range s.Locks {
		if !l.IsExpired(now) {
			active = append(active, l)
		}
	}
	return active
}

// SeatsTaken counts confirmed attendees plus unexpired locks
func (s *Slot) SeatsTaken(now time.Time) int {
	return len(s.AttendeeIDs) + len(s.ActiveLocks(now))
}

// IsFull reports whether no seat can be reserved at the given instant
func (s *Slot) IsFull(now time.Time) bool {
	return s.SeatsTaken(now) >= s.Capacity
}

// HasAttendee reports whether the student is a confirmed attendee
func (s *Slot) HasAttendee(studentID uuid.UUID) bool {
	for _, id := range s.AttendeeIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// LockFor returns the student's lock regardless of expiry
func (s *Slot) LockFor(studentID uuid.UUID) (Lock, bool) {
	for _, l := range s.Locks {
		if l.StudentID == studentID {
			return l, true
		}
	}
	return Lock{}, false
}

// HoldsActiveLock reports whether the student holds an unexpired lock
func (s *Slot) HoldsActiveLock(studentID uuid.UUID, now time.Time) bool {
	l, ok := s.LockFor(studentID)
	return ok && !l.IsExpired(now)
}

// IsDeducted reports whether the attendance credit was already charged
func (s *Slot) IsDeducted(studentID uuid.UUID) bool {
	for _, id := range s.AttendeesDeducted {
		if id == studentID {
			return true
		}
	}
	return false
}

// UndeductedAttendees returns attendees whose credit has not been charged yet
func (s *Slot) UndeductedAttendees() []uuid.UUID {
	pending := make([]uuid.UUID, 0, len(s.AttendeeIDs))
	for _, id := range s.AttendeeIDs {
		if !s.IsDeducted(id) {
			pending = append(pending, id)
		}
	}
	return pending
}

// RemoveLock removes the student's lock, if present, and reports whether it was there
func (s *Slot) RemoveLock(studentID uuid.UUID) bool {
	for i, l := range s.Locks {
		if l.StudentID == studentID {
			s.Locks = append(s.Locks[:i], s.Locks[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAttendee removes the student from the attendee set and reports whether they were there
func (s *Slot) RemoveAttendee(studentID uuid.UUID) bool {
	for i, id := range s.AttendeeIDs {
		if id == studentID {
			s.AttendeeIDs = append(s.AttendeeIDs[:i], s.AttendeeIDs[i+1:]...)
			return true
		}
	}
	return false
}

// PruneExpiredLocks drops expired locks in place. Every transaction that
// writes a slot back persists the pruned list, so stale locks disappear
// as a side effect of normal traffic.
func (s *Slot) PruneExpiredLocks(now time.Time) {
	s.Locks = s.ActiveLocks(now)
}

// EndsBy reports whether the slot's band has fully elapsed at the given
// instant, using the band's end time combined with the slot date
func (s *Slot) EndsBy(band TimeBand, now time.Time) bool {
	end, err := band.Range.EndOn(s.Key.Date)
	if err != nil {
		return false
	}
	return now.After(end)
}
