package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
)

var testNow = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (r *fakeSlotRepo) GetByDateRange(_ context.Context, from, to time.Time) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range r.slots {
		if !s.Key.Date.Before(from) && !s.Key.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) GetByAttendee(_ context.Context, studentID uuid.UUID, from, to time.Time) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range r.slots {
		if s.Key.Date.Before(from) || s.Key.Date.After(to) {
			continue
		}
		if s.HasAttendee(studentID) || hasLock(s, studentID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func hasLock(s *domain.Slot, studentID uuid.UUID) bool {
	for _, l := range s.Locks {
		if l.StudentID == studentID {
			return true
		}
	}
	return false
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(slots ...*domain.Slot) *Service {
	svc := NewService(&fakeSlotRepo{slots: slots}, domain.DefaultTimeCatalog(), nopLogger{})
	svc.timeProvider = fixedClock{now: testNow}
	return svc
}

func testSlot(date time.Time, bandID string) *domain.Slot {
	return &domain.Slot{
		Key:      domain.SlotKey{Date: date, TimeBandID: bandID},
		Capacity: domain.DefaultCapacity,
	}
}

func TestGetDay(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	attendee := uuid.New()

	slot := testSlot(day, "0600")
	slot.AttendeeIDs = []uuid.UUID{attendee}
	slot.Locks = []domain.Lock{
		{StudentID: uuid.New(), ExpiresAt: testNow.Add(10 * time.Minute)},
		{StudentID: uuid.New(), ExpiresAt: testNow.Add(-time.Minute)}, // истекший
	}

	otherDay := testSlot(day.AddDate(0, 0, 1), "0600")

	svc := newTestService(slot, otherDay)

	resp, err := svc.GetDay(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "2026-09-14", resp.Date)
	require.Len(t, resp.Slots, 1)

	view := resp.Slots[0]
	assert.Equal(t, "2026-09-14_0600", view.Key)
	assert.Equal(t, 2, view.SeatsTaken, "истекший лок не занимает место")
	assert.Equal(t, domain.DefaultCapacity-2, view.SeatsFree)
	assert.Equal(t, 1, view.ActiveLocks)
	assert.Equal(t, "06:00 - 07:00", view.BandLabel)
}

func TestGetDay_Empty(t *testing.T) {
	svc := newTestService()

	resp, err := svc.GetDay(context.Background(), time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestGetStudentBookings(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	student := uuid.New()

	confirmed := testSlot(day, "0600")
	confirmed.AttendeeIDs = []uuid.UUID{student}

	locked := testSlot(day, "0700")
	locked.Locks = []domain.Lock{{StudentID: student, ExpiresAt: testNow.Add(10 * time.Minute)}}

	expiredLock := testSlot(day, "0800")
	expiredLock.Locks = []domain.Lock{{StudentID: student, ExpiresAt: testNow.Add(-time.Minute)}}

	svc := newTestService(confirmed, locked, expiredLock)

	resp, err := svc.GetStudentBookings(context.Background(), student, day, day.AddDate(0, 1, 0))
	require.NoError(t, err)

	assert.Equal(t, student, resp.StudentID)
	require.Len(t, resp.Confirmed, 1)
	assert.Equal(t, "2026-09-14_0600", resp.Confirmed[0].Key)
	require.Len(t, resp.Locked, 1)
	assert.Equal(t, "2026-09-14_0700", resp.Locked[0].Key)
}

func TestGetStudentBookings_InvalidPeriod(t *testing.T) {
	svc := newTestService()

	from := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetStudentBookings(context.Background(), uuid.New(), from, from.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
