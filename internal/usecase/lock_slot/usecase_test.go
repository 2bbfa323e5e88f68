package lock_slot

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	slotstorage "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/slot"
)

var testNow = time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

type fakeSlotRepo struct {
	slots map[string]*domain.Slot
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[string]*domain.Slot)}
	for _, s := range slots {
		r.slots[s.Key.String()] = s
	}
	return r
}

func (r *fakeSlotRepo) GetByKey(_ context.Context, key domain.SlotKey) (*domain.Slot, error) {
	s, ok := r.slots[key.String()]
	if !ok {
		return nil, slotstorage.ErrSlotNotFound
	}
	cp := *s
	cp.AttendeeIDs = append([]uuid.UUID(nil), s.AttendeeIDs...)
	cp.Locks = append([]domain.Lock(nil), s.Locks...)
	cp.AttendeesDeducted = append([]uuid.UUID(nil), s.AttendeesDeducted...)
	return &cp, nil
}

func (r *fakeSlotRepo) UpdateOccupancy(_ context.Context, s *domain.Slot) error {
	if _, ok := r.slots[s.Key.String()]; !ok {
		return slotstorage.ErrSlotNotFound
	}
	r.slots[s.Key.String()] = s
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeSlotRepo) *UseCase {
	return NewUseCase(repo, fakeTxManager{}, fixedClock{testNow}, 15*time.Minute, nopLogger{})
}

func testSlot(capacity int) *domain.Slot {
	return &domain.Slot{
		Key:      domain.NewSlotKey(testNow, "1000"),
		Capacity: capacity,
	}
}

func TestExecute_LocksSeat(t *testing.T) {
	repo := newFakeSlotRepo(testSlot(10))
	uc := newTestUseCase(repo)
	studentID := uuid.New()

	resp, err := uc.Execute(context.Background(), Request{
		SlotKey:   "2026-09-14_1000",
		StudentID: studentID,
	})
	require.NoError(t, err)

	assert.Equal(t, testNow.Add(15*time.Minute), resp.ExpiresAt)
	assert.Equal(t, 9, resp.SeatsFree)

	saved := repo.slots["2026-09-14_1000"]
	require.Len(t, saved.Locks, 1)
	assert.Equal(t, studentID, saved.Locks[0].StudentID)
	assert.Empty(t, saved.AttendeeIDs)
}

func TestExecute_SlotFull(t *testing.T) {
	s := testSlot(1)
	s.Locks = []domain.Lock{{StudentID: uuid.New(), ExpiresAt: testNow.Add(5 * time.Minute)}}
	repo := newFakeSlotRepo(s)
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), Request{
		SlotKey:   "2026-09-14_1000",
		StudentID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrSlotFull)

	// Слот не изменился
	require.Len(t, repo.slots["2026-09-14_1000"].Locks, 1)
}

func TestExecute_ExpiredLockFreesSeat(t *testing.T) {
	s := testSlot(1)
	s.Locks = []domain.Lock{{StudentID: uuid.New(), ExpiresAt: testNow.Add(-time.Minute)}}
	repo := newFakeSlotRepo(s)
	uc := newTestUseCase(repo)
	studentID := uuid.New()

	_, err := uc.Execute(context.Background(), Request{
		SlotKey:   "2026-09-14_1000",
		StudentID: studentID,
	})
	require.NoError(t, err)

	// Истёкшая блокировка вычищена, осталась только новая
	saved := repo.slots["2026-09-14_1000"]
	require.Len(t, saved.Locks, 1)
	assert.Equal(t, studentID, saved.Locks[0].StudentID)
}

func TestExecute_AlreadyBooked(t *testing.T) {
	studentID := uuid.New()
	s := testSlot(10)
	s.AttendeeIDs = []uuid.UUID{studentID}
	uc := newTestUseCase(newFakeSlotRepo(s))

	_, err := uc.Execute(context.Background(), Request{
		SlotKey:   "2026-09-14_1000",
		StudentID: studentID,
	})
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestExecute_AlreadyLocked(t *testing.T) {
	studentID := uuid.New()
	s := testSlot(10)
	s.Locks = []domain.Lock{{StudentID: studentID, ExpiresAt: testNow.Add(5 * time.Minute)}}
	uc := newTestUseCase(newFakeSlotRepo(s))

	_, err := uc.Execute(context.Background(), Request{
		SlotKey:   "2026-09-14_1000",
		StudentID: studentID,
	})
	assert.ErrorIs(t, err, ErrAlreadyLocked)
}

func TestExecute_SlotNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo())

	_, err := uc.Execute(context.Background(), Request{
		SlotKey:   "2026-09-14_1000",
		StudentID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo())

	_, err := uc.Execute(context.Background(), Request{SlotKey: "garbage", StudentID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
