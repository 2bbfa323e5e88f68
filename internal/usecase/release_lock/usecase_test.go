package release_lock

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
	cp.Locks = append([]domain.Lock(nil), s.Locks...)
	return &cp, nil
}

func (r *fakeSlotRepo) UpdateOccupancy(_ context.Context, s *domain.Slot) error {
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

func TestExecute_ReleasesLock(t *testing.T) {
	studentID := uuid.New()
	s := &domain.Slot{
		Key:      domain.NewSlotKey(testNow, "1000"),
		Capacity: 10,
		Locks:    []domain.Lock{{StudentID: studentID, ExpiresAt: testNow.Add(10 * time.Minute)}},
	}
	repo := newFakeSlotRepo(s)
	uc := NewUseCase(repo, fakeTxManager{}, fixedClock{testNow}, nopLogger{})

	err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: studentID})
	require.NoError(t, err)
	assert.Empty(t, repo.slots["2026-09-14_1000"].Locks)
}

func TestExecute_ExpiredLockStillReleasable(t *testing.T) {
	studentID := uuid.New()
	s := &domain.Slot{
		Key:      domain.NewSlotKey(testNow, "1000"),
		Capacity: 10,
		Locks:    []domain.Lock{{StudentID: studentID, ExpiresAt: testNow.Add(-time.Minute)}},
	}
	repo := newFakeSlotRepo(s)
	uc := NewUseCase(repo, fakeTxManager{}, fixedClock{testNow}, nopLogger{})

	err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: studentID})
	require.NoError(t, err)
	assert.Empty(t, repo.slots["2026-09-14_1000"].Locks)
}

func TestExecute_LockNotFound(t *testing.T) {
	s := &domain.Slot{Key: domain.NewSlotKey(testNow, "1000"), Capacity: 10}
	uc := NewUseCase(newFakeSlotRepo(s), fakeTxManager{}, fixedClock{testNow}, nopLogger{})

	err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: uuid.New()})
	assert.ErrorIs(t, err, ErrLockNotFound)
}

func TestExecute_SlotNotFound(t *testing.T) {
	uc := NewUseCase(newFakeSlotRepo(), fakeTxManager{}, fixedClock{testNow}, nopLogger{})

	err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: uuid.New()})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
