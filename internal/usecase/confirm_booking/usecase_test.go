package confirm_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	slotstorage "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/slot"
	studentstorage "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/student"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/ptr"
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

func (r *fakeSlotRepo) Upsert(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	r.slots[s.Key.String()] = s
	return s, nil
}

func (r *fakeSlotRepo) UpdateOccupancy(_ context.Context, s *domain.Slot) error {
	if _, ok := r.slots[s.Key.String()]; !ok {
		return slotstorage.ErrSlotNotFound
	}
	r.slots[s.Key.String()] = s
	return nil
}

type fakeStudentRepo struct {
	students map[uuid.UUID]*domain.Student
}

func newFakeStudentRepo(students ...*domain.Student) *fakeStudentRepo {
	r := &fakeStudentRepo{students: make(map[uuid.UUID]*domain.Student)}
	for _, s := range students {
		r.students[s.ID] = s
	}
	return r
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, studentstorage.ErrStudentNotFound
	}
	return s, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSweep struct{ triggered int }

func (s *fakeSweep) Trigger() { s.triggered++ }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testStudent(credits int) *domain.Student {
	return &domain.Student{
		ID:               uuid.New(),
		FullName:         "Иван Иванов",
		BirthYear:        2018,
		RemainingCredits: credits,
		IsActive:         true,
	}
}

func testSlot(capacity int) *domain.Slot {
	return &domain.Slot{
		Key:      domain.NewSlotKey(testNow, "1000"),
		Capacity: capacity,
	}
}

func newTestUseCase(slots *fakeSlotRepo, students *fakeStudentRepo, sweep *fakeSweep, now time.Time) *UseCase {
	return NewUseCase(slots, students, fakeTxManager{}, sweep, fixedClock{now}, nopLogger{})
}

func TestExecute_ConfirmWithLock(t *testing.T) {
	student := testStudent(8)
	s := testSlot(10)
	s.Locks = []domain.Lock{{StudentID: student.ID, ExpiresAt: testNow.Add(10 * time.Minute)}}
	slots := newFakeSlotRepo(s)
	sweep := &fakeSweep{}
	uc := newTestUseCase(slots, newFakeStudentRepo(student), sweep, testNow)

	resp, err := uc.Execute(context.Background(), Request{
		SlotKey:   "2026-09-14_1000",
		StudentID: student.ID,
	})
	require.NoError(t, err)
	assert.False(t, resp.SlotCreated)

	saved := slots.slots["2026-09-14_1000"]
	assert.Equal(t, []uuid.UUID{student.ID}, saved.AttendeeIDs)
	assert.Empty(t, saved.Locks)

	// Кредиты при подтверждении не списываются
	assert.Equal(t, 8, student.RemainingCredits)
	assert.Equal(t, 1, sweep.triggered)
}

func TestExecute_LockExpiredAtBoundary(t *testing.T) {
	student := testStudent(8)
	lockExpiry := testNow.Add(15 * time.Minute)
	s := testSlot(10)
	s.Locks = []domain.Lock{{StudentID: student.ID, ExpiresAt: lockExpiry}}

	// В последний момент жизни блокировки подтверждение проходит
	uc := newTestUseCase(newFakeSlotRepo(s), newFakeStudentRepo(student), &fakeSweep{}, lockExpiry.Add(-time.Millisecond))
	_, err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: student.ID})
	require.NoError(t, err)

	// Миллисекундой позже истечения запись отклоняется
	s2 := testSlot(10)
	s2.Locks = []domain.Lock{{StudentID: student.ID, ExpiresAt: lockExpiry}}
	uc = newTestUseCase(newFakeSlotRepo(s2), newFakeStudentRepo(student), &fakeSweep{}, lockExpiry.Add(time.Millisecond))
	_, err = uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: student.ID})
	assert.ErrorIs(t, err, ErrLockExpired)
}

func TestExecute_ConfirmWithoutLockNeedsFreeSeat(t *testing.T) {
	student := testStudent(8)
	s := testSlot(1)
	s.AttendeeIDs = []uuid.UUID{uuid.New()}
	uc := newTestUseCase(newFakeSlotRepo(s), newFakeStudentRepo(student), &fakeSweep{}, testNow)

	_, err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: student.ID})
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_HasDebt(t *testing.T) {
	student := testStudent(8)
	student.HasDebt = true
	uc := newTestUseCase(newFakeSlotRepo(testSlot(10)), newFakeStudentRepo(student), &fakeSweep{}, testNow)

	_, err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: student.ID})
	assert.ErrorIs(t, err, ErrHasDebt)
}

func TestExecute_InsufficientCredits(t *testing.T) {
	student := testStudent(0)
	uc := newTestUseCase(newFakeSlotRepo(testSlot(10)), newFakeStudentRepo(student), &fakeSweep{}, testNow)

	_, err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: student.ID})
	assert.ErrorIs(t, err, ErrInsufficientCredits)
}

func TestExecute_AlreadyBooked(t *testing.T) {
	student := testStudent(8)
	s := testSlot(10)
	s.AttendeeIDs = []uuid.UUID{student.ID}
	uc := newTestUseCase(newFakeSlotRepo(s), newFakeStudentRepo(student), &fakeSweep{}, testNow)

	_, err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: student.ID})
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestExecute_StudentNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo(testSlot(10)), newFakeStudentRepo(), &fakeSweep{}, testNow)

	_, err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: uuid.New()})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestExecute_VirtualSlot(t *testing.T) {
	student := testStudent(8)
	slots := newFakeSlotRepo()
	uc := newTestUseCase(slots, newFakeStudentRepo(student), &fakeSweep{}, testNow)

	resp, err := uc.Execute(context.Background(), Request{
		SlotKey:   "2026-09-14_1000",
		StudentID: student.ID,
		SlotData:  &SlotData{Capacity: 12, SeasonID: ptr.Ptr("2026-2027")},
	})
	require.NoError(t, err)
	assert.True(t, resp.SlotCreated)

	saved := slots.slots["2026-09-14_1000"]
	require.NotNil(t, saved)
	assert.Equal(t, 12, saved.Capacity)
	assert.Equal(t, []uuid.UUID{student.ID}, saved.AttendeeIDs)
	// Виртуальный слот не привязан к шаблону
	assert.Nil(t, saved.TemplateID)
}

func TestExecute_MissingSlotData(t *testing.T) {
	student := testStudent(8)
	uc := newTestUseCase(newFakeSlotRepo(), newFakeStudentRepo(student), &fakeSweep{}, testNow)

	_, err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: student.ID})
	assert.ErrorIs(t, err, ErrMissingSlotData)
}

func TestExecute_PrunesExpiredLocksOfOthers(t *testing.T) {
	student := testStudent(8)
	s := testSlot(10)
	s.Locks = []domain.Lock{
		{StudentID: student.ID, ExpiresAt: testNow.Add(10 * time.Minute)},
		{StudentID: uuid.New(), ExpiresAt: testNow.Add(-time.Minute)},
	}
	slots := newFakeSlotRepo(s)
	uc := newTestUseCase(slots, newFakeStudentRepo(student), &fakeSweep{}, testNow)

	_, err := uc.Execute(context.Background(), Request{SlotKey: "2026-09-14_1000", StudentID: student.ID})
	require.NoError(t, err)

	assert.Empty(t, slots.slots["2026-09-14_1000"].Locks)
}
