package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	slotstorage "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/slot"
	studentstorage "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/student"
)

// UseCase юзкейс подтверждения записи ученика в слот.
// Кредиты при подтверждении не списываются: списание выполняется
// отложенно после окончания занятия (см. settle_sessions)
type UseCase struct {
	slotRepo     SlotRepository
	studentRepo  StudentRepository
	txManager    TransactionManager
	sweep        SweepTrigger
	timeProvider TimeProvider
	log          Logger
}

// NewUseCase создаёт новый юзкейс подтверждения записи
func NewUseCase(
	slotRepo SlotRepository,
	studentRepo StudentRepository,
	txManager TransactionManager,
	sweep SweepTrigger,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		studentRepo:  studentRepo,
		txManager:    txManager,
		sweep:        sweep,
		timeProvider: timeProvider,
		log:          log,
	}
}

// Execute подтверждает запись ученика в слот. Если слот ещё не создан
// генератором, он создаётся на лету из данных запроса (виртуальный слот)
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	key, err := validateRequest(req)
	if err != nil {
		uc.log.Warn("[confirm_booking] Execute - invalid request: %v", err)
		return nil, err
	}

	var resp *Response

	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Читаем слот; при его отсутствии пытаемся создать виртуальный
		slot, created, err := uc.loadOrSynthesize(txCtx, key, req)
		if err != nil {
			return err
		}

		// 3. Проверки ученика: существует, без долгов, с кредитами
		student, err := uc.studentRepo.GetByID(txCtx, req.StudentID)
		if err != nil {
			if errors.Is(err, studentstorage.ErrStudentNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("%w: Execute - get student: %w", ErrInternal, err)
		}
		if student.HasDebt {
			return ErrHasDebt
		}
		if student.RemainingCredits <= 0 {
			return ErrInsufficientCredits
		}

		now := uc.timeProvider.Now()

		// 4. Проверки слота: повторное подтверждение запрещено; блокировка,
		// если она есть, не должна быть истёкшей; без блокировки место
		// должно оставаться свободным
		if slot.HasAttendee(req.StudentID) {
			return ErrAlreadyBooked
		}
		if lock, ok := slot.LockFor(req.StudentID); ok {
			if lock.IsExpired(now) {
				return ErrLockExpired
			}
			slot.RemoveLock(req.StudentID)
		} else if slot.IsFull(now) {
			return ErrSlotFull
		}

		// 5. Переводим ученика в подтверждённые и вычищаем истёкшие блокировки
		slot.AttendeeIDs = append(slot.AttendeeIDs, req.StudentID)
		slot.PruneExpiredLocks(now)

		if created {
			_, err = uc.slotRepo.Upsert(txCtx, slot)
		} else {
			err = uc.slotRepo.UpdateOccupancy(txCtx, slot)
		}
		if err != nil {
			return fmt.Errorf("%w: Execute - save slot: %w", ErrInternal, err)
		}

		resp = &Response{
			SlotKey:     key.String(),
			StudentID:   req.StudentID,
			SeatsTaken:  slot.SeatsTaken(now),
			SeatsFree:   slot.Capacity - slot.SeatsTaken(now),
			SlotCreated: created,
		}
		return nil
	})
	if txErr != nil {
		if isBusinessError(txErr) {
			uc.log.Info("[confirm_booking] Execute - rejected: slot=%s student=%s: %v", req.SlotKey, req.StudentID, txErr)
			return nil, txErr
		}
		uc.log.Error("[confirm_booking] Execute - transaction failed: slot=%s student=%s: %v", req.SlotKey, req.StudentID, txErr)
		return nil, txErr
	}

	uc.log.Info("[confirm_booking] Execute - confirmed: slot=%s student=%s created=%t", req.SlotKey, req.StudentID, resp.SlotCreated)

	// 6. Подтверждение меняет состав слота: будим воркер списания,
	// чтобы недосписанные прошедшие занятия обработались без ожидания тика
	uc.sweep.Trigger()

	return resp, nil
}

// loadOrSynthesize читает слот из хранилища. Если слота нет, он собирается
// из данных запроса: без capacity в запросе подтверждение невозможно
func (uc *UseCase) loadOrSynthesize(ctx context.Context, key domain.SlotKey, req Request) (*domain.Slot, bool, error) {
	slot, err := uc.slotRepo.GetByKey(ctx, key)
	if err == nil {
		return slot, false, nil
	}
	if !errors.Is(err, slotstorage.ErrSlotNotFound) {
		return nil, false, fmt.Errorf("%w: loadOrSynthesize - get slot: %w", ErrInternal, err)
	}

	if req.SlotData == nil || req.SlotData.Capacity <= 0 {
		return nil, false, ErrMissingSlotData
	}

	// Виртуальный слот не привязан к шаблону: TemplateID остаётся пустым
	return &domain.Slot{
		Key:        key,
		SeasonID:   req.SlotData.SeasonID,
		CategoryID: req.SlotData.CategoryID,
		Capacity:   req.SlotData.Capacity,
	}, true, nil
}

func validateRequest(req Request) (domain.SlotKey, error) {
	key, err := domain.ParseSlotKey(req.SlotKey)
	if err != nil {
		return domain.SlotKey{}, fmt.Errorf("%w: slot key %q", ErrInvalidInput, req.SlotKey)
	}
	if req.StudentID == uuid.Nil {
		return domain.SlotKey{}, fmt.Errorf("%w: student id is required", ErrInvalidInput)
	}
	if req.SlotData != nil && req.SlotData.Capacity <= 0 {
		return domain.SlotKey{}, fmt.Errorf("%w: slot data capacity must be positive", ErrInvalidInput)
	}
	return key, nil
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrMissingSlotData) ||
		errors.Is(err, ErrHasDebt) ||
		errors.Is(err, ErrInsufficientCredits) ||
		errors.Is(err, ErrAlreadyBooked) ||
		errors.Is(err, ErrLockExpired) ||
		errors.Is(err, ErrSlotFull)
}
