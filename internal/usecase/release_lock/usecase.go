package release_lock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	slotstorage "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/slot"
)

// Request запрос на снятие блокировки
type Request struct {
	SlotKey   string
	StudentID uuid.UUID
}

// UseCase юзкейс снятия блокировки с места в слоте
type UseCase struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	log          Logger
}

// NewUseCase создаёт новый юзкейс снятия блокировки
func NewUseCase(slotRepo SlotRepository, txManager TransactionManager, timeProvider TimeProvider, log Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		log:          log,
	}
}

// Execute снимает блокировку ученика со слота. Снятие уже истёкшей
// блокировки не считается ошибкой: она всё равно удаляется из слота
func (uc *UseCase) Execute(ctx context.Context, req Request) error {
	// 1. Валидация входных данных
	key, err := domain.ParseSlotKey(req.SlotKey)
	if err != nil {
		return fmt.Errorf("%w: slot key %q", ErrInvalidInput, req.SlotKey)
	}
	if req.StudentID == uuid.Nil {
		return fmt.Errorf("%w: student id is required", ErrInvalidInput)
	}

	// 2. Снятие блокировки в serializable-транзакции
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByKey(txCtx, key)
		if err != nil {
			if errors.Is(err, slotstorage.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Execute - get slot: %w", ErrInternal, err)
		}

		if !slot.RemoveLock(req.StudentID) {
			return ErrLockNotFound
		}
		slot.PruneExpiredLocks(uc.timeProvider.Now())

		if err := uc.slotRepo.UpdateOccupancy(txCtx, slot); err != nil {
			return fmt.Errorf("%w: Execute - update slot: %w", ErrInternal, err)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrSlotNotFound) || errors.Is(txErr, ErrLockNotFound) {
			uc.log.Info("[release_lock] Execute - rejected: slot=%s student=%s: %v", req.SlotKey, req.StudentID, txErr)
			return txErr
		}
		uc.log.Error("[release_lock] Execute - transaction failed: slot=%s student=%s: %v", req.SlotKey, req.StudentID, txErr)
		return txErr
	}

	uc.log.Info("[release_lock] Execute - released: slot=%s student=%s", req.SlotKey, req.StudentID)
	return nil
}
