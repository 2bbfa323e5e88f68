package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	slotstorage "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/slot"
)

// Request запрос на отмену записи
type Request struct {
	SlotKey   string
	StudentID uuid.UUID
}

// UseCase юзкейс отмены подтверждённой записи.
// Отмена возможна только до окончания занятия: прошедшее занятие
// остаётся в списке и тарифицируется воркером. Кредиты при отмене
// не возвращаются: если занятие уже было списано, списание остаётся в силе
type UseCase struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	sweep        SweepTrigger
	catalog      *domain.TimeCatalog
	timeProvider TimeProvider
	log          Logger
}

// NewUseCase создаёт новый юзкейс отмены записи
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	sweep SweepTrigger,
	catalog *domain.TimeCatalog,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		txManager:    txManager,
		sweep:        sweep,
		catalog:      catalog,
		timeProvider: timeProvider,
		log:          log,
	}
}

// Execute убирает ученика из списка подтверждённых в слоте
func (uc *UseCase) Execute(ctx context.Context, req Request) error {
	// 1. Валидация входных данных
	key, err := domain.ParseSlotKey(req.SlotKey)
	if err != nil {
		return fmt.Errorf("%w: slot key %q", ErrInvalidInput, req.SlotKey)
	}
	if req.StudentID == uuid.Nil {
		return fmt.Errorf("%w: student id is required", ErrInvalidInput)
	}

	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Отсутствующий слот означает, что записи в нём нет
		slot, err := uc.slotRepo.GetByKey(txCtx, key)
		if err != nil {
			if errors.Is(err, slotstorage.ErrSlotNotFound) {
				return ErrNotBooked
			}
			return fmt.Errorf("%w: Execute - get slot: %w", ErrInternal, err)
		}

		now := uc.timeProvider.Now()

		// 3. Прошедшее занятие отменить нельзя: запись остаётся
		// и подлежит списанию воркером
		if band, ok := uc.catalog.BandByID(key.TimeBandID); ok && slot.EndsBy(band, now) {
			return ErrSlotEnded
		}

		// 4. Убираем ученика из подтверждённых
		if !slot.RemoveAttendee(req.StudentID) {
			return ErrNotBooked
		}
		slot.PruneExpiredLocks(now)

		if err := uc.slotRepo.UpdateOccupancy(txCtx, slot); err != nil {
			return fmt.Errorf("%w: Execute - update slot: %w", ErrInternal, err)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrNotBooked) || errors.Is(txErr, ErrSlotEnded) {
			uc.log.Info("[cancel_booking] Execute - rejected: slot=%s student=%s: %v", req.SlotKey, req.StudentID, txErr)
			return txErr
		}
		uc.log.Error("[cancel_booking] Execute - transaction failed: slot=%s student=%s: %v", req.SlotKey, req.StudentID, txErr)
		return txErr
	}

	uc.log.Info("[cancel_booking] Execute - cancelled: slot=%s student=%s", req.SlotKey, req.StudentID)

	// 5. Состав слота изменился: будим воркер списания
	uc.sweep.Trigger()

	return nil
}
