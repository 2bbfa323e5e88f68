package lock_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	slotstorage "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/slot"
)

// UseCase юзкейс блокировки места в слоте
type UseCase struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	lockTTL      time.Duration
	log          Logger
}

// NewUseCase создаёт новый юзкейс блокировки места
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	lockTTL time.Duration,
	log Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		lockTTL:      lockTTL,
		log:          log,
	}
}

// Execute выполняет блокировку места: ученик получает временную блокировку,
// которая резервирует место до подтверждения или истечения TTL
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	key, err := validateRequest(req)
	if err != nil {
		uc.log.Warn("[lock_slot] Execute - invalid request: %v", err)
		return nil, err
	}

	var resp *Response

	// 2. Блокировка выполняется в serializable-транзакции: чтение слота
	// и запись обновлённого списка блокировок должны быть атомарны
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByKey(txCtx, key)
		if err != nil {
			if errors.Is(err, slotstorage.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Execute - get slot: %w", ErrInternal, err)
		}

		now := uc.timeProvider.Now()

		// 3. Истёкшие блокировки не учитываются и вычищаются при записи
		slot.PruneExpiredLocks(now)

		// 4. Проверки занятости: место свободно, ученик ещё не записан
		// и не держит активную блокировку
		if slot.IsFull(now) {
			return ErrSlotFull
		}
		if slot.HasAttendee(req.StudentID) {
			return ErrAlreadyBooked
		}
		if slot.HoldsActiveLock(req.StudentID, now) {
			return ErrAlreadyLocked
		}

		// 5. Добавляем блокировку с фиксированным сроком жизни
		lock := domain.Lock{
			StudentID: req.StudentID,
			TempName:  req.TempName,
			ExpiresAt: now.Add(uc.lockTTL),
		}
		slot.Locks = append(slot.Locks, lock)

		if err := uc.slotRepo.UpdateOccupancy(txCtx, slot); err != nil {
			return fmt.Errorf("%w: Execute - update slot: %w", ErrInternal, err)
		}

		resp = &Response{
			SlotKey:   key.String(),
			StudentID: req.StudentID,
			ExpiresAt: lock.ExpiresAt,
			SeatsFree: slot.Capacity - slot.SeatsTaken(now),
		}
		return nil
	})
	if txErr != nil {
		if isBusinessError(txErr) {
			uc.log.Info("[lock_slot] Execute - rejected: slot=%s student=%s: %v", req.SlotKey, req.StudentID, txErr)
			return nil, txErr
		}
		uc.log.Error("[lock_slot] Execute - transaction failed: slot=%s student=%s: %v", req.SlotKey, req.StudentID, txErr)
		return nil, txErr
	}

	uc.log.Info("[lock_slot] Execute - locked: slot=%s student=%s until=%s", req.SlotKey, req.StudentID, resp.ExpiresAt.Format(time.RFC3339))
	return resp, nil
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrSlotFull) ||
		errors.Is(err, ErrAlreadyBooked) ||
		errors.Is(err, ErrAlreadyLocked)
}
