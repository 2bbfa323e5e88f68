package settle_sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	studentstorage "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/student"
)

// Result итог одного прохода списания
type Result struct {
	SlotsProcessed int
	SlotsFailed    int
	CreditsCharged int
}

// UseCase юзкейс отложенного списания кредитов: занятие тарифицируется
// не в момент записи, а после того как оно закончилось. Проход смотрит
// только на окно последних дней, более старые недосписания считаются
// потерянными и в отчётность не попадают
type UseCase struct {
	slotRepo     SlotRepository
	studentRepo  StudentRepository
	txManager    TransactionManager
	catalog      *domain.TimeCatalog
	timeProvider TimeProvider
	windowDays   int
	metrics      Metrics
	log          Logger
}

// NewUseCase создаёт новый юзкейс списания кредитов
func NewUseCase(
	slotRepo SlotRepository,
	studentRepo StudentRepository,
	txManager TransactionManager,
	catalog *domain.TimeCatalog,
	timeProvider TimeProvider,
	windowDays int,
	metrics Metrics,
	log Logger,
) *UseCase {
	if windowDays <= 0 {
		windowDays = domain.DefaultSweepWindowDays
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &UseCase{
		slotRepo:     slotRepo,
		studentRepo:  studentRepo,
		txManager:    txManager,
		catalog:      catalog,
		timeProvider: timeProvider,
		windowDays:   windowDays,
		metrics:      metrics,
		log:          log,
	}
}

// Execute выполняет один проход списания по всем недосписанным слотам окна.
// Каждый слот обрабатывается в отдельной транзакции: сбой одного слота
// не откатывает остальные
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()
	from := domain.DateOnly(now.AddDate(0, 0, -uc.windowDays))
	to := domain.DateOnly(now)

	// 1. Кандидаты читаются вне транзакции: повторная проверка
	// выполняется под блокировкой внутри settleSlot
	pending, err := uc.slotRepo.GetPendingSettlement(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - get pending slots: %w", ErrInternal, err)
	}

	result := &Result{}
	for _, candidate := range pending {
		// 2. Списываются только закончившиеся занятия
		band, ok := uc.catalog.BandByID(candidate.Key.TimeBandID)
		if !ok {
			uc.log.Warn("[settle_sessions] Execute - slot %s references unknown time band, skipped", candidate.Key)
			continue
		}
		if !candidate.EndsBy(band, now) {
			continue
		}

		charged, err := uc.settleSlot(ctx, candidate.Key)
		uc.metrics.ObserveSweepSlot(charged, err)
		if err != nil {
			result.SlotsFailed++
			uc.log.Error("[settle_sessions] Execute - settle slot %s: %v", candidate.Key, err)
			continue
		}
		result.SlotsProcessed++
		result.CreditsCharged += charged
	}

	uc.log.Info("[settle_sessions] Execute - window=%s..%s processed=%d failed=%d charged=%d",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat),
		result.SlotsProcessed, result.SlotsFailed, result.CreditsCharged)
	return result, nil
}

// settleSlot списывает по одному кредиту с каждого недосписанного ученика
// слота. Ученик, которого больше нет в справочнике, помечается списанным
// без тарификации, иначе слот навсегда останется в кандидатах
func (uc *UseCase) settleSlot(ctx context.Context, key domain.SlotKey) (int, error) {
	charged := 0
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		charged = 0
		slot, err := uc.slotRepo.GetByKey(txCtx, key)
		if err != nil {
			return fmt.Errorf("get slot: %w", err)
		}

		pending := slot.UndeductedAttendees()
		if len(pending) == 0 {
			return nil
		}

		for _, studentID := range pending {
			_, err := uc.studentRepo.GetByID(txCtx, studentID)
			if err != nil {
				if errors.Is(err, studentstorage.ErrStudentNotFound) {
					uc.log.Warn("[settle_sessions] settleSlot - slot %s: student %s not found, marked settled without charge", key, studentID)
					slot.AttendeesDeducted = append(slot.AttendeesDeducted, studentID)
					continue
				}
				return fmt.Errorf("get student %s: %w", studentID, err)
			}

			if err := uc.studentRepo.AdjustCredits(txCtx, studentID, -1); err != nil {
				return fmt.Errorf("charge student %s: %w", studentID, err)
			}
			slot.AttendeesDeducted = append(slot.AttendeesDeducted, studentID)
			charged++
		}

		if err := uc.slotRepo.UpdateOccupancy(txCtx, slot); err != nil {
			return fmt.Errorf("update slot: %w", err)
		}

		uc.log.Info("[settle_sessions] settleSlot - slot %s: charged %d of %d attendees", key, charged, len(pending))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return charged, nil
}
