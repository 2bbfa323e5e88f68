package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/schedule/models"
)

// realTimeProvider реальный провайдер времени для production
type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Service сервис чтения расписания: дневная сетка и брони студента
type Service struct {
	slotRepo     SlotRepository
	catalog      *domain.TimeCatalog
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(slotRepo SlotRepository, catalog *domain.TimeCatalog, logger Logger) *Service {
	return &Service{
		slotRepo:     slotRepo,
		catalog:      catalog,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetDay возвращает слоты одного дня с рассчитанной занятостью
// (участники + неистекшие локи на момент запроса)
func (s *Service) GetDay(ctx context.Context, date time.Time) (*models.DayScheduleResponse, error) {
	s.logger.Info("GetDay: fetching schedule for %s", date.Format(domain.DateFormat))

	slots, err := s.slotRepo.GetByDateRange(ctx, date, date)
	if err != nil {
		s.logger.Error("GetDay: repository error for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDay - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	views := make([]*models.SlotView, len(slots))
	for i, slot := range slots {
		views[i] = models.FromDomainSlot(slot, s.catalog, now)
	}

	s.logger.Info("GetDay: successfully fetched %d slots for %s", len(views), date.Format(domain.DateFormat))
	return &models.DayScheduleResponse{
		Date:  date.Format(domain.DateFormat),
		Slots: views,
	}, nil
}

// GetStudentBookings возвращает брони и активные локи студента за период
func (s *Service) GetStudentBookings(ctx context.Context, studentID uuid.UUID, from, to time.Time) (*models.StudentBookingsResponse, error) {
	s.logger.Info("GetStudentBookings: student=%s, period=%s to %s",
		studentID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes start", ErrInvalidInput)
	}

	slots, err := s.slotRepo.GetByAttendee(ctx, studentID, from, to)
	if err != nil {
		s.logger.Error("GetStudentBookings: repository error for student=%s: %v", studentID, err)
		return nil, fmt.Errorf("%w: GetStudentBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.StudentBookingsResponse{
		StudentID: studentID,
		Confirmed: make([]*models.SlotView, 0, len(slots)),
		Locked:    make([]*models.SlotView, 0),
	}

	for _, slot := range slots {
		view := models.FromDomainSlot(slot, s.catalog, now)
		switch {
		case slot.HasAttendee(studentID):
			resp.Confirmed = append(resp.Confirmed, view)
		case slot.HoldsActiveLock(studentID, now):
			resp.Locked = append(resp.Locked, view)
		}
	}

	s.logger.Info("GetStudentBookings: student=%s has %d confirmed, %d locked",
		studentID, len(resp.Confirmed), len(resp.Locked))
	return resp, nil
}
