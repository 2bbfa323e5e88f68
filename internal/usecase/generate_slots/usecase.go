package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/integrations/academyservice"
)

// UseCase юзкейс генерации слотов на период сезона.
// Генерация уничтожает все слоты периода вместе с записями, поэтому
// запускается только с явным флагом force. Массовая запись выполняется
// вне транзакции: частичный результат допустим и исправляется повторным
// запуском
type UseCase struct {
	slotRepo     SlotRepository
	templateRepo TemplateRepository
	studentRepo  StudentRepository
	academy      AcademyClient
	catalog      *domain.TimeCatalog
	log          Logger
}

// NewUseCase создаёт новый юзкейс генерации слотов
func NewUseCase(
	slotRepo SlotRepository,
	templateRepo TemplateRepository,
	studentRepo StudentRepository,
	academy AcademyClient,
	catalog *domain.TimeCatalog,
	log Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		templateRepo: templateRepo,
		studentRepo:  studentRepo,
		academy:      academy,
		catalog:      catalog,
		log:          log,
	}
}

// Execute генерирует слоты сезона на указанный период
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных и подтверждение перезаписи
	if err := validateRequest(req); err != nil {
		uc.log.Warn("[generate_slots] Execute - invalid request: %v", err)
		return nil, err
	}

	// 2. Сезон должен существовать в сервисе академии
	season, err := uc.academy.GetSeason(ctx, req.SeasonID)
	if err != nil {
		if errors.Is(err, academyservice.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("%w: Execute - get season: %w", ErrInternal, err)
	}

	// 3. Собираем заготовки слотов по выбранной стратегии
	var seeds []slotSeed
	switch req.Strategy {
	case StrategyAgeRules:
		seeds, err = uc.seedsFromAgeRules(ctx, req)
	default:
		seeds, err = uc.seedsFromTemplates(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	// 4. Очищаем период и записываем новые слоты
	deleted, err := uc.slotRepo.DeleteByDateRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - delete slots: %w", ErrInternal, err)
	}

	created := 0
	for _, seed := range seeds {
		slot := &domain.Slot{
			Key:         seed.key,
			SeasonID:    &req.SeasonID,
			CategoryID:  seed.categoryID,
			TemplateID:  seed.templateID,
			Capacity:    seed.capacity,
			IsBreak:     seed.isBreak,
			AttendeeIDs: seed.attendees,
		}
		if _, err := uc.slotRepo.Upsert(ctx, slot); err != nil {
			return nil, fmt.Errorf("%w: Execute - upsert slot %s: %v", ErrInternal, seed.key, err)
		}
		created++
	}

	uc.log.Info("[generate_slots] Execute - season=%s (%s) strategy=%s period=%s..%s deleted=%d created=%d",
		req.SeasonID, season.Name, req.Strategy,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		deleted, created)

	return &Response{
		SeasonID:     req.SeasonID,
		SlotsCreated: created,
		SlotsDeleted: int(deleted),
	}, nil
}

// seedsFromTemplates строит слоты из шаблонов расписания сезона:
// на каждый день периода берутся шаблоны его типа дня
func (uc *UseCase) seedsFromTemplates(ctx context.Context, req Request) ([]slotSeed, error) {
	templates, err := uc.templateRepo.GetBySeason(ctx, domain.TemplatesFilter{SeasonID: req.SeasonID})
	if err != nil {
		return nil, fmt.Errorf("%w: seedsFromTemplates - get templates: %w", ErrInternal, err)
	}
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}

	// Шаблоны раскладываются по типам дня один раз, вне цикла по датам
	byDayType := make(map[domain.DayType][]*domain.ScheduleTemplate)
	for _, t := range templates {
		byDayType[t.DayType] = append(byDayType[t.DayType], t)
	}

	var seeds []slotSeed
	for day := domain.DateOnly(req.StartDate); !day.After(req.EndDate); day = day.AddDate(0, 0, 1) {
		for _, t := range byDayType[domain.DayTypeForDate(day)] {
			band, ok := uc.catalog.BandByRange(t.TimeRange)
			if !ok {
				uc.log.Warn("[generate_slots] seedsFromTemplates - template %s range %s is not in the time catalog, skipped", t.ID, t.TimeRange)
				continue
			}
			tmplID := t.ID
			seeds = append(seeds, slotSeed{
				key:        domain.SlotKey{Date: day, TimeBandID: band.ID},
				categoryID: t.CategoryID,
				templateID: &tmplID,
				capacity:   t.Capacity,
				isBreak:    t.IsBreak,
			})
		}
	}
	return seeds, nil
}

// seedsFromAgeRules строит слоты из возрастных правил академии и
// предзаполняет их учениками по недельному расписанию. Отладочная
// стратегия для окружений без настроенных шаблонов
func (uc *UseCase) seedsFromAgeRules(ctx context.Context, req Request) ([]slotSeed, error) {
	rules, err := uc.academy.GetAgeRulesWithGracefulDegradation(ctx)
	if err != nil {
		if !errors.Is(err, academyservice.ErrServiceDegraded) {
			return nil, fmt.Errorf("%w: seedsFromAgeRules - get age rules: %w", ErrInternal, err)
		}
		// Сервис академии недоступен: генерируем без возрастных правил,
		// с дефолтной вместимостью полос из каталога
		uc.log.Warn("[generate_slots] seedsFromAgeRules - age rules unavailable, using default band capacities: %v", err)
		rules = nil
	}

	students, err := uc.studentRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: seedsFromAgeRules - get students: %w", ErrInternal, err)
	}

	ruleByBand := make(map[string]academyservice.AgeRule, len(rules))
	for _, r := range rules {
		ruleByBand[r.TimeBandID] = r
	}

	var seeds []slotSeed
	for day := domain.DateOnly(req.StartDate); !day.After(req.EndDate); day = day.AddDate(0, 0, 1) {
		for _, band := range uc.catalog.Bands() {
			capacity := band.DefaultCapacity
			minAge, maxAge := 0, 0
			if rule, ok := ruleByBand[band.ID]; ok {
				capacity = rule.Capacity
				minAge, maxAge = rule.MinAge, rule.MaxAge
			}

			seed := slotSeed{
				key:      domain.SlotKey{Date: day, TimeBandID: band.ID},
				capacity: capacity,
			}
			for _, st := range students {
				if !st.AttendsBand(day.Weekday(), band.ID) {
					continue
				}
				if maxAge > 0 {
					age := st.AgeIn(day.Year())
					if age < minAge || age > maxAge {
						continue
					}
				}
				if len(seed.attendees) >= capacity {
					uc.log.Warn("[generate_slots] seedsFromAgeRules - slot %s is over capacity, student %s skipped", seed.key, st.ID)
					continue
				}
				seed.attendees = append(seed.attendees, st.ID)
			}
			seeds = append(seeds, seed)
		}
	}
	return seeds, nil
}

func validateRequest(req Request) error {
	if req.SeasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}
	if req.Strategy != "" && req.Strategy != StrategyTemplates && req.Strategy != StrategyAgeRules {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, req.Strategy)
	}
	if req.EndDate.Sub(req.StartDate) > 366*24*time.Hour {
		return fmt.Errorf("%w: generation period is longer than a year", ErrInvalidInput)
	}
	if !req.Force {
		return ErrForceRequired
	}
	return nil
}
