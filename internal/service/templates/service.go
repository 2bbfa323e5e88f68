package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	templateRepo "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/template"
	academyClient "github.com/m04kA/SwimAcademy-ScheduleService/internal/integrations/academyservice"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/templates/models"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/types"
)

// Service сервис для работы с шаблонами расписания
type Service struct {
	templateRepo  TemplateRepository
	academyClient AcademyServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(
	templateRepo TemplateRepository,
	academyClient AcademyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		templateRepo:  templateRepo,
		academyClient: academyClient,
		logger:        logger,
	}
}

// Create создает новый шаблон расписания.
// Проверяет инвариант сезона: не-break шаблоны одного типа дня
// не должны пересекаться по времени.
func (s *Service) Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Create: creating template for season=%s, dayType=%s, range=%s",
		req.SeasonID, req.DayType, req.TimeRange)

	// 1. Валидируем и конвертируем входные данные
	tmpl, err := s.toDomainTemplate(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование сезона
	if _, err := s.academyClient.GetSeason(ctx, req.SeasonID); err != nil {
		if errors.Is(err, academyClient.ErrSeasonNotFound) {
			s.logger.Warn("Create: season id=%s not found", req.SeasonID)
			return nil, ErrSeasonNotFound
		}
		s.logger.Error("Create: failed to get season id=%s: %v", req.SeasonID, err)
		return nil, fmt.Errorf("%w: failed to get season: %v", ErrInternal, err)
	}

	// 3. Проверяем существование категории (для не-break шаблонов)
	if !tmpl.IsBreak && tmpl.CategoryID != nil {
		if err := s.checkCategoryExists(ctx, *tmpl.CategoryID); err != nil {
			return nil, err
		}
	}

	// 4. Проверяем пересечения с существующими шаблонами сезона
	existing, err := s.templateRepo.GetBySeason(ctx, domain.TemplatesFilter{SeasonID: req.SeasonID})
	if err != nil {
		s.logger.Error("Create: failed to get season templates: %v", err)
		return nil, fmt.Errorf("%w: failed to get season templates: %v", ErrInternal, err)
	}

	for _, other := range existing {
		if tmpl.ConflictsWith(other) {
			s.logger.Warn("Create: template range %s overlaps template id=%s", req.TimeRange, other.ID)
			return nil, ErrTemplateOverlap
		}
	}

	// 5. Сохраняем шаблон
	created, err := s.templateRepo.Create(ctx, tmpl)
	if err != nil {
		s.logger.Error("Create: failed to create template: %v", err)
		return nil, fmt.Errorf("%w: failed to create template: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created template id=%s", created.ID)
	return models.FromDomainTemplate(created), nil
}

// GetBySeason получает шаблоны сезона
func (s *Service) GetBySeason(ctx context.Context, seasonID string) (*models.TemplateListResponse, error) {
	s.logger.Info("GetBySeason: fetching templates for season=%s", seasonID)

	templates, err := s.templateRepo.GetBySeason(ctx, domain.TemplatesFilter{SeasonID: seasonID})
	if err != nil {
		s.logger.Error("GetBySeason: repository error for season=%s: %v", seasonID, err)
		return nil, fmt.Errorf("%w: GetBySeason - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBySeason: successfully fetched %d templates for season=%s", len(templates), seasonID)
	return models.FromDomainTemplateList(templates), nil
}

// Update обновляет шаблон. Правка существующего шаблона не перекраивает
// уже сгенерированные слоты - они изменятся только при перегенерации.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Update: updating template id=%s", id)

	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("Update: template id=%s not found", id)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Update: repository error for template id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Применяем только переданные поля
	if req.DayType != nil {
		dayType := domain.DayType(*req.DayType)
		if !dayType.Valid() {
			return nil, fmt.Errorf("%w: unknown day type %q", ErrInvalidInput, *req.DayType)
		}
		tmpl.DayType = dayType
	}
	if req.TimeRange != nil {
		timeRange, err := types.NewTimeRangeFromString(*req.TimeRange)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid time range: %v", ErrInvalidInput, err)
		}
		tmpl.TimeRange = timeRange
	}
	if req.CategoryID != nil {
		if err := s.checkCategoryExists(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		tmpl.CategoryID = req.CategoryID
	}
	if req.Capacity != nil {
		if *req.Capacity < domain.MinSlotCapacity || *req.Capacity > domain.MaxSlotCapacity {
			return nil, fmt.Errorf("%w: capacity out of range", ErrInvalidInput)
		}
		tmpl.Capacity = *req.Capacity
	}
	if req.IsBreak != nil {
		tmpl.IsBreak = *req.IsBreak
	}

	// Смена типа дня, диапазона или признака перерыва может создать
	// пересечение, которого не было при создании: проверяем инвариант заново
	if req.DayType != nil || req.TimeRange != nil || req.IsBreak != nil {
		existing, err := s.templateRepo.GetBySeason(ctx, domain.TemplatesFilter{SeasonID: tmpl.SeasonID})
		if err != nil {
			s.logger.Error("Update: failed to get season templates: %v", err)
			return nil, fmt.Errorf("%w: Update - failed to get season templates: %v", ErrInternal, err)
		}
		for _, other := range existing {
			if other.ID == tmpl.ID {
				continue
			}
			if tmpl.ConflictsWith(other) {
				s.logger.Warn("Update: template id=%s range %s overlaps template id=%s", id, tmpl.TimeRange, other.ID)
				return nil, ErrTemplateOverlap
			}
		}
	}

	if err := s.templateRepo.Update(ctx, tmpl); err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Update: failed to update template id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated template id=%s", id)
	return models.FromDomainTemplate(tmpl), nil
}

// Delete удаляет шаблон. Hard delete: уже сгенерированные из него слоты остаются.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: deleting template id=%s", id)

	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("Delete: template id=%s not found", id)
			return ErrTemplateNotFound
		}
		s.logger.Error("Delete: repository error for template id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted template id=%s", id)
	return nil
}

// toDomainTemplate валидирует запрос и строит domain-модель
func (s *Service) toDomainTemplate(req *models.CreateTemplateRequest) (*domain.ScheduleTemplate, error) {
	if req.SeasonID == "" {
		return nil, fmt.Errorf("%w: seasonId is required", ErrInvalidInput)
	}

	dayType := domain.DayType(req.DayType)
	if !dayType.Valid() {
		return nil, fmt.Errorf("%w: unknown day type %q", ErrInvalidInput, req.DayType)
	}

	timeRange, err := types.NewTimeRangeFromString(req.TimeRange)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time range: %v", ErrInvalidInput, err)
	}

	if req.Capacity < domain.MinSlotCapacity || req.Capacity > domain.MaxSlotCapacity {
		return nil, fmt.Errorf("%w: capacity out of range", ErrInvalidInput)
	}

	if !req.IsBreak && req.CategoryID == nil {
		return nil, fmt.Errorf("%w: categoryId is required for non-break templates", ErrInvalidInput)
	}

	return &domain.ScheduleTemplate{
		SeasonID:   req.SeasonID,
		DayType:    dayType,
		TimeRange:  timeRange,
		CategoryID: req.CategoryID,
		Capacity:   req.Capacity,
		IsBreak:    req.IsBreak,
	}, nil
}

// checkCategoryExists проверяет, что категория существует в сервисе академии
func (s *Service) checkCategoryExists(ctx context.Context, categoryID string) error {
	categories, err := s.academyClient.GetCategories(ctx)
	if err != nil {
		s.logger.Error("checkCategoryExists: failed to get categories: %v", err)
		return fmt.Errorf("%w: failed to get categories: %v", ErrInternal, err)
	}

	for _, c := range categories {
		if c.ID == categoryID {
			return nil
		}
	}

	s.logger.Warn("checkCategoryExists: category id=%s not found", categoryID)
	return ErrCategoryNotFound
}
