package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
)

// Request модели

// CreateTemplateRequest запрос на создание шаблона расписания
type CreateTemplateRequest struct {
	SeasonID   string  `json:"seasonId"`
	DayType    string  `json:"dayType"`    // mon_wed_fri | tue_thu | sat_sun
	TimeRange  string  `json:"timeRange"`  // "06:00-07:00"
	CategoryID *string `json:"categoryId"` // nil для перерыва
	Capacity   int     `json:"capacity"`
	IsBreak    bool    `json:"isBreak"`
}

// UpdateTemplateRequest запрос на обновление шаблона
// Все поля опциональны - обновляются только переданные значения
type UpdateTemplateRequest struct {
	DayType    *string `json:"dayType,omitempty"`
	TimeRange  *string `json:"timeRange,omitempty"`
	CategoryID *string `json:"categoryId,omitempty"`
	Capacity   *int    `json:"capacity,omitempty"`
	IsBreak    *bool   `json:"isBreak,omitempty"`
}

// Response модели

// TemplateResponse шаблон расписания в ответе сервиса
type TemplateResponse struct {
	ID         uuid.UUID `json:"id"`
	SeasonID   string    `json:"seasonId"`
	DayType    string    `json:"dayType"`
	TimeRange  string    `json:"timeRange"`
	CategoryID *string   `json:"categoryId,omitempty"`
	Capacity   int       `json:"capacity"`
	IsBreak    bool      `json:"isBreak"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TemplateListResponse список шаблонов
type TemplateListResponse struct {
	Templates []*TemplateResponse `json:"templates"`
	Total     int                 `json:"total"`
}

// FromDomainTemplate конвертирует domain-модель в response
func FromDomainTemplate(t *domain.ScheduleTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:         t.ID,
		SeasonID:   t.SeasonID,
		DayType:    string(t.DayType),
		TimeRange:  t.TimeRange.String(),
		CategoryID: t.CategoryID,
		Capacity:   t.Capacity,
		IsBreak:    t.IsBreak,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// FromDomainTemplateList конвертирует список domain-моделей в response
func FromDomainTemplateList(templates []*domain.ScheduleTemplate) *TemplateListResponse {
	out := make([]*TemplateResponse, len(templates))
	for i, t := range templates {
		out[i] = FromDomainTemplate(t)
	}
	return &TemplateListResponse{Templates: out, Total: len(out)}
}
