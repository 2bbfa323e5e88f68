package templates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	templateRepo "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/template"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/integrations/academyservice"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/service/templates/models"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/ptr"
)

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*domain.ScheduleTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[uuid.UUID]*domain.ScheduleTemplate)}
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.templates[t.ID] = t
	return t, nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ScheduleTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTemplateRepo) GetBySeason(_ context.Context, filter domain.TemplatesFilter) ([]*domain.ScheduleTemplate, error) {
	var out []*domain.ScheduleTemplate
	for _, t := range r.templates {
		if t.SeasonID == filter.SeasonID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, t *domain.ScheduleTemplate) error {
	if _, ok := r.templates[t.ID]; !ok {
		return templateRepo.ErrTemplateNotFound
	}
	r.templates[t.ID] = t
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.templates[id]; !ok {
		return templateRepo.ErrTemplateNotFound
	}
	delete(r.templates, id)
	return nil
}

type fakeAcademyClient struct{}

func (fakeAcademyClient) GetSeason(_ context.Context, seasonID string) (*academyservice.Season, error) {
	if seasonID != "2026-2027" {
		return nil, academyservice.ErrSeasonNotFound
	}
	return &academyservice.Season{ID: seasonID, IsActive: true}, nil
}

func (fakeAcademyClient) GetCategories(_ context.Context) ([]academyservice.Category, error) {
	return []academyservice.Category{
		{ID: "kids", Name: "Детская", MinAge: 4, MaxAge: 12},
		{ID: "adult", Name: "Взрослая", MinAge: 18, MaxAge: 99},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeTemplateRepo) {
	repo := newFakeTemplateRepo()
	return NewService(repo, fakeAcademyClient{}, nopLogger{}), repo
}

func validCreateRequest() *models.CreateTemplateRequest {
	return &models.CreateTemplateRequest{
		SeasonID:   "2026-2027",
		DayType:    "mon_wed_fri",
		TimeRange:  "06:00-07:00",
		CategoryID: ptr.Ptr("kids"),
		Capacity:   10,
	}
}

func TestCreate(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "06:00-07:00", resp.TimeRange)
	assert.Len(t, repo.templates, 1)
}

func TestCreate_OverlapRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	overlapping := validCreateRequest()
	overlapping.TimeRange = "06:30-07:30"
	_, err = svc.Create(context.Background(), overlapping)
	assert.ErrorIs(t, err, ErrTemplateOverlap)

	// Перерыв в том же диапазоне конфликтом не считается
	breakReq := validCreateRequest()
	breakReq.TimeRange = "06:00-07:00"
	breakReq.IsBreak = true
	breakReq.CategoryID = nil
	_, err = svc.Create(context.Background(), breakReq)
	assert.NoError(t, err)

	// Другой тип дня тоже не конфликтует
	otherDay := validCreateRequest()
	otherDay.DayType = "tue_thu"
	_, err = svc.Create(context.Background(), otherDay)
	assert.NoError(t, err)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	badDay := validCreateRequest()
	badDay.DayType = "weekdays"
	_, err := svc.Create(context.Background(), badDay)
	assert.ErrorIs(t, err, ErrInvalidInput)

	badRange := validCreateRequest()
	badRange.TimeRange = "07:00-06:00"
	_, err = svc.Create(context.Background(), badRange)
	assert.ErrorIs(t, err, ErrInvalidInput)

	noCategory := validCreateRequest()
	noCategory.CategoryID = nil
	_, err = svc.Create(context.Background(), noCategory)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_UnknownSeasonAndCategory(t *testing.T) {
	svc, _ := newTestService()

	badSeason := validCreateRequest()
	badSeason.SeasonID = "1999-2000"
	_, err := svc.Create(context.Background(), badSeason)
	assert.ErrorIs(t, err, ErrSeasonNotFound)

	badCategory := validCreateRequest()
	badCategory.CategoryID = ptr.Ptr("seniors")
	_, err = svc.Create(context.Background(), badCategory)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &models.UpdateTemplateRequest{
		Capacity: ptr.Ptr(15),
	})
	require.NoError(t, err)

	assert.Equal(t, 15, updated.Capacity)
	// Остальные поля не тронуты
	assert.Equal(t, created.TimeRange, updated.TimeRange)
	assert.Equal(t, created.DayType, updated.DayType)
}

func TestUpdate_OverlapRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.TimeRange = "07:00-08:00"
	created, err := svc.Create(context.Background(), second)
	require.NoError(t, err)

	// Правка диапазона не должна нарушать инвариант сезона
	_, err = svc.Update(context.Background(), created.ID, &models.UpdateTemplateRequest{
		TimeRange: ptr.Ptr("06:30-07:30"),
	})
	assert.ErrorIs(t, err, ErrTemplateOverlap)

	// Непересекающийся диапазон проходит
	updated, err := svc.Update(context.Background(), created.ID, &models.UpdateTemplateRequest{
		TimeRange: ptr.Ptr("08:00-09:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00-09:00", updated.TimeRange)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), uuid.New(), &models.UpdateTemplateRequest{
		Capacity: ptr.Ptr(15),
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.templates)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrTemplateNotFound)
}
