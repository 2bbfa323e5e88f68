package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/integrations/academyservice"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/ptr"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/types"
)

// Понедельник и далее: 14..20 сентября 2026 покрывают все типы дней
var (
	monday = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
)

type fakeSlotRepo struct {
	slots map[string]*domain.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]*domain.Slot)}
}

func (r *fakeSlotRepo) Upsert(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	r.slots[s.Key.String()] = s
	return s, nil
}

func (r *fakeSlotRepo) DeleteByDateRange(_ context.Context, from, to time.Time) (int64, error) {
	var deleted int64
	for key, s := range r.slots {
		if !s.Key.Date.Before(from) && !s.Key.Date.After(to) {
			delete(r.slots, key)
			deleted++
		}
	}
	return deleted, nil
}

type fakeTemplateRepo struct {
	templates []*domain.ScheduleTemplate
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

type fakeStudentRepo struct {
	students []*domain.Student
}

func (r *fakeStudentRepo) GetActive(_ context.Context) ([]*domain.Student, error) {
	return r.students, nil
}

type fakeAcademyClient struct {
	seasons  map[string]*academyservice.Season
	rules    []academyservice.AgeRule
	rulesErr error
}

func (c *fakeAcademyClient) GetSeason(_ context.Context, seasonID string) (*academyservice.Season, error) {
	s, ok := c.seasons[seasonID]
	if !ok {
		return nil, academyservice.ErrSeasonNotFound
	}
	return s, nil
}

func (c *fakeAcademyClient) GetAgeRulesWithGracefulDegradation(_ context.Context) ([]academyservice.AgeRule, error) {
	if c.rulesErr != nil {
		return nil, c.rulesErr
	}
	return c.rules, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mkTemplate(t *testing.T, seasonID string, dayType domain.DayType, timeRange string, capacity int) *domain.ScheduleTemplate {
	t.Helper()
	tr, err := types.NewTimeRangeFromString(timeRange)
	require.NoError(t, err)
	return &domain.ScheduleTemplate{
		ID:         uuid.New(),
		SeasonID:   seasonID,
		DayType:    dayType,
		TimeRange:  tr,
		CategoryID: ptr.Ptr("kids"),
		Capacity:   capacity,
	}
}

func newTestEnv() (*fakeSlotRepo, *fakeTemplateRepo, *fakeStudentRepo, *fakeAcademyClient) {
	slots := newFakeSlotRepo()
	templates := &fakeTemplateRepo{}
	students := &fakeStudentRepo{}
	academy := &fakeAcademyClient{
		seasons: map[string]*academyservice.Season{
			"2026-2027": {ID: "2026-2027", Name: "Сезон 2026/2027", IsActive: true},
		},
	}
	return slots, templates, students, academy
}

func newTestUseCase(slots *fakeSlotRepo, templates *fakeTemplateRepo, students *fakeStudentRepo, academy *fakeAcademyClient) *UseCase {
	return NewUseCase(slots, templates, students, academy, domain.DefaultTimeCatalog(), nopLogger{})
}

func TestExecute_ForceRequired(t *testing.T) {
	uc := newTestUseCase(newTestEnv())

	_, err := uc.Execute(context.Background(), Request{
		SeasonID:  "2026-2027",
		StartDate: monday,
		EndDate:   sunday,
	})
	assert.ErrorIs(t, err, ErrForceRequired)
}

func TestExecute_SeasonNotFound(t *testing.T) {
	uc := newTestUseCase(newTestEnv())

	_, err := uc.Execute(context.Background(), Request{
		SeasonID:  "1999-2000",
		StartDate: monday,
		EndDate:   sunday,
		Force:     true,
	})
	assert.ErrorIs(t, err, ErrSeasonNotFound)
}

func TestExecute_NoTemplates(t *testing.T) {
	uc := newTestUseCase(newTestEnv())

	_, err := uc.Execute(context.Background(), Request{
		SeasonID:  "2026-2027",
		StartDate: monday,
		EndDate:   sunday,
		Force:     true,
	})
	assert.ErrorIs(t, err, ErrNoTemplates)
}

func TestExecute_GeneratesFromTemplates(t *testing.T) {
	slots, templates, students, academy := newTestEnv()
	tmpl := mkTemplate(t, "2026-2027", domain.DayTypeMonWedFri, "06:00-07:00", 8)
	templates.templates = []*domain.ScheduleTemplate{tmpl}
	uc := newTestUseCase(slots, templates, students, academy)

	resp, err := uc.Execute(context.Background(), Request{
		SeasonID:  "2026-2027",
		StartDate: monday,
		EndDate:   sunday,
		Force:     true,
	})
	require.NoError(t, err)

	// Пн, ср, пт одной недели
	assert.Equal(t, 3, resp.SlotsCreated)
	assert.Equal(t, 0, resp.SlotsDeleted)

	created, ok := slots.slots["2026-09-14_0600"]
	require.True(t, ok)
	assert.Equal(t, 8, created.Capacity)
	require.NotNil(t, created.TemplateID)
	assert.Equal(t, tmpl.ID, *created.TemplateID)
	require.NotNil(t, created.SeasonID)
	assert.Equal(t, "2026-2027", *created.SeasonID)

	_, ok = slots.slots["2026-09-15_0600"] // вторник не покрыт шаблоном
	assert.False(t, ok)
}

func TestExecute_RegenerationReplacesSlots(t *testing.T) {
	slots, templates, students, academy := newTestEnv()
	templates.templates = []*domain.ScheduleTemplate{
		mkTemplate(t, "2026-2027", domain.DayTypeSatSun, "10:00-11:00", 6),
	}
	uc := newTestUseCase(slots, templates, students, academy)
	req := Request{
		SeasonID:  "2026-2027",
		StartDate: monday,
		EndDate:   sunday,
		Force:     true,
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, first.SlotsCreated) // сб и вс

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, second.SlotsCreated)
	assert.Equal(t, 2, second.SlotsDeleted)
	assert.Len(t, slots.slots, 2)
}

func TestExecute_AgeRulesStrategyPrefillsStudents(t *testing.T) {
	slots, templates, students, academy := newTestEnv()
	academy.rules = []academyservice.AgeRule{
		{TimeBandID: "0600", MinAge: 4, MaxAge: 12, Capacity: 6},
	}

	inBracket := &domain.Student{
		ID:        uuid.New(),
		BirthYear: 2018, // 8 лет в 2026
		IsActive:  true,
		WeeklySchedule: []domain.WeeklyEntry{
			{Weekday: time.Monday, TimeBandID: "0600"},
		},
	}
	tooOld := &domain.Student{
		ID:        uuid.New(),
		BirthYear: 1990,
		IsActive:  true,
		WeeklySchedule: []domain.WeeklyEntry{
			{Weekday: time.Monday, TimeBandID: "0600"},
		},
	}
	students.students = []*domain.Student{inBracket, tooOld}
	uc := newTestUseCase(slots, templates, students, academy)

	resp, err := uc.Execute(context.Background(), Request{
		SeasonID:  "2026-2027",
		StartDate: monday,
		EndDate:   monday,
		Strategy:  StrategyAgeRules,
		Force:     true,
	})
	require.NoError(t, err)

	// По слоту на каждую полосу каталога
	assert.Equal(t, 11, resp.SlotsCreated)

	created, ok := slots.slots["2026-09-14_0600"]
	require.True(t, ok)
	assert.Equal(t, 6, created.Capacity)
	assert.Equal(t, []uuid.UUID{inBracket.ID}, created.AttendeeIDs)

	// Полоса без правила получает дефолтную вместимость каталога
	other, ok := slots.slots["2026-09-14_1600"]
	require.True(t, ok)
	assert.Equal(t, 10, other.Capacity)
	assert.Empty(t, other.AttendeeIDs)
}

func TestExecute_AgeRulesStrategyDegradedService(t *testing.T) {
	slots, templates, students, academy := newTestEnv()
	academy.rulesErr = fmt.Errorf("%w: %v", academyservice.ErrServiceDegraded, errors.New("connection refused"))

	student := &domain.Student{
		ID:        uuid.New(),
		BirthYear: 2018,
		IsActive:  true,
		WeeklySchedule: []domain.WeeklyEntry{
			{Weekday: time.Monday, TimeBandID: "0600"},
		},
	}
	students.students = []*domain.Student{student}
	uc := newTestUseCase(slots, templates, students, academy)

	resp, err := uc.Execute(context.Background(), Request{
		SeasonID:  "2026-2027",
		StartDate: monday,
		EndDate:   monday,
		Strategy:  StrategyAgeRules,
		Force:     true,
	})
	require.NoError(t, err)

	// Недоступность сервиса академии не валит генерацию:
	// все полосы получают дефолтную вместимость каталога
	assert.Equal(t, 11, resp.SlotsCreated)

	created, ok := slots.slots["2026-09-14_0600"]
	require.True(t, ok)
	assert.Equal(t, 10, created.Capacity)
	assert.Equal(t, []uuid.UUID{student.ID}, created.AttendeeIDs)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newTestEnv())

	_, err := uc.Execute(context.Background(), Request{
		SeasonID:  "2026-2027",
		StartDate: sunday,
		EndDate:   monday,
		Force:     true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{
		SeasonID:  "2026-2027",
		StartDate: monday,
		EndDate:   sunday,
		Strategy:  "random",
		Force:     true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
