package template

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/psqlbuilder"
)

var templateColumns = []string{
	"id",
	"season_id",
	"day_type",
	"time_range",
	"category_id",
	"capacity",
	"is_break",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с шаблонами расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый шаблон расписания
func (r *Repository) Create(ctx context.Context, t *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("schedule_templates").
		Columns(
			"id",
			"season_id",
			"day_type",
			"time_range",
			"category_id",
			"capacity",
			"is_break",
		).
		Values(
			t.ID,
			t.SeasonID,
			t.DayType,
			t.TimeRange,
			t.CategoryID,
			t.Capacity,
			t.IsBreak,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает шаблон по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("schedule_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTemplate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan template: %w", ErrScanRow, err)
	}

	return t, nil
}

// GetBySeason получает шаблоны сезона, опционально фильтруя по типу дня
func (r *Repository) GetBySeason(ctx context.Context, filter domain.TemplatesFilter) ([]*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(templateColumns...).
		From("schedule_templates").
		Where(squirrel.Eq{"season_id": filter.SeasonID}).
		OrderBy("day_type ASC, time_range ASC")

	if filter.DayType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"day_type": *filter.DayType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySeason - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySeason - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// Update обновляет изменяемые поля шаблона
func (r *Repository) Update(ctx context.Context, t *domain.ScheduleTemplate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_templates").
		Set("day_type", t.DayType).
		Set("time_range", t.TimeRange).
		Set("category_id", t.CategoryID).
		Set("capacity", t.Capacity).
		Set("is_break", t.IsBreak).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// Delete удаляет шаблон (hard delete, без каскада на уже сгенерированные слоты)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTemplate сканирует одну строку таблицы schedule_templates
func scanTemplate(row rowScanner) (*domain.ScheduleTemplate, error) {
	var (
		t         domain.ScheduleTemplate
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&t.ID,
		&t.SeasonID,
		&t.DayType,
		&t.TimeRange,
		&t.CategoryID,
		&t.Capacity,
		&t.IsBreak,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

// scanTemplates сканирует результаты запроса в слайс шаблонов
func scanTemplates(rows *sql.Rows) ([]*domain.ScheduleTemplate, error) {
	templates := make([]*domain.ScheduleTemplate, 0)

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - scan row: %w", ErrScanRow, err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTemplates - rows error: %w", ErrScanRow, err)
	}

	return templates, nil
}
