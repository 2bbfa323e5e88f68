package student

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/psqlbuilder"
)

var studentColumns = []string{
	"id",
	"full_name",
	"birth_year",
	"remaining_credits",
	"has_debt",
	"is_active",
	"weekly_schedule",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со студентами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория студентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись студента (используется для bootstrap и тестовых данных)
func (r *Repository) Create(ctx context.Context, s *domain.Student) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	scheduleJSON, err := json.Marshal(s.WeeklySchedule)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal weekly schedule: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("students").
		Columns(
			"id",
			"full_name",
			"birth_year",
			"remaining_credits",
			"has_debt",
			"is_active",
			"weekly_schedule",
		).
		Values(
			s.ID,
			s.FullName,
			s.BirthYear,
			s.RemainingCredits,
			s.HasDebt,
			s.IsActive,
			scheduleJSON,
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

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает студента по ID.
// Внутри транзакции строка блокируется через FOR UPDATE: баланс кредитов
// читается и изменяется только сериализованно.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanStudent(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan student: %w", ErrScanRow, err)
	}

	return s, nil
}

// GetActive получает всех активных студентов
func (r *Repository) GetActive(ctx context.Context) ([]*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("full_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// AdjustCredits изменяет баланс кредитов студента на delta
// (отрицательная delta списывает кредиты)
func (r *Repository) AdjustCredits(ctx context.Context, id uuid.UUID, delta int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("students").
		Set("remaining_credits", squirrel.Expr("remaining_credits + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AdjustCredits - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AdjustCredits - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AdjustCredits - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStudentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanStudent сканирует одну строку таблицы students
func scanStudent(row rowScanner) (*domain.Student, error) {
	var (
		s            domain.Student
		scheduleJSON []byte
		createdAt    sql.NullTime
		updatedAt    sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.FullName,
		&s.BirthYear,
		&s.RemainingCredits,
		&s.HasDebt,
		&s.IsActive,
		&scheduleJSON,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	if err = json.Unmarshal(scheduleJSON, &s.WeeklySchedule); err != nil {
		return nil, fmt.Errorf("%w: weekly_schedule: %v", ErrDecode, err)
	}

	return &s, nil
}

// scanStudents сканирует результаты запроса в слайс студентов
func scanStudents(rows *sql.Rows) ([]*domain.Student, error) {
	students := make([]*domain.Student, 0)

	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanStudents - scan row: %w", ErrScanRow, err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanStudents - rows error: %w", ErrScanRow, err)
	}

	return students, nil
}
