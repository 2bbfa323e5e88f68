package slot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/psqlbuilder"
)

// slotColumns общий список колонок таблицы slots
var slotColumns = []string{
	"key",
	"slot_date",
	"time_band_id",
	"season_id",
	"category_id",
	"template_id",
	"capacity",
	"is_break",
	"attendee_ids",
	"locks",
	"attendees_deducted",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает слот или перезаписывает его поля по ключу (date_timeband).
// Повторная генерация одного диапазона даёт тот же набор слотов, а не дубли.
func (r *Repository) Upsert(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	locksJSON, err := json.Marshal(s.Locks)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal locks: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"key",
			"slot_date",
			"time_band_id",
			"season_id",
			"category_id",
			"template_id",
			"capacity",
			"is_break",
			"attendee_ids",
			"locks",
			"attendees_deducted",
		).
		Values(
			s.Key.String(),
			s.Key.Date,
			s.Key.TimeBandID,
			s.SeasonID,
			s.CategoryID,
			s.TemplateID,
			s.Capacity,
			s.IsBreak,
			pq.Array(uuidsToStrings(s.AttendeeIDs)),
			locksJSON,
			pq.Array(uuidsToStrings(s.AttendeesDeducted)),
		).
		Suffix(`ON CONFLICT (key) DO UPDATE SET
			season_id = EXCLUDED.season_id,
			category_id = EXCLUDED.category_id,
			template_id = EXCLUDED.template_id,
			capacity = EXCLUDED.capacity,
			is_break = EXCLUDED.is_break,
			attendee_ids = EXCLUDED.attendee_ids,
			locks = EXCLUDED.locks,
			attendees_deducted = EXCLUDED.attendees_deducted,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByKey получает слот по составному ключу.
// Внутри транзакции строка блокируется через FOR UPDATE, чтобы
// конкурирующие бронирования одного слота сериализовались.
func (r *Repository) GetByKey(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"key": key.String()})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan slot: %w", ErrScanRow, err)
	}

	return s, nil
}

// GetByDateRange получает слоты с датой в диапазоне [from, to] включительно
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.GtOrEq{"slot_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"slot_date": domain.DateOnly(to)}).
		OrderBy("slot_date ASC, time_band_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetPendingSettlement получает слоты окна settlement sweep: дата в
// [from, to] и есть хотя бы один участник, ещё не отмеченный в deducted
func (r *Repository) GetPendingSettlement(ctx context.Context, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.GtOrEq{"slot_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"slot_date": domain.DateOnly(to)}).
		Where(squirrel.Expr("NOT (attendee_ids <@ attendees_deducted)")).
		OrderBy("slot_date ASC, time_band_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingSettlement - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingSettlement - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetByAttendee получает слоты диапазона, где студент записан или держит лок
func (r *Repository) GetByAttendee(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.GtOrEq{"slot_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"slot_date": domain.DateOnly(to)}).
		Where(squirrel.Or{
			squirrel.Expr("? = ANY(attendee_ids)", studentID.String()),
			squirrel.Expr("locks @> ?", fmt.Sprintf(`[{"studentId": %q}]`, studentID.String())),
		}).
		OrderBy("slot_date ASC, time_band_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAttendee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAttendee - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// UpdateOccupancy перезаписывает наборы участников, локов и deducted-отметок слота
func (r *Repository) UpdateOccupancy(ctx context.Context, s *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	locksJSON, err := json.Marshal(s.Locks)
	if err != nil {
		return fmt.Errorf("%w: UpdateOccupancy - marshal locks: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update("slots").
		Set("attendee_ids", pq.Array(uuidsToStrings(s.AttendeeIDs))).
		Set("locks", locksJSON).
		Set("attendees_deducted", pq.Array(uuidsToStrings(s.AttendeesDeducted))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"key": s.Key.String()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateOccupancy - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateOccupancy - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateOccupancy - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteByDateRange удаляет все слоты диапазона [from, to].
// Используется генератором для идемпотентной перегенерации: уже
// сделанные бронирования диапазона при этом теряются.
func (r *Repository) DeleteByDateRange(ctx context.Context, from, to time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.GtOrEq{"slot_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"slot_date": domain.DateOnly(to)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDateRange - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDateRange - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDateRange - get rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlot сканирует одну строку таблицы slots в domain.Slot
func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		keyStr            string
		slotDate          time.Time
		timeBandID        string
		locksJSON         []byte
		attendeeIDs       pq.StringArray
		attendeesDeducted pq.StringArray
		createdAt         sql.NullTime
		updatedAt         sql.NullTime
		s                 domain.Slot
	)

	err := row.Scan(
		&keyStr,
		&slotDate,
		&timeBandID,
		&s.SeasonID,
		&s.CategoryID,
		&s.TemplateID,
		&s.Capacity,
		&s.IsBreak,
		&attendeeIDs,
		&locksJSON,
		&attendeesDeducted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Key = domain.NewSlotKey(slotDate, timeBandID)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	if s.AttendeeIDs, err = stringsToUUIDs(attendeeIDs); err != nil {
		return nil, fmt.Errorf("%w: attendee_ids: %v", ErrDecode, err)
	}
	if s.AttendeesDeducted, err = stringsToUUIDs(attendeesDeducted); err != nil {
		return nil, fmt.Errorf("%w: attendees_deducted: %v", ErrDecode, err)
	}
	if err = json.Unmarshal(locksJSON, &s.Locks); err != nil {
		return nil, fmt.Errorf("%w: locks: %v", ErrDecode, err)
	}

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

func uuidsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
