package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/dbmetrics"
)

const (
	// maxRetries максимальное число попыток сериализуемой транзакции
	maxRetries = 3

	// retryBaseDelay базовая задержка между попытками (растет линейно)
	retryBaseDelay = 10 * time.Millisecond
)

var (
	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetryExhausted возвращается, когда все попытки сериализуемой транзакции исчерпаны
	ErrRetryExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryMetrics счётчик повторов сериализуемых транзакций
type RetryMetrics interface {
	IncTxRetry(outcome string)
}

// TransactionManager менеджер транзакций поверх dbmetrics.DB.
// Транзакция передается в репозитории через контекст (dbmetrics.WithTx),
// поэтому код usecase не знает о *sql.Tx.
type TransactionManager struct {
	db      TxBeginner
	metrics RetryMetrics
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// NewTransactionManagerWithMetrics создает менеджер транзакций,
// публикующий счётчики повторов сериализации
func NewTransactionManagerWithMetrics(db TxBeginner, m RetryMetrics) *TransactionManager {
	return &TransactionManager{db: db, metrics: m}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (Read Committed)
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции с повтором
// при конфликте сериализации (SQLSTATE 40001) или deadlock (40P01).
// Конкурирующие транзакции над одним слотом сериализуются: одна фиксируется,
// вторая получает конфликт и перечитывает состояние на повторе.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = m.run(ctx, opts, fn)
		if lastErr == nil {
			return nil
		}
		if !IsSerializationError(lastErr) {
			return lastErr
		}
		if ctx.Err() != nil {
			return lastErr
		}
		if m.metrics != nil {
			m.metrics.IncTxRetry("retry")
		}

		// Линейный backoff перед повтором
		select {
		case <-time.After(time.Duration(attempt) * retryBaseDelay):
		case <-ctx.Done():
			return lastErr
		}
	}

	if m.metrics != nil {
		m.metrics.IncTxRetry("exhausted")
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, maxRetries, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// IsSerializationError распознает ошибки, после которых транзакцию можно повторить
func IsSerializationError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 40001 serialization_failure, 40P01 deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
