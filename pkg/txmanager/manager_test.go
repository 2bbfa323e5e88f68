package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr error
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (t *fakeTx) Commit() error   { return t.commitErr }
func (t *fakeTx) Rollback() error { return nil }

type fakeTxBeginner struct {
	commitErr error
}

func (b *fakeTxBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return &fakeTx{commitErr: b.commitErr}, nil
}

type fakeRetryMetrics struct {
	outcomes []string
}

func (m *fakeRetryMetrics) IncTxRetry(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

func serializationFailure() error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_RetriesWrappedSerializationFailure(t *testing.T) {
	mgr := NewTransactionManager(&fakeTxBeginner{})

	// Ошибка драйвера, обёрнутая по пути репозиторий -> usecase
	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		repoErr := fmt.Errorf("storage: UpdateOccupancy - execute update: %w", serializationFailure())
		return fmt.Errorf("internal error: Execute - update slot: %w", repoErr)
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 3, attempts)
}

func TestDoSerializable_RetriesCommitSerializationFailure(t *testing.T) {
	mgr := NewTransactionManager(&fakeTxBeginner{commitErr: serializationFailure()})

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.ErrorIs(t, err, ErrCommitTx)
	assert.Equal(t, 3, attempts)
}

func TestDoSerializable_SucceedsAfterConflict(t *testing.T) {
	mgr := NewTransactionManager(&fakeTxBeginner{})

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("storage: execute update: %w", serializationFailure())
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoSerializable_BusinessErrorNotRetried(t *testing.T) {
	mgr := NewTransactionManager(&fakeTxBeginner{})
	errBusiness := errors.New("slot is full")

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_RetryMetrics(t *testing.T) {
	m := &fakeRetryMetrics{}
	mgr := NewTransactionManagerWithMetrics(&fakeTxBeginner{}, m)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("storage: execute update: %w", serializationFailure())
	})

	require.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, []string{"retry", "retry", "retry", "exhausted"}, m.outcomes)
}

func TestIsSerializationError(t *testing.T) {
	assert.True(t, IsSerializationError(&pq.Error{Code: "40001"}))
	assert.True(t, IsSerializationError(&pq.Error{Code: "40P01"}))
	assert.True(t, IsSerializationError(fmt.Errorf("wrapped: %w", &pq.Error{Code: "40001"})))
	assert.False(t, IsSerializationError(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationError(errors.New("plain error")))
}
