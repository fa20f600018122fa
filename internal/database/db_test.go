package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"medisecure/internal/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestFakeDB(t *testing.T) {
	db := &FakeDB{}
	require.Panics(t, func() { db.Exec(context.Background(), "") })
	require.Panics(t, func() { db.Query(context.Background(), "") })
	require.Panics(t, func() { db.QueryRow(context.Background(), "") })
	require.Panics(t, func() { db.Begin(context.Background()) })
	require.Panics(t, func() { db.Ping(context.Background()) })
	db.Close()

	execCalled := false
	pingCalled := false
	closeCalled := false
	db.ExecFn = func(ctx context.Context, s string, args ...any) (pgconn.CommandTag, error) {
		execCalled = true
		return pgconn.CommandTag{}, errors.New("e")
	}
	db.QueryFn = func(ctx context.Context, s string, args ...any) (pgx.Rows, error) {
		return &FakeRows{}, nil
	}
	db.QueryRowFn = func(ctx context.Context, s string, args ...any) pgx.Row {
		return FakeRow{}
	}
	db.PingFn = func(ctx context.Context) error { pingCalled = true; return nil }
	db.CloseFn = func() { closeCalled = true }

	_, err := db.Exec(context.Background(), "sql")
	require.Error(t, err)
	rows, err := db.Query(context.Background(), "sql")
	require.NoError(t, err)
	require.False(t, rows.Next())
	require.NoError(t, db.QueryRow(context.Background(), "sql").Scan())
	require.NoError(t, db.Ping(context.Background()))
	db.Close()
	require.True(t, execCalled)
	require.True(t, pingCalled)
	require.True(t, closeCalled)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		tx := &FakeTx{}
		err := WithTx(ctx, TxDB(tx), func(q Querier) error { return nil })
		require.NoError(t, err)
		require.True(t, tx.Committed)
		require.False(t, tx.RolledBack)
	})

	t.Run("fn error rolls back", func(t *testing.T) {
		tx := &FakeTx{}
		err := WithTx(ctx, TxDB(tx), func(q Querier) error { return errors.New("boom") })
		require.EqualError(t, err, "boom")
		require.False(t, tx.Committed)
		require.True(t, tx.RolledBack)
	})

	t.Run("panic rolls back", func(t *testing.T) {
		tx := &FakeTx{}
		require.Panics(t, func() {
			_ = WithTx(ctx, TxDB(tx), func(q Querier) error { panic("bad") })
		})
		require.True(t, tx.RolledBack)
	})

	t.Run("begin error", func(t *testing.T) {
		db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return nil, errors.New("begin") }}
		called := false
		err := WithTx(ctx, db, func(q Querier) error { called = true; return nil })
		require.Error(t, err)
		require.False(t, called)
	})

	t.Run("commit error", func(t *testing.T) {
		tx := &FakeTx{CommitErr: errors.New("commit")}
		err := WithTx(ctx, TxDB(tx), func(q Querier) error { return nil })
		require.Error(t, err)
	})
}

func TestClassify(t *testing.T) {
	require.NoError(t, Classify(nil))

	err := Classify(fmt.Errorf("scan: %w", pgx.ErrNoRows))
	require.ErrorIs(t, err, apperr.ErrNotFound)

	err = Classify(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	require.ErrorIs(t, err, apperr.ErrUniquenessViolation)
	require.Contains(t, err.Error(), "users_email_key")

	other := &pgconn.PgError{Code: "23503"}
	require.Equal(t, error(other), Classify(other))
}

func TestFakeRowAssign(t *testing.T) {
	type status string
	var (
		id  int
		s   status
		loc *string
		age *int
	)
	where := "Taipei"
	require.NoError(t, FakeRow{Values: []any{7, "pending", &where, nil}}.Scan(&id, &s, &loc, &age))
	require.Equal(t, 7, id)
	require.Equal(t, status("pending"), s)
	require.Equal(t, "Taipei", *loc)
	require.Nil(t, age)

	require.Error(t, FakeRow{Values: []any{1}}.Scan(&id, &s))
	require.Error(t, FakeRow{Values: []any{1}}.Scan(&s))
	require.Error(t, FakeRow{Err: pgx.ErrNoRows}.Scan(&id))
}
