package pool_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/opst/hbnb/pkg/conn/db/postgres/pool"
)

type fakeTx struct {
	commitErr   error
	rollbackErr error

	committed  int
	rolledBack int
}

func (*fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic(errors.New("should not be called"))
}
func (*fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic(errors.New("should not be called"))
}
func (*fakeTx) QueryRow(context.Context, string, ...any) pgx.Row {
	panic(errors.New("should not be called"))
}
func (tx *fakeTx) Commit(context.Context) error {
	tx.committed++
	return tx.commitErr
}
func (tx *fakeTx) Rollback(context.Context) error {
	tx.rolledBack++
	return tx.rollbackErr
}

type fakeBegin struct {
	tx  *fakeTx
	err error
}

func (b fakeBegin) Begin(context.Context) (pool.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestInTx(t *testing.T) {
	ctx := context.Background()

	t.Run("it commits when f succeeds", func(t *testing.T) {
		tx := &fakeTx{}
		var passed pool.Tx
		err := pool.InTx(ctx, fakeBegin{tx: tx}, func(got pool.Tx) error {
			passed = got
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if passed != tx {
			t.Error("transaction is not passed to f")
		}
		if tx.committed != 1 || tx.rolledBack != 0 {
			t.Errorf("commit: %d, rollback: %d", tx.committed, tx.rolledBack)
		}
	})

	t.Run("it returns the error of Commit", func(t *testing.T) {
		expectedErr := errors.New("commit error")
		tx := &fakeTx{commitErr: expectedErr}
		err := pool.InTx(ctx, fakeBegin{tx: tx}, func(pool.Tx) error { return nil })
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("it rolls back when f fails", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		tx := &fakeTx{}
		err := pool.InTx(ctx, fakeBegin{tx: tx}, func(pool.Tx) error { return expectedErr })
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
		if tx.committed != 0 || tx.rolledBack != 1 {
			t.Errorf("commit: %d, rollback: %d", tx.committed, tx.rolledBack)
		}
	})

	t.Run("an error on rollback is joined", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		rollbackErr := errors.New("rollback error")
		tx := &fakeTx{rollbackErr: rollbackErr}
		err := pool.InTx(ctx, fakeBegin{tx: tx}, func(pool.Tx) error { return expectedErr })
		if !errors.Is(err, expectedErr) || !errors.Is(err, rollbackErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("closed transaction on rollback is not an error", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		tx := &fakeTx{rollbackErr: pgx.ErrTxClosed}
		err := pool.InTx(ctx, fakeBegin{tx: tx}, func(pool.Tx) error { return expectedErr })
		if !errors.Is(err, expectedErr) || errors.Is(err, pgx.ErrTxClosed) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("it returns the error of Begin without calling f", func(t *testing.T) {
		expectedErr := errors.New("begin error")
		err := pool.InTx(ctx, fakeBegin{err: expectedErr}, func(pool.Tx) error {
			t.Fatal("f should not be called")
			return nil
		})
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
