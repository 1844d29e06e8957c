package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is the part of *pgxpool.Pool the repositories use. pgxmock.PgxPoolIface satisfies it too.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	PgxExecutor
}

// PgxExecutor is an interface that matches both *pgxpool.Pool and pgx.Tx
type PgxExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Option func(*Database)

// WithReadRetry bounds the total time spent retrying a transient read failure.
func WithReadRetry(maxElapsed time.Duration) Option {
	return func(d *Database) {
		d.readMaxElapsed = maxElapsed
	}
}

// WithTxRetry sets how many times a transaction rolled back by the server is run again.
func WithTxRetry(maxRetries uint64, initialInterval time.Duration) Option {
	return func(d *Database) {
		d.txMaxRetries = maxRetries
		d.initialInterval = initialInterval
	}
}

type Database struct {
	pool Pool

	readMaxElapsed  time.Duration
	txMaxRetries    uint64
	initialInterval time.Duration
}

func NewDatabase(pool Pool, opts ...Option) *Database {
	d := &Database{
		pool:            pool,
		readMaxElapsed:  2 * time.Second,
		txMaxRetries:    3,
		initialInterval: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type txKey struct{}

// RunAtomic executes fn within a transaction. Queries issued by the repositories with the
// context passed to fn run on that transaction. A nested call joins the outer transaction.
//
// When the server aborts the transaction with a serialization failure or a deadlock nothing has
// been applied, so fn is run again from scratch. Any other error, including a failed commit, is
// returned as is.
func (d *Database) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.initialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, d.txMaxRetries), ctx)

	return backoff.Retry(func() error {
		atCommit, err := d.runTx(ctx, fn)
		if err != nil && (atCommit || !isTxRetryable(err)) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

// runTx reports whether a returned error came from the commit, whose outcome is unknown.
func (d *Database) runTx(ctx context.Context, fn func(ctx context.Context) error) (bool, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return false, convertErr(err, nil, "begin transaction")
	}

	// A failed commit closes the transaction on its own, so rollback only covers
	// the paths that never reached it.
	finished := false
	defer func() {
		if !finished {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		finished = true
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return false, errors.Join(err, convertErr(rbErr, nil, "rollback transaction"))
		}
		return false, err
	}

	finished = true
	if err := tx.Commit(ctx); err != nil {
		return true, convertErr(err, nil, "commit transaction")
	}

	return false, nil
}

func (d *Database) getExecutor(ctx context.Context) PgxExecutor {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return d.pool
}

// read runs a read-only operation, retrying it on transient failures while it is not part of a
// transaction. Inside a transaction a failed statement aborts the whole transaction, so there is
// nothing to retry.
func (d *Database) read(ctx context.Context, op func(q PgxExecutor) error) error {
	q := d.getExecutor(ctx)
	if _, inTx := ctx.Value(txKey{}).(pgx.Tx); inTx || d.readMaxElapsed <= 0 {
		return op(q)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.initialInterval
	b.MaxElapsedTime = d.readMaxElapsed

	return backoff.Retry(func() error {
		err := op(q)
		if err != nil && !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(b, ctx))
}

func isTxRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == serializationFailureCode || pgErr.Code == deadlockDetectedCode
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgconn.SafeToRetry(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == connectionExceptionClass ||
			pgErr.Code == adminShutdownCode ||
			pgErr.Code == serializationFailureCode ||
			pgErr.Code == deadlockDetectedCode
	}
	return false
}

func mustOneRow(tag pgconn.CommandTag, notFound error) error {
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
