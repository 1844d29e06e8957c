package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type PoolConfig struct {
	URL          string
	MaxConns     int32
	ConnectRetry time.Duration
}

// Connect opens a pgx pool and waits until it answers a ping, retrying for at most
// cfg.ConnectRetry.
func Connect(ctx context.Context, cfg PoolConfig, l *logrus.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = cfg.ConnectRetry

	attempt := 0
	pingErr := backoff.RetryNotify(
		func() error { return pool.Ping(ctx) },
		backoff.WithContext(b, ctx),
		func(err error, next time.Duration) {
			attempt++
			l.WithError(err).
				WithField("attempt", attempt).
				Warnf("postgres is not reachable, retrying in %s", next.Round(time.Millisecond))
		},
	)
	if pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to postgres: %w", pingErr)
	}

	return pool, nil
}
