package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tair/stock-reservation/pkg/logger"
)

const (
	maxTxAttempts = 3
	retryBackoff  = 50 * time.Millisecond
)

// Postgres SQLSTATE codes that indicate a transaction worth retrying:
// serialization_failure and deadlock_detected.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}

// runWithRetry re-runs op when it fails with a transient serialization error,
// backing off linearly between attempts. Anything else surfaces immediately.
func runWithRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = op()
		if err == nil || !isRetryable(err) || attempt >= maxTxAttempts {
			return err
		}

		logger.Warn(ctx).
			Err(err).
			Int("attempt", attempt).
			Msg("Retrying transaction after transient failure")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
}
