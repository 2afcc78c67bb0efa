package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/clubkit/roster-service/internal/usecase"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// storageErr classifies timeouts and dead-connection failures as a retryable
// dependency outage. Everything else (constraint violations, rule errors,
// programming mistakes) passes through untouched.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	}
	return err
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
