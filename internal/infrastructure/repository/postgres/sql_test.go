package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/clubkit/roster-service/internal/usecase"
)

func TestStorageErr(t *testing.T) {
	t.Run("classifies deadline exceeded", func(t *testing.T) {
		err := storageErr(fmt.Errorf("query lineup: %w", context.DeadlineExceeded))
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected dependency unavailable, got %v", err)
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("original cause lost: %v", err)
		}
	})

	t.Run("classifies bad connection", func(t *testing.T) {
		err := storageErr(driver.ErrBadConn)
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected dependency unavailable, got %v", err)
		}
	})

	t.Run("classifies closed connection", func(t *testing.T) {
		err := storageErr(sql.ErrConnDone)
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected dependency unavailable, got %v", err)
		}
	})

	t.Run("passes other errors through", func(t *testing.T) {
		cause := fakeErr("pq: duplicate key value violates unique constraint")
		err := storageErr(cause)
		if errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("constraint error misclassified as outage: %v", err)
		}
		if err != error(cause) {
			t.Fatalf("expected pass-through, got %v", err)
		}
	})

	t.Run("keeps nil nil", func(t *testing.T) {
		if err := storageErr(nil); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})
}

func TestNullableInt(t *testing.T) {
	t.Run("dereferences value", func(t *testing.T) {
		v := 7
		if got := nullableInt(&v); got != 7 {
			t.Fatalf("expected 7, got %v", got)
		}
	})

	t.Run("returns nil for nil", func(t *testing.T) {
		if got := nullableInt(nil); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
