// Package pgerr translates PostgreSQL driver errors into sentinels the rest of
// the adapters can test with errors.Is.
package pgerr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes handled by Map.
const (
	codeUniqueViolation  = "23505"
	codeLockNotAvailable = "55P03"
	codeDeadlockDetected = "40P01"
)

var (
	// ErrDuplicateKey is a unique constraint violation.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrLockTimeout means a row lock was not granted within lock_timeout.
	ErrLockTimeout = errors.New("lock timeout")
	// ErrDeadlock means the transaction was chosen as a deadlock victim.
	ErrDeadlock = errors.New("deadlock detected")
)

// Map wraps known driver errors with a sentinel and keeps the original error
// in the chain. Unknown errors are returned unchanged.
func Map(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w on %s: %w", ErrDuplicateKey, pgErr.ConstraintName, err)
	case codeLockNotAvailable:
		return fmt.Errorf("%w: %w", ErrLockTimeout, err)
	case codeDeadlockDetected:
		return fmt.Errorf("%w: %w", ErrDeadlock, err)
	}

	return err
}
