// Package pgerr classifies PostgreSQL errors for the persistence adapters.
// The atomic units run at serializable isolation, so any statement or commit
// may fail with a serialization error; those are translated to the domain
// conflict error so command handlers can retry the whole unit.
package pgerr

import (
	"errors"

	"relay/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE codes Postgres raises when a serializable transaction loses a race.
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// IsSerializationFailure reports whether the error is a PostgreSQL
// serialization failure or deadlock. Both the pgx driver used by GORM and
// the lib/pq driver used for plain database/sql connections are recognized.
func IsSerializationFailure(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == serializationFailure || pgxErr.Code == deadlockDetected
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == serializationFailure || pqErr.Code == deadlockDetected
	}

	return false
}

// Convert maps serialization failures to a domain conflict error and passes
// every other error through unchanged. The operation names the statement
// scope for diagnostics.
func Convert(operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsSerializationFailure(err) {
		return errs.NewConflictErrorWithCause(operation, 0, err)
	}
	return err
}
