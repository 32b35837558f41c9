package ports

import (
	"context"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/transit"
)

// TransitRepository defines the persistence contract for transit records.
// A record is keyed by the (package, courier) pair; a courier who carries
// the same package twice reuses one record with a restarted leg.
type TransitRepository interface {
	// Add persists a new transit record.
	Add(ctx context.Context, record *transit.Record) error

	// Update persists changes to an existing transit record.
	Update(ctx context.Context, record *transit.Record) error

	// Get retrieves the transit record for a courier on a package.
	// Returns an errs.ObjectNotFoundError when the courier never carried
	// the package.
	Get(ctx context.Context, packageID kernel.UUID, courierID kernel.UUID) (*transit.Record, error)
}
