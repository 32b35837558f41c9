// Package ports defines repository interfaces for the relay domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/pack"
)

// PackageRepository defines the persistence contract for package aggregates.
type PackageRepository interface {
	// Add persists a new package aggregate to storage.
	// The package must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *pack.Package) error

	// Update persists changes to an existing package aggregate.
	// The package must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *pack.Package) error

	// Get retrieves a package aggregate by its unique identifier.
	// Returns an errs.ObjectNotFoundError when no such package exists.
	Get(ctx context.Context, id kernel.UUID) (*pack.Package, error)

	// ListCoverImageURLs returns the cover image URLs referenced by any
	// stored package. Used by the orphaned media sweep to decide which
	// stored images are still reachable.
	ListCoverImageURLs(ctx context.Context) ([]string, error)
}
