package ports

import (
	"context"
	"time"
)

// MediaStore abstracts the blob storage holding package cover images.
// Uploads happen outside the creation transaction, so a failed creation
// can leave an image behind; the cleanup sweep uses this interface to
// find and remove such orphans.
type MediaStore interface {
	// List returns the URLs of all stored media objects together with
	// their upload time.
	List(ctx context.Context) (map[string]time.Time, error)

	// Remove deletes the media object behind the given URL.
	// Removing an unknown URL is not an error.
	Remove(ctx context.Context, url string) error
}
