// Package rediscache caches package views in Redis so feed and detail reads
// do not hit PostgreSQL on every request. Entries expire after a short TTL
// and are invalidated explicitly after lifecycle transitions.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"relay/internal/core/application/usecases/queries"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	packageKeyPrefix = "package:view:"

	// DefaultTTL bounds staleness of cached views between invalidations.
	DefaultTTL = 5 * time.Minute
)

// PackageCache is a Redis backed implementation of queries.PackageCache.
type PackageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPackageCache creates a cache around the given Redis client.
// A non-positive ttl falls back to DefaultTTL.
func NewPackageCache(client *redis.Client, ttl time.Duration) *PackageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PackageCache{client: client, ttl: ttl}
}

// Get returns the cached view for a package. A miss is reported with
// errs.ErrObjectNotFound; transport failures are reported as upstream errors.
func (c *PackageCache) Get(ctx context.Context, packageID kernel.UUID) (queries.GetPackageQueryResponse, error) {
	payload, err := c.client.Get(ctx, packageKey(packageID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return queries.GetPackageQueryResponse{}, errs.NewObjectNotFoundError("package", packageID)
	}
	if err != nil {
		return queries.GetPackageQueryResponse{}, errs.NewUpstreamIOErrorWithCause("cache get", err)
	}

	var response queries.GetPackageQueryResponse
	if err = json.Unmarshal(payload, &response); err != nil {
		return queries.GetPackageQueryResponse{}, errs.NewUpstreamIOErrorWithCause("cache decode", err)
	}
	return response, nil
}

// Set stores the view under the package id with the configured TTL.
func (c *PackageCache) Set(ctx context.Context, response queries.GetPackageQueryResponse) error {
	payload, err := json.Marshal(response)
	if err != nil {
		return errs.NewUpstreamIOErrorWithCause("cache encode", err)
	}

	if err = c.client.Set(ctx, packageKey(response.ID), payload, c.ttl).Err(); err != nil {
		return errs.NewUpstreamIOErrorWithCause("cache set", err)
	}
	return nil
}

// Invalidate drops the cached view after a lifecycle transition so the next
// read reflects the committed state.
func (c *PackageCache) Invalidate(ctx context.Context, packageID kernel.UUID) error {
	if err := c.client.Del(ctx, packageKey(packageID)).Err(); err != nil {
		return errs.NewUpstreamIOErrorWithCause("cache invalidate", err)
	}
	return nil
}

func packageKey(packageID kernel.UUID) string {
	return packageKeyPrefix + packageID.String()
}
