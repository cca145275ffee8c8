// Package metadata implements the on-device key-value store backing the
// session token and the vehicle cache snapshots.
package metadata

import (
	"context"
)

// Repository is a persistent string-key/blob-value store.
// A missing key is a valid state: Get returns (nil, nil).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
