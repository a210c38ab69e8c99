// Package kvstore implements the durable string-keyed store backing the
// session and the entity caches. Values are opaque byte slices; callers
// own serialization.
package kvstore

import "context"

// Well-known keys. Each consumer uses a disjoint namespace so partial
// corruption of one entry never invalidates the others.
const (
	KeySession       = "session"
	KeyDeviceID      = "device_id"
	KeyItems         = "items:data"
	KeyItemsFetched  = "items:fetched_at"
	KeyItemsActivity = "items:activity"
	KeyBoxes         = "boxes:data"
	KeyBoxesFetched  = "boxes:fetched_at"
)

// Repository is the persistence contract. Get returns (nil, nil) when the
// key is absent; Delete and Clear are idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all pairs atomically: either every key is updated
	// or none is.
	SetMany(ctx context.Context, pairs map[string][]byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
