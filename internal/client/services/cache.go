package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/packtrack/packtrack/internal/client/repositories/kvstore"
	"github.com/packtrack/packtrack/internal/logging"
)

// DefaultFreshnessWindow is how long a fetched collection counts as fresh.
// Within the window a non-forced fetch is a no-op.
const DefaultFreshnessWindow = 5 * time.Minute

// collection is the shared state machine behind the entity caches: an
// in-memory slice with a last-fetch timestamp, mirrored to the kvstore
// after every successful change.
//
// Rules:
//   - reads never block and never fail; an unhydrated collection reads
//     as empty;
//   - a failed fetch leaves the current data in place (stale but
//     available);
//   - a fetch snapshot that started before the last successful mutation
//     is discarded, so a slow refresh cannot roll back a newer local
//     state.
type collection[T any] struct {
	entity   string
	dataKey  string
	stampKey string
	window   time.Duration
	kv       kvstore.Repository
	log      logging.Logger

	mu          sync.Mutex
	items       []T
	fetchedAt   time.Time // zero means never successfully fetched
	hydrated    bool
	loading     bool
	lastMutated time.Time
}

func newCollection[T any](entity, dataKey, stampKey string, window time.Duration, kv kvstore.Repository, log logging.Logger) *collection[T] {
	if window <= 0 {
		window = DefaultFreshnessWindow
	}
	return &collection[T]{
		entity:   entity,
		dataKey:  dataKey,
		stampKey: stampKey,
		window:   window,
		kv:       kv,
		log:      log,
	}
}

// List returns a copy of the held collection. Never nil.
func (c *collection[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Loading reports whether a fetch is in flight.
func (c *collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastFetched returns the time of the last successful fetch, zero when
// the collection has never been fetched in this process lifetime.
func (c *collection[T]) LastFetched() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt
}

// hydrate restores the collection and its timestamp from the kvstore.
// Called once at startup; any trouble degrades to an empty cache.
func (c *collection[T]) hydrate(ctx context.Context) {
	raw, err := c.kv.Get(ctx, c.dataKey)
	if err != nil {
		c.log.Warn(ctx, "failed to read cached collection", "entity", c.entity, "error", err)
		return
	}
	if raw == nil {
		return
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn(ctx, "cached collection is corrupt, ignoring", "entity", c.entity, "error", err)
		return
	}

	var fetchedAt time.Time
	if rawStamp, err := c.kv.Get(ctx, c.stampKey); err == nil && rawStamp != nil {
		// A missing or corrupt stamp just means "stale": the data is
		// still worth serving.
		_ = json.Unmarshal(rawStamp, &fetchedAt)
	}

	c.mu.Lock()
	c.items = items
	c.fetchedAt = fetchedAt
	c.hydrated = true
	c.mu.Unlock()
	c.log.Debug(ctx, "collection hydrated from storage", "entity", c.entity, "count", len(items))
}

// beginFetch decides whether a fetch should run and, if so, marks it in
// flight. Returns the snapshot start time used by completeFetch to detect
// stale results.
func (c *collection[T]) beginFetch(force bool) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fresh := !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.window && len(c.items) > 0
	if !force && fresh {
		return time.Time{}, false
	}
	c.loading = true
	return time.Now(), true
}

// completeFetch installs a fetch result and mirrors it to storage.
// Returns false when the snapshot lost the race against a newer local
// mutation and was discarded.
func (c *collection[T]) completeFetch(ctx context.Context, items []T, startedAt time.Time) bool {
	c.mu.Lock()
	c.loading = false
	if startedAt.Before(c.lastMutated) {
		c.mu.Unlock()
		c.log.Debug(ctx, "discarding fetch older than last mutation", "entity", c.entity)
		return false
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.fetchedAt = time.Now()
	c.hydrated = true
	snapshot, stamp := c.items, c.fetchedAt
	c.mu.Unlock()

	c.persist(ctx, snapshot, stamp)
	return true
}

// failFetch records a fetch failure. The held collection stays untouched;
// a never-hydrated cache settles on an explicit empty collection so the
// UI has a defined state to render.
func (c *collection[T]) failFetch(ctx context.Context, err error) {
	c.mu.Lock()
	c.loading = false
	if !c.hydrated {
		c.items = []T{}
		c.hydrated = true
	}
	c.mu.Unlock()
	c.log.Warn(ctx, "fetch failed, serving cached data", "entity", c.entity, "error", err)
}

// mutate applies fn to the collection under the lock, stamps the mutation
// time, and mirrors the result. Used for optimistic local updates after a
// confirmed remote mutation.
func (c *collection[T]) mutate(ctx context.Context, fn func([]T) []T) {
	c.mu.Lock()
	c.items = fn(c.items)
	if c.items == nil {
		c.items = []T{}
	}
	c.hydrated = true
	c.lastMutated = time.Now()
	snapshot, stamp := c.items, c.fetchedAt
	c.mu.Unlock()

	c.persist(ctx, snapshot, stamp)
}

// markMutated stamps the mutation time without touching the collection.
// Used when the reconciliation is a follow-up forced fetch.
func (c *collection[T]) markMutated() {
	c.mu.Lock()
	c.lastMutated = time.Now()
	c.mu.Unlock()
}

// clear empties the collection and its persisted mirror. No remote call.
func (c *collection[T]) clear(ctx context.Context) {
	c.mu.Lock()
	c.items = []T{}
	c.fetchedAt = time.Time{}
	c.hydrated = false
	c.lastMutated = time.Now()
	c.mu.Unlock()

	if err := c.kv.Delete(ctx, c.dataKey); err != nil {
		c.log.Warn(ctx, "failed to clear cached collection", "entity", c.entity, "error", err)
	}
	if err := c.kv.Delete(ctx, c.stampKey); err != nil {
		c.log.Warn(ctx, "failed to clear cache stamp", "entity", c.entity, "error", err)
	}
}

// persist mirrors the collection and its stamp atomically. A storage
// failure is logged only: memory stays authoritative until the next
// successful write.
func (c *collection[T]) persist(ctx context.Context, items []T, fetchedAt time.Time) {
	data, err := json.Marshal(items)
	if err != nil {
		c.log.Error(ctx, "failed to encode collection", "entity", c.entity, "error", err)
		return
	}
	stamp, err := json.Marshal(fetchedAt)
	if err != nil {
		c.log.Error(ctx, "failed to encode cache stamp", "entity", c.entity, "error", err)
		return
	}
	pairs := map[string][]byte{c.dataKey: data, c.stampKey: stamp}
	if err := c.kv.SetMany(ctx, pairs); err != nil {
		c.log.Warn(ctx, "failed to persist collection", "entity", c.entity, "error", err)
	}
}
