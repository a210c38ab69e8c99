// Package services contains the application services of the client core:
// the entity caches for items and boxes, the packing client, and the
// dimension-inference client.
//
// # Entity caches
//
// ItemService and BoxService share one contract, built on a generic
// collection core:
//
//   - List is a synchronous read of the held collection: it never blocks,
//     never fails, and returns an empty slice before first hydration.
//   - Fetch refreshes from the server unless the cache is fresh (within
//     the freshness window) and non-empty. Failures degrade: the cache
//     keeps serving stale data and only logs the error.
//   - Create appends the server-echoed entity in place (no refetch);
//     Update reconciles through a forced refetch because the server
//     recomputes aggregates; Remove prunes by identity. Mutations
//     propagate server errors unchanged and never touch the collection
//     before the server confirms.
//   - Every successful change is mirrored to the persistent key-value
//     store, so a cold start serves the last known collection offline.
//
// A fetch whose round-trip straddles a mutation is discarded instead of
// overwriting the newer local state (start-time stamping).
//
// # One-shot clients
//
// PackingService and VisionService are stateless pass-throughs over the
// request gateway; the packing result is held only until ClearResult.
package services
