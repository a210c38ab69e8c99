package services

import (
	"context"
	"net/http"
	"time"

	"github.com/packtrack/packtrack/internal/client/models"
	"github.com/packtrack/packtrack/internal/client/repositories/kvstore"
	"github.com/packtrack/packtrack/internal/logging"
)

// BoxService is the entity cache for shipping boxes. Same contract as the
// items cache, plus quantity deltas: those are commutative, so after the
// server confirms one it is applied in memory directly instead of paying
// for a full refetch.
type BoxService struct {
	gw  Gateway
	log logging.Logger
	col *collection[models.Box]
}

// NewBoxService builds the boxes cache. window <= 0 selects the default
// freshness window.
func NewBoxService(gw Gateway, kv kvstore.Repository, log logging.Logger, window time.Duration) *BoxService {
	return &BoxService{
		gw:  gw,
		log: log,
		col: newCollection[models.Box]("boxes", kvstore.KeyBoxes, kvstore.KeyBoxesFetched, window, kv, log),
	}
}

// Hydrate restores the collection from storage. Called once at startup.
func (s *BoxService) Hydrate(ctx context.Context) { s.col.hydrate(ctx) }

// List returns the currently held boxes. Never blocks, never fails.
func (s *BoxService) List() []models.Box { return s.col.List() }

// Loading reports whether a fetch is in flight.
func (s *BoxService) Loading() bool { return s.col.Loading() }

// LastFetched returns the last successful fetch time, zero when unknown.
func (s *BoxService) LastFetched() time.Time { return s.col.LastFetched() }

type boxListResponse struct {
	Boxes []models.Box `json:"boxes"`
}

// Fetch refreshes the collection from the server. Skipped when fresh and
// non-empty unless force is set; failures are logged and the cache keeps
// serving what it holds.
func (s *BoxService) Fetch(ctx context.Context, force bool) {
	startedAt, run := s.col.beginFetch(force)
	if !run {
		return
	}

	var resp boxListResponse
	if err := s.gw.Call(ctx, http.MethodGet, "/getboxes", nil, &resp); err != nil {
		s.col.failFetch(ctx, err)
		return
	}

	s.col.completeFetch(ctx, resp.Boxes, startedAt)
}

type boxCreateResponse struct {
	Box *models.Box `json:"box"`
}

// Create sends a new box to the server, appending the echoed entity in
// place or falling back to a forced refetch when the server omits it.
func (s *BoxService) Create(ctx context.Context, box models.NewBox) error {
	var resp boxCreateResponse
	if err := s.gw.Call(ctx, http.MethodPost, "/addbox", box, &resp); err != nil {
		return err
	}

	if resp.Box != nil && resp.Box.ID != "" {
		created := *resp.Box
		s.col.mutate(ctx, func(boxes []models.Box) []models.Box {
			return append(boxes, created)
		})
		return nil
	}

	s.col.markMutated()
	s.Fetch(ctx, true)
	return nil
}

type boxQuantityRequest struct {
	BoxName string `json:"boxName"`
	Delta   int    `json:"delta"`
}

// UpdateQuantity adjusts a box's stock by delta. After the server
// confirms, the delta is applied to the in-memory box and persisted;
// quantity deltas reconcile without a refetch.
func (s *BoxService) UpdateQuantity(ctx context.Context, boxName string, delta int) error {
	req := boxQuantityRequest{BoxName: boxName, Delta: delta}
	if err := s.gw.Call(ctx, http.MethodPost, "/updateboxquantity", req, nil); err != nil {
		return err
	}

	s.col.mutate(ctx, func(boxes []models.Box) []models.Box {
		for i := range boxes {
			if boxes[i].BoxName == boxName {
				boxes[i].Quantity += delta
				break
			}
		}
		return boxes
	})
	return nil
}

// Remove deletes a box and prunes it from the collection by identity.
func (s *BoxService) Remove(ctx context.Context, id string) error {
	if err := s.gw.Call(ctx, http.MethodDelete, "/deletebox/"+id, nil, nil); err != nil {
		return err
	}

	s.col.mutate(ctx, func(boxes []models.Box) []models.Box {
		out := boxes[:0]
		for _, b := range boxes {
			if b.ID != id {
				out = append(out, b)
			}
		}
		return out
	})
	return nil
}

// ClearCache drops the in-memory collection and its persisted mirror.
func (s *BoxService) ClearCache(ctx context.Context) { s.col.clear(ctx) }
