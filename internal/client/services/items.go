package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/packtrack/packtrack/internal/client/models"
	"github.com/packtrack/packtrack/internal/client/repositories/kvstore"
	"github.com/packtrack/packtrack/internal/logging"
)

// Gateway is the transport subset the services need. Satisfied by
// *api.Gateway; replaced by fakes in tests.
type Gateway interface {
	Call(ctx context.Context, method, path string, body, out any) error
	Upload(ctx context.Context, path, fieldName, fileName string, file io.Reader, fields map[string]string, out any) error
}

// ItemService is the entity cache for inventory items. Alongside the
// collection it tracks the daily activity summary returned by the same
// list endpoint: the summary has no freshness policy of its own, it is
// replaced on every refetch and falls back to its last persisted value
// when a refetch fails.
type ItemService struct {
	gw  Gateway
	kv  kvstore.Repository
	log logging.Logger
	col *collection[models.Item]

	actMu    sync.Mutex
	activity models.DailyActivity
}

// NewItemService builds the items cache. window <= 0 selects the default
// freshness window.
func NewItemService(gw Gateway, kv kvstore.Repository, log logging.Logger, window time.Duration) *ItemService {
	return &ItemService{
		gw:  gw,
		kv:  kv,
		log: log,
		col: newCollection[models.Item]("items", kvstore.KeyItems, kvstore.KeyItemsFetched, window, kv, log),
	}
}

// Hydrate restores the collection and the activity summary from storage.
// Called once at startup, before any fetch.
func (s *ItemService) Hydrate(ctx context.Context) {
	s.col.hydrate(ctx)

	raw, err := s.kv.Get(ctx, kvstore.KeyItemsActivity)
	if err != nil || raw == nil {
		return
	}
	var act models.DailyActivity
	if err := json.Unmarshal(raw, &act); err != nil {
		s.log.Warn(ctx, "cached activity summary is corrupt, ignoring", "error", err)
		return
	}
	s.actMu.Lock()
	s.activity = act
	s.actMu.Unlock()
}

// List returns the currently held items. Never blocks, never fails.
func (s *ItemService) List() []models.Item { return s.col.List() }

// Loading reports whether a fetch is in flight.
func (s *ItemService) Loading() bool { return s.col.Loading() }

// LastFetched returns the last successful fetch time, zero when unknown.
func (s *ItemService) LastFetched() time.Time { return s.col.LastFetched() }

// Activity returns the daily activity summary, normalized to two
// seven-bucket series (Monday first).
func (s *ItemService) Activity() models.DailyActivity {
	s.actMu.Lock()
	defer s.actMu.Unlock()
	return s.activity.Normalized()
}

type itemListResponse struct {
	Items         []models.Item        `json:"items"`
	DailyActivity models.DailyActivity `json:"dailyActivity"`
}

// Fetch refreshes the collection from the server. Skipped when the cache
// is fresh and non-empty unless force is set. Fetch never fails the
// caller: errors are logged and the cache keeps serving what it holds.
func (s *ItemService) Fetch(ctx context.Context, force bool) {
	startedAt, run := s.col.beginFetch(force)
	if !run {
		return
	}

	var resp itemListResponse
	if err := s.gw.Call(ctx, http.MethodGet, "/getitemdata", nil, &resp); err != nil {
		s.col.failFetch(ctx, err)
		return
	}

	if !s.col.completeFetch(ctx, resp.Items, startedAt) {
		return
	}
	s.storeActivity(ctx, resp.DailyActivity)
}

func (s *ItemService) storeActivity(ctx context.Context, act models.DailyActivity) {
	s.actMu.Lock()
	s.activity = act
	s.actMu.Unlock()

	raw, err := json.Marshal(act)
	if err != nil {
		s.log.Error(ctx, "failed to encode activity summary", "error", err)
		return
	}
	if err := s.kv.Set(ctx, kvstore.KeyItemsActivity, raw); err != nil {
		s.log.Warn(ctx, "failed to persist activity summary", "error", err)
	}
}

type itemCreateResponse struct {
	Item *models.Item `json:"item"`
}

// Create sends a new item to the server. When the response echoes the
// created entity it is appended in place and persisted, skipping a full
// refetch; otherwise the collection is force-refetched. Nothing is
// inserted speculatively before the server confirms.
func (s *ItemService) Create(ctx context.Context, item models.NewItem) error {
	var resp itemCreateResponse
	if err := s.gw.Call(ctx, http.MethodPost, "/senditemdata", item, &resp); err != nil {
		return err
	}

	if resp.Item != nil && resp.Item.ID != "" {
		created := *resp.Item
		s.col.mutate(ctx, func(items []models.Item) []models.Item {
			return append(items, created)
		})
		return nil
	}

	s.col.markMutated()
	s.Fetch(ctx, true)
	return nil
}

// Update pushes partial item fields and reconciles with a forced refetch:
// the server recomputes the daily activity aggregates on item changes
// and those cannot be rebuilt locally.
func (s *ItemService) Update(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return fmt.Errorf("item id is required")
	}

	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["id"] = id

	if err := s.gw.Call(ctx, http.MethodPost, "/senditemdata", body, nil); err != nil {
		return err
	}

	s.col.markMutated()
	s.Fetch(ctx, true)
	return nil
}

// Remove deletes an item and prunes it from the collection by identity.
func (s *ItemService) Remove(ctx context.Context, id string) error {
	if err := s.gw.Call(ctx, http.MethodDelete, "/deleteitem/"+id, nil, nil); err != nil {
		return err
	}

	s.col.mutate(ctx, func(items []models.Item) []models.Item {
		out := items[:0]
		for _, it := range items {
			if it.ID != id {
				out = append(out, it)
			}
		}
		return out
	})
	return nil
}

// ClearCache drops the in-memory collection, the activity summary, and
// their persisted mirrors. No remote call is made.
func (s *ItemService) ClearCache(ctx context.Context) {
	s.col.clear(ctx)

	s.actMu.Lock()
	s.activity = models.DailyActivity{}
	s.actMu.Unlock()
	if err := s.kv.Delete(ctx, kvstore.KeyItemsActivity); err != nil {
		s.log.Warn(ctx, "failed to clear activity summary", "error", err)
	}
}
