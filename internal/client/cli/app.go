package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"sync/atomic"

	"github.com/packtrack/packtrack/internal/client/api"
	"github.com/packtrack/packtrack/internal/client/config"
	"github.com/packtrack/packtrack/internal/client/repositories/kvstore"
	"github.com/packtrack/packtrack/internal/client/services"
	"github.com/packtrack/packtrack/internal/client/session"
	"github.com/packtrack/packtrack/internal/logging"

	_ "modernc.org/sqlite"
)

// App is the interactive shell over the client core. It owns the wiring:
// one kvstore, one gateway, one session manager and one instance of each
// service per process, constructed here and passed by reference.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	session *session.Manager
	items   *services.ItemService
	boxes   *services.BoxService
	packing *services.PackingService
	vision  *services.VisionService

	reader   *bufio.Reader
	loggedIn atomic.Bool
}

// NewApp builds the full object graph and restores persisted state: the
// stored session and both cached collections, so the shell is usable
// offline from the first prompt.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	kv, db, err := kvstore.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	gw := api.NewGateway(cfg.ServerBaseURL, cfg.RequestTimeout, log)
	mgr := session.NewManager(gw, kv, log)
	gw.BindCredentials(mgr)

	app := &App{
		config:  cfg,
		log:     log,
		db:      db,
		session: mgr,
		items:   services.NewItemService(gw, kv, log, cfg.FreshnessWindow),
		boxes:   services.NewBoxService(gw, kv, log, cfg.FreshnessWindow),
		packing: services.NewPackingService(gw, log),
		vision:  services.NewVisionService(gw, log),
		reader:  bufio.NewReader(os.Stdin),
	}

	mgr.Notify(func(e session.Event) {
		app.loggedIn.Store(e == session.EventLoggedIn)
	})

	mgr.LoadStored(ctx)
	app.loggedIn.Store(mgr.Authenticated())
	app.items.Hydrate(ctx)
	app.boxes.Hydrate(ctx)

	return app, nil
}

// Run starts the REPL and blocks until exit or context cancellation.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close releases the local database handle.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
