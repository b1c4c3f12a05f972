// Package storefront wires the stores, renderer and handlers into a
// running web process.
package storefront

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mytheresa/storefront/app/cart"
	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/events"
	"github.com/mytheresa/storefront/app/render"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/pkg/config"
)

//go:embed static
var staticFS embed.FS

const shutdownTimeout = 10 * time.Second

// App is one storefront session: a catalog, a cart and the HTTP surface
// over them.
type App struct {
	log *slog.Logger

	catalog    *catalog.Store
	dispatcher *events.Dispatcher
	handler    http.Handler
}

// New builds the app around the given catalog source.
func New(source catalog.Source, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	catalogStore := catalog.NewStore(source, log.With("component", "catalog"))
	cartStore := cart.NewStore(catalogStore)
	dispatcher := events.NewDispatcher(catalogStore, cartStore, renderer)

	app := &App{
		log:        log,
		catalog:    catalogStore,
		dispatcher: dispatcher,
	}
	app.handler = app.routes()
	return app, nil
}

// NewSource picks the catalog source named by the config.
func NewSource(cfg config.Config) (catalog.Source, error) {
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		return openRepository(postgres.Open(cfg.DatabaseURL))
	default:
		return catalog.NewHTTPSource(cfg.CatalogURL, &http.Client{}), nil
	}
}

// openRepository connects through dialector and pings the database.
func openRepository(dialector gorm.Dialector) (*models.ProductsRepository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return models.NewProductsRepository(db), nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// Load fetches the catalog. Failures are already reported by the store and
// leave the storefront on its empty state.
func (a *App) Load(ctx context.Context) {
	_ = a.catalog.Load(ctx)
}

// Run serves on addr and loads the catalog in the background until ctx is
// cancelled.
func (a *App) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Load(gctx)
		return nil
	})

	g.Go(func() error {
		a.log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func staticFiles() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
