package storefront

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/categories"
	"github.com/mytheresa/storefront/app/events"
)

func (a *App) routes() http.Handler {
	eventHandler := events.NewEventHandler(a.dispatcher, a.log)
	catalogHandler := catalog.NewCatalogHandler(a.catalog)
	categoryHandler := categories.NewCategoryHandler(a.catalog)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(a.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(staticFiles())))

	r.Get("/", eventHandler.HandlePage)
	r.Post("/events", eventHandler.HandleEvent)
	r.Get("/catalog", catalogHandler.HandleGet)
	r.Get("/catalog/{id}", catalogHandler.HandleGetProduct)
	r.Get("/categories", categoryHandler.HandleGetAll)

	return r
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
