package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/events"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/pkg/config"
)

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func listing(n int) string {
	items := make([]string, n)
	for i := range items {
		category := "electronics"
		if i%2 == 1 {
			category = "jewelery"
		}
		items[i] = fmt.Sprintf(`{"id": %d, "title": "Item %d", "price": %d.5, "image": "https://img.example/%d.jpg", "category": %q}`,
			i+1, i+1, i+1, i+1, category)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func newCatalogServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, srv *httptest.Server) *App {
	t.Helper()
	app, err := New(catalog.NewHTTPSource(srv.URL, srv.Client()), discardLogger())
	require.NoError(t, err)
	return app
}

func do(app *App, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	return rec
}

func decodePatch(t *testing.T, rec *httptest.ResponseRecorder) events.Patch {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var patch events.Patch
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&patch))
	return patch
}

// --- Tests ---

func TestStorefrontBeforeLoad(t *testing.T) {
	app := newTestApp(t, newCatalogServer(t, http.StatusOK, listing(3)))

	rec := do(app, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Loading products...")
	assert.Contains(t, rec.Body.String(), `data-catalog-loading="true"`)
}

func TestStorefrontShoppingFlow(t *testing.T) {
	app := newTestApp(t, newCatalogServer(t, http.StatusOK, listing(16)))
	app.Load(context.Background())

	page := do(app, http.MethodGet, "/", nil).Body.String()
	assert.Equal(t, 16, strings.Count(page, `class="product-card"`))
	assert.Contains(t, page, "Hot Pick")
	assert.Contains(t, page, "Most Loved")

	patch := decodePatch(t, do(app, http.MethodPost, "/events", url.Values{"action": {"add-to-cart"}, "product_id": {"1"}}))
	assert.Equal(t, 1, patch.Badge)
	patch = decodePatch(t, do(app, http.MethodPost, "/events", url.Values{"action": {"add-to-cart"}, "product_id": {"1"}}))
	assert.Equal(t, 2, patch.Badge)
	patch = decodePatch(t, do(app, http.MethodPost, "/events", url.Values{"action": {"add-to-cart"}, "product_id": {"2"}}))
	assert.Equal(t, 3, patch.Badge)

	patch = decodePatch(t, do(app, http.MethodPost, "/events", url.Values{"action": {"open-checkout"}}))
	assert.Equal(t, events.OverlayOpen, patch.Overlay)
	// 2 x 1.5 + 1 x 2.5
	assert.Contains(t, patch.Regions[events.RegionCart], "Total: $5.50")

	patch = decodePatch(t, do(app, http.MethodPost, "/events", url.Values{"action": {"remove"}, "product_id": {"1"}}))
	assert.Equal(t, 1, patch.Badge)
	assert.Contains(t, patch.Regions[events.RegionCart], "Total: $2.50")

	patch = decodePatch(t, do(app, http.MethodPost, "/events", url.Values{"action": {"set-category"}, "category": {"jewelery"}}))
	assert.Equal(t, 8, strings.Count(patch.Regions[events.RegionGrid], `class="product-card"`))

	rec := do(app, http.MethodGet, "/catalog", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var listed catalog.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	assert.Equal(t, 8, listed.Total)
	assert.Equal(t, "jewelery", listed.Category)
}

func TestStorefrontFailedLoad(t *testing.T) {
	app := newTestApp(t, newCatalogServer(t, http.StatusInternalServerError, "boom"))
	app.Load(context.Background())

	page := do(app, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "No products found")
	assert.Contains(t, page, `<span id="cart-badge">0</span>`)

	patch := decodePatch(t, do(app, http.MethodPost, "/events", url.Values{"action": {"add-to-cart"}, "product_id": {"1"}}))
	assert.Equal(t, 0, patch.Badge)
}

func TestStorefrontRoutes(t *testing.T) {
	app := newTestApp(t, newCatalogServer(t, http.StatusOK, listing(2)))
	app.Load(context.Background())

	testCases := []struct {
		name               string
		target             string
		expectedStatusCode int
		expectedBody       string
	}{
		{name: "Health check", target: "/healthz", expectedStatusCode: http.StatusOK, expectedBody: "ok"},
		{name: "Client script", target: "/static/storefront.js", expectedStatusCode: http.StatusOK, expectedBody: `addEventListener("click"`},
		{name: "Client script arms one poll timer", target: "/static/storefront.js", expectedStatusCode: http.StatusOK, expectedBody: "if (pollTimer !== null) {"},
		{name: "Categories", target: "/categories", expectedStatusCode: http.StatusOK, expectedBody: `"code":"jewelery"`},
		{name: "Single product", target: "/catalog/2", expectedStatusCode: http.StatusOK, expectedBody: `"title":"Item 2"`},
		{name: "Missing product", target: "/catalog/20", expectedStatusCode: http.StatusNotFound},
		{name: "Unknown route", target: "/nope", expectedStatusCode: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(app, http.MethodGet, tc.target, nil)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tc.expectedBody)
			}
		})
	}
}

func TestClientScriptPollsThroughOneTimer(t *testing.T) {
	script, err := fs.ReadFile(staticFS, "static/storefront.js")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(string(script), "setTimeout("), "only schedulePoll arms the timer")
	assert.Equal(t, 2, strings.Count(string(script), "schedulePoll();"), "patch and initial page both go through schedulePoll")
}

func TestRunStopsOnCancel(t *testing.T) {
	app := newTestApp(t, newCatalogServer(t, http.StatusOK, listing(1)))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewSourceHTTP(t *testing.T) {
	source, err := NewSource(config.Config{CatalogSource: config.SourceHTTP, CatalogURL: "http://catalog.local/products"})

	require.NoError(t, err)
	assert.IsType(t, &catalog.HTTPSource{}, source)
}

func TestNewSourcePostgresUnreachable(t *testing.T) {
	source, err := NewSource(config.Config{
		CatalogSource: config.SourcePostgres,
		DatabaseURL:   "host=127.0.0.1 port=1 user=storefront dbname=storefront sslmode=disable connect_timeout=1",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open database")
	assert.Nil(t, source)
}

func TestOpenRepositoryServesStorefront(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	seed, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, seed.AutoMigrate(&models.Product{}))
	for i := 16; i >= 1; i-- {
		require.NoError(t, seed.Create(&models.Product{
			ID:       i,
			Title:    fmt.Sprintf("Item %d", i),
			Price:    decimal.RequireFromString("2.50"),
			Image:    fmt.Sprintf("https://img.example/%d.jpg", i),
			Category: "electronics",
		}).Error)
	}

	source, err := openRepository(sqlite.Open(path))
	require.NoError(t, err)

	app, err := New(source, discardLogger())
	require.NoError(t, err)
	app.Load(context.Background())

	patch := decodePatch(t, do(app, http.MethodPost, "/events", url.Values{"action": {"refresh-catalog"}}))
	assert.False(t, patch.Loading)
	assert.Equal(t, 16, strings.Count(patch.Regions[events.RegionGrid], `class="product-card"`))
	assert.Less(t,
		strings.Index(patch.Regions[events.RegionGrid], `data-product-id="1"`),
		strings.Index(patch.Regions[events.RegionGrid], `data-product-id="2"`))
	assert.Contains(t, patch.Regions[events.RegionFeatured], `data-product-id="15"`)
}
