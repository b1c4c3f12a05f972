package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mytheresa/storefront/models"
)

const tracerName = "github.com/mytheresa/storefront/app/catalog"

// Positions of the promotional slice inside the catalog.
const (
	featuredStart = 14
	featuredEnd   = 16
)

// State is the lifecycle of the catalog fetch.
type State int

const (
	StatePending State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Store holds the fetched products and the active category filter.
type Store struct {
	source Source
	log    *slog.Logger
	tracer trace.Tracer

	mu       sync.RWMutex
	products []models.Product
	category string
	state    State
}

type Option func(*Store)

// WithTracerProvider traces loads on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) {
		s.tracer = tp.Tracer(tracerName)
	}
}

func NewStore(source Source, log *slog.Logger, opts ...Option) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		source:   source,
		log:      log,
		tracer:   otel.Tracer(tracerName),
		category: models.AllCategories,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot is a consistent view of the store taken under one lock.
type Snapshot struct {
	State      State
	Category   string
	Featured   []models.Product
	Products   []models.Product
	Categories []models.Category
}

// Loading reports whether the fetch has not resolved yet.
func (s Snapshot) Loading() bool {
	return s.State == StatePending
}

// Load fetches the catalog once. On failure the collection is left empty
// and the error is logged, traced and returned.
func (s *Store) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "catalog.Load")
	defer span.End()

	products, err := s.source.Products(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.products = nil
		s.state = StateFailed
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog load failed")
		s.log.ErrorContext(ctx, "error loading products", slog.Any("err", err))
		return fmt.Errorf("load catalog: %w", err)
	}

	s.products = products
	s.state = StateLoaded
	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	s.log.InfoContext(ctx, "catalog loaded", slog.Int("products", len(products)))
	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		State:      s.state,
		Category:   s.category,
		Featured:   s.featured(),
		Products:   s.filtered(),
		Categories: s.categories(),
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetCategory records the active filter. An empty value means all.
func (s *Store) SetCategory(category string) {
	if category == "" {
		category = models.AllCategories
	}
	s.mu.Lock()
	s.category = category
	s.mu.Unlock()
}

func (s *Store) Category() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category
}

// Featured returns the products at positions 14 and 15, clamped to the
// catalog size.
func (s *Store) Featured() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.featured()
}

// Filtered returns the products of the active category in catalog order.
func (s *Store) Filtered() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered()
}

// Find returns the product with the given id.
func (s *Store) Find(id int) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.products, func(p models.Product) bool { return p.ID == id })
	if i < 0 {
		return models.Product{}, false
	}
	return s.products[i], true
}

// Categories returns the distinct categories in first-seen order.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories()
}

// The helpers below expect s.mu to be held.

func (s *Store) featured() []models.Product {
	if len(s.products) <= featuredStart {
		return nil
	}
	end := min(featuredEnd, len(s.products))
	return slices.Clone(s.products[featuredStart:end])
}

func (s *Store) filtered() []models.Product {
	if s.category == models.AllCategories {
		return slices.Clone(s.products)
	}

	var filtered []models.Product
	for _, p := range s.products {
		if p.Category == s.category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (s *Store) categories() []models.Category {
	seen := make(map[string]bool)
	var categories []models.Category
	for _, p := range s.products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, models.NewCategory(p.Category))
	}
	return categories
}
