package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mytheresa/storefront/models"
)

// DefaultURL is the public product listing the storefront reads from.
const DefaultURL = "https://fakestoreapi.com/products"

// ErrUnexpectedStatus is returned when the listing answers with a non-2xx code.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Source fetches the full product collection.
type Source interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// HTTPSource reads the catalog from a remote JSON listing.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if url == "" {
		url = DefaultURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		url:    url,
		client: client,
	}
}

func (s *HTTPSource) Products(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch products: %w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
