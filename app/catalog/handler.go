package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mytheresa/storefront/models"
)

type Response struct {
	Total    int       `json:"total"`
	State    string    `json:"state"`
	Category string    `json:"category"`
	Products []Product `json:"products"`
}

type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

type ProductProvider interface {
	Filtered() []models.Product
	Category() string
	State() State
	Find(id int) (models.Product, bool)
}

type CatalogHandler struct {
	store ProductProvider
}

func NewCatalogHandler(s ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		store: s,
	}
}

// HandleGet lists the products visible under the active category.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	res := h.store.Filtered()

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = toProduct(p)
	}

	w.Header().Set("Content-Type", "application/json")
	response := Response{
		Total:    len(products),
		State:    h.store.State().String(),
		Category: h.store.Category(),
		Products: products,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	product, ok := h.store.Find(id)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toProduct(product)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toProduct(p models.Product) Product {
	return Product{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price.InexactFloat64(),
		Image:    p.Image,
		Category: p.Category,
	}
}
