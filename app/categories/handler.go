package categories

import (
	"encoding/json"
	"net/http"

	"github.com/mytheresa/storefront/models"
)

type CategoryResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type CategoryProvider interface {
	Categories() []models.Category
	Category() string
}

type CategoryHandler struct {
	store CategoryProvider
}

func NewCategoryHandler(s CategoryProvider) *CategoryHandler {
	return &CategoryHandler{store: s}
}

// HandleGetAll lists the catalog categories, led by the "all" filter.
func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories := h.store.Categories()
	active := h.store.Category()

	response := make([]CategoryResponse, 0, len(categories)+1)
	response = append(response, CategoryResponse{
		Code:   models.AllCategories,
		Name:   "All",
		Active: active == models.AllCategories,
	})
	for _, c := range categories {
		response = append(response, CategoryResponse{
			Code:   c.Code,
			Name:   c.Name,
			Active: active == c.Code,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
