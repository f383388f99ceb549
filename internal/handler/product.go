package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/krishi-mitra/internal/service"
)

// ProductHandler serves the static product catalog.
type ProductHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(catalog *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// HandleSearch filters the catalog by the optional term and category
// query parameters and returns the matching products.
//
// HTTP: GET /products?term=&category=
func (h *ProductHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	category := r.URL.Query().Get("category")

	writeJSON(w, http.StatusOK, h.catalog.Search(term, category))
}
