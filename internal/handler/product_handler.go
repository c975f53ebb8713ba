package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"cucinanostrard/internal/catalog"
	"cucinanostrard/internal/model"

	"github.com/rs/zerolog"
)

// ProductHandler serves the catalogue endpoints. Reads always answer
// with data (the engine falls back to the bundled snapshot); only
// mutations can fail.
type ProductHandler struct {
	engine catalog.Engine
	logger zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(engine catalog.Engine, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		engine: engine,
		logger: logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products with optional search, category and
// availability filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if term := r.URL.Query().Get("search"); term != "" {
		writeJSON(w, http.StatusOK, h.engine.Search(r.Context(), term))
		return
	}
	if category := r.URL.Query().Get("category"); category != "" {
		writeJSON(w, http.StatusOK, h.engine.ByCategory(r.Context(), category))
		return
	}
	if r.URL.Query().Get("available") == "true" {
		writeJSON(w, http.StatusOK, h.engine.Available(r.Context()))
		return
	}

	writeJSON(w, http.StatusOK, h.engine.LoadAll(r.Context()))
}

// Featured handles GET /api/products/featured.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.LoadFeatured(r.Context()))
}

// Stats handles GET /api/products/stats.
func (h *ProductHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Stats())
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := productID(r.URL.Path)
	if id == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	product := h.engine.GetByID(r.Context(), id)
	if product == nil {
		writeFailure(w, model.ErrProductNotFound, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.ProductDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	id, err := h.engine.Create(r.Context(), &draft)
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Update handles PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := productID(r.URL.Path)
	if id == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	var patch model.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	if err := h.engine.Update(r.Context(), id, patch); err != nil {
		writeFailure(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// Delete handles DELETE /api/products/{id}. The deleted entry may stay
// visible to concurrent readers until the next subscription snapshot.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := productID(r.URL.Path)
	if id == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	if err := h.engine.Delete(r.Context(), id); err != nil {
		writeFailure(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// productID extracts the id segment from /api/products/{id}.
func productID(path string) string {
	const prefix = "/api/products/"
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}
