package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/diewo77/presupuestos/internal/httpx"
	"github.com/diewo77/presupuestos/internal/models"
	"github.com/diewo77/presupuestos/internal/services"
	"github.com/diewo77/presupuestos/internal/store"
	"github.com/diewo77/presupuestos/internal/validation"

	"github.com/google/uuid"
)

// importBodyLimit caps catalog import uploads.
const importBodyLimit = 2 << 20

type CatalogHandler struct {
	Store *store.Store
	Svc   *services.CatalogService
}

func NewCatalogHandler(st *store.Store, svc *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Store: st, Svc: svc}
}

// List: GET /catalog
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.CatalogItems()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_catalog", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// Create: POST /catalog
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var it models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", it.Name, v)
	validation.PositiveFloat("price", it.Price, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	it.ID = uuid.NewString()
	it.CreatedAt = time.Now().UTC()
	if err := h.Store.SaveCatalogItem(it); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_catalog_item", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, it)
}

// Update: POST /catalog/update
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var it models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("id", it.ID, v)
	validation.Required("name", it.Name, v)
	validation.PositiveFloat("price", it.Price, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	existing, err := h.Store.CatalogItemByID(it.ID)
	if errors.Is(err, store.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_catalog_item", nil)
		return
	}
	it.CreatedAt = existing.CreatedAt
	if err := h.Store.SaveCatalogItem(it); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_catalog_item", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, it)
}

// Delete: POST /catalog/delete?id=...
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Store.DeleteCatalogItem(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_catalog_item", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Export: GET /catalog/export – whole collection as a JSON file
func (h *CatalogHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Svc.Export()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_export_catalog", nil)
		return
	}
	httpx.Attachment(w, "application/json", "catalogo_presupuestos.json", data)
}

// Import: POST /catalog/import – additive merge of an exported file.
// A malformed file aborts the whole import with no partial merge.
func (h *CatalogHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, importBodyLimit))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "failed_to_read_body", nil)
		return
	}
	count, err := h.Svc.Import(data)
	if errors.Is(err, services.ErrInvalidImport) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_import_file", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_import_catalog", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"imported": count})
}
