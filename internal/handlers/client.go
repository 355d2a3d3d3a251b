package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/diewo77/presupuestos/internal/httpx"
	"github.com/diewo77/presupuestos/internal/models"
	"github.com/diewo77/presupuestos/internal/store"
	"github.com/diewo77/presupuestos/internal/validation"

	"github.com/google/uuid"
)

type ClientHandler struct {
	Store *store.Store
}

func NewClientHandler(st *store.Store) *ClientHandler { return &ClientHandler{Store: st} }

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.Clients()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", c.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	if err := h.Store.SaveClient(c); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_client", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Update: POST /clients/update
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("id", c.ID, v)
	validation.Required("name", c.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	existing, err := h.Store.ClientByID(c.ID)
	if errors.Is(err, store.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		return
	}
	c.CreatedAt = existing.CreatedAt
	if err := h.Store.SaveClient(c); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: POST /clients/delete?id=...
// Existing budgets keep their client name snapshot; nothing cascades.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Store.DeleteClient(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
