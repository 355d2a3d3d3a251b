package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/presupuestos/internal/httpx"
	"github.com/diewo77/presupuestos/internal/models"
	"github.com/diewo77/presupuestos/internal/store"
	"github.com/diewo77/presupuestos/internal/validation"

	"github.com/google/uuid"
)

// ProfileHandler serves the single business profile. Saving is
// create-or-overwrite; there is no further lifecycle.
type ProfileHandler struct {
	Store *store.Store
}

func NewProfileHandler(st *store.Store) *ProfileHandler { return &ProfileHandler{Store: st} }

// Get: GET /profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.Profile()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_profile", nil)
		return
	}
	if p == nil {
		httpx.JSONError(w, http.StatusNotFound, "profile_not_configured", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Save: PUT /profile
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", p.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := h.Store.SaveProfile(p); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_profile", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}
