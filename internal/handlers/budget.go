package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/presupuestos/internal/httpx"
	"github.com/diewo77/presupuestos/internal/models"
	"github.com/diewo77/presupuestos/internal/services"
	"github.com/diewo77/presupuestos/internal/store"
	"github.com/diewo77/presupuestos/internal/validation"
)

type BudgetHandler struct {
	Store *store.Store
	Svc   *services.BudgetService
	Share *services.ShareService
}

func NewBudgetHandler(st *store.Store, svc *services.BudgetService, share *services.ShareService) *BudgetHandler {
	return &BudgetHandler{Store: st, Svc: svc, Share: share}
}

// List: GET /budgets
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.Svc.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_budgets", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": budgets, "total": len(budgets)})
}

// NewDraft: POST /budgets/new?category=... – returns an initialized draft
// with its identity already assigned. Nothing is persisted until save.
func (h *BudgetHandler) NewDraft(w http.ResponseWriter, r *http.Request) {
	category := models.BudgetCategory(r.URL.Query().Get("category"))
	draft, err := h.Svc.NewDraft(category)
	if errors.Is(err, services.ErrInvalidCategory) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_category", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_draft", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}

// Save: POST /budgets – upsert of the full aggregate. Derived fields are
// recomputed server-side before persisting, whatever the client sent.
func (h *BudgetHandler) Save(w http.ResponseWriter, r *http.Request) {
	var b models.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	for _, it := range b.Items {
		validation.Required("items.description", it.Description, v)
		validation.PositiveInt("items.quantity", it.Quantity, v)
		validation.NonNegativeFloat("items.unitPrice", it.UnitPrice, v)
	}
	validation.NonNegativeFloat("laborCost", b.LaborCost, v)
	validation.NonNegativeFloat("taxRate", b.TaxRate, v)
	validation.NonNegativeFloat("discount", b.Discount, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Svc.Save(&b); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCategory):
			httpx.JSONError(w, http.StatusBadRequest, "invalid_category", nil)
		case errors.Is(err, services.ErrNoClient):
			httpx.JSONError(w, http.StatusBadRequest, "no_client_bound", nil)
		case errors.Is(err, services.ErrEmptyBudget):
			httpx.JSONError(w, http.StatusBadRequest, "empty_budget", nil)
		case errors.Is(err, services.ErrInvalidStatus):
			httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_budget", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Get: GET /budgets/get?id=...
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBudget(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Delete: POST /budgets/delete?id=...
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_budget", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// BindClient: POST /budgets/bind-client?client=... – attaches a client to
// the draft in the request body, snapshotting its name, and returns the
// updated draft.
func (h *BudgetHandler) BindClient(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client")
	if clientID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_client", nil)
		return
	}
	var b models.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.BindClient(&b, clientID); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_bind_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// SetCategory: POST /budgets/category?category=... – switches the draft's
// category, dropping the old category's technical payload.
func (h *BudgetHandler) SetCategory(w http.ResponseWriter, r *http.Request) {
	category := models.BudgetCategory(r.URL.Query().Get("category"))
	var b models.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.SetCategory(&b, category); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_category", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Validate: POST /budgets/validate?stage=... – wizard stage gate for the
// draft in the request body.
func (h *BudgetHandler) Validate(w http.ResponseWriter, r *http.Request) {
	stage := services.WizardStage(r.URL.Query().Get("stage"))
	switch stage {
	case services.StageCategory, services.StageClient, services.StageItems, services.StageSummary:
	default:
		httpx.JSONError(w, http.StatusBadRequest, "invalid_stage", nil)
		return
	}
	var b models.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.CanAdvance(&b, stage); err != nil {
		httpx.JSON(w, http.StatusOK, map[string]any{"ok": false, "reason": err.Error()})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
}

// PDF: GET /budgets/pdf?id=... – the downloadable document artifact.
// Downloading does not change the budget's status.
func (h *BudgetHandler) PDF(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBudget(w, r)
	if !ok {
		return
	}
	p, ok := h.loadProfile(w)
	if !ok {
		return
	}
	data, filename, err := h.Share.Download(b, p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	httpx.Attachment(w, "application/pdf", filename, data)
}

// ShareVia: POST /budgets/share?id=...&channel=messaging|email
// Returns the external launch URL and the updated budget. The status flips
// to sent unconditionally; no delivery confirmation exists or is awaited.
func (h *BudgetHandler) ShareVia(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBudget(w, r)
	if !ok {
		return
	}
	p, ok := h.loadProfile(w)
	if !ok {
		return
	}
	channel := services.ShareChannel(r.URL.Query().Get("channel"))
	res, err := h.Share.Share(channel, b, p)
	if errors.Is(err, services.ErrUnknownChannel) {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_channel", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_share_budget", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// Accept: POST /budgets/accept?id=...
func (h *BudgetHandler) Accept(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBudget(w, r)
	if !ok {
		return
	}
	updated, err := h.Share.MarkAccepted(b.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_status", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// UpdateStatus: POST /budgets/status?id=...&status=... – direct transition.
// This is the only path that can set "rejected".
func (h *BudgetHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBudget(w, r)
	if !ok {
		return
	}
	status := models.BudgetStatus(r.URL.Query().Get("status"))
	updated, err := h.Svc.UpdateStatus(b.ID, status)
	if errors.Is(err, services.ErrInvalidStatus) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_status", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Options: GET /budgets/options – sub-form option lists for the wizard.
func (h *BudgetHandler) Options(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"categories": models.CategoryLabels,
		"ac": map[string]any{
			"capacity":   models.ACCapacityOptions,
			"technology": models.ACTechnologyOptions,
			"status":     models.ACStatusOptions,
		},
		"solar": map[string]any{
			"systemType": models.SolarSystemTypeOptions,
			"panelType":  models.SolarPanelTypeOptions,
			"panelPower": models.SolarPanelPowerOptions,
		},
	})
}

func (h *BudgetHandler) loadBudget(w http.ResponseWriter, r *http.Request) (*models.Budget, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return nil, false
	}
	b, err := h.Svc.Get(id)
	if errors.Is(err, services.ErrBudgetNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return nil, false
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_budget", nil)
		return nil, false
	}
	return b, true
}

func (h *BudgetHandler) loadProfile(w http.ResponseWriter) (*models.Profile, bool) {
	p, err := h.Store.Profile()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_profile", nil)
		return nil, false
	}
	if p == nil {
		httpx.JSONError(w, http.StatusBadRequest, "profile_not_configured", nil)
		return nil, false
	}
	return p, true
}
