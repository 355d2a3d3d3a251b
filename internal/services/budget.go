package services

import (
	"errors"
	"time"

	"github.com/diewo77/presupuestos/internal/models"
	"github.com/diewo77/presupuestos/internal/store"

	"github.com/google/uuid"
)

var (
	ErrBudgetNotFound  = errors.New("budget_not_found")
	ErrClientNotFound  = errors.New("client_not_found")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrNoClient        = errors.New("no_client_bound")
	ErrEmptyBudget     = errors.New("empty_budget")
)

// WizardStage is one step of the linear budget wizard.
type WizardStage string

const (
	StageCategory WizardStage = "category"
	StageClient   WizardStage = "client"
	StageItems    WizardStage = "items"
	StageSummary  WizardStage = "summary"
)

// Default terms applied to every new draft.
const (
	DefaultValidityDays = 5
	DefaultWarranty     = "6 meses en mano de obra"
	DefaultPaymentTerms = "50% anticipo, 50% al finalizar"
)

// BudgetService owns the budget aggregate: draft creation, wizard stage
// gating, category-conditional payload shape, and the recompute-then-persist
// save discipline.
type BudgetService struct {
	Store *store.Store
}

func NewBudgetService(st *store.Store) *BudgetService { return &BudgetService{Store: st} }

// NewDraft initializes an in-memory draft. The id is generated here, at
// wizard start, so incomplete attempts of the same draft keep one persisted
// identity. Nothing is stored until Save.
func (s *BudgetService) NewDraft(category models.BudgetCategory) (*models.Budget, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return &models.Budget{
		ID:           uuid.NewString(),
		Category:     category,
		Items:        []models.BudgetItem{},
		ValidityDays: DefaultValidityDays,
		Warranty:     DefaultWarranty,
		PaymentTerms: DefaultPaymentTerms,
		Status:       models.StatusDraft,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NewItem creates a line item with its id assigned and the total derived.
func NewItem(description string, quantity int, unitPrice float64) models.BudgetItem {
	return models.BudgetItem{
		ID:          uuid.NewString(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       ItemTotal(quantity, unitPrice),
	}
}

// BindClient attaches a client to the draft, snapshotting the name. The
// snapshot is what documents print; later client edits or deletes do not
// propagate.
func (s *BudgetService) BindClient(b *models.Budget, clientID string) error {
	c, err := s.Store.ClientByID(clientID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrClientNotFound
	}
	if err != nil {
		return err
	}
	b.ClientID = c.ID
	b.ClientName = c.Name
	return nil
}

// SetCategory switches the draft's category, discarding the payload of the
// old one.
func (s *BudgetService) SetCategory(b *models.Budget, category models.BudgetCategory) error {
	if !category.Valid() {
		return ErrInvalidCategory
	}
	b.Category = category
	normalizePayload(b)
	return nil
}

// CanAdvance reports whether the wizard may leave the given stage.
// Gates: a category chosen, a client bound, then at least one item or a
// non-zero labor cost. The summary stage is terminal.
func (s *BudgetService) CanAdvance(b *models.Budget, from WizardStage) error {
	switch from {
	case StageCategory:
		if !b.Category.Valid() {
			return ErrInvalidCategory
		}
	case StageClient:
		if b.ClientID == "" {
			return ErrNoClient
		}
	case StageItems:
		if len(b.Items) == 0 && b.LaborCost <= 0 {
			return ErrEmptyBudget
		}
	case StageSummary:
		// terminal, no gate
	}
	return nil
}

// normalizePayload enforces the category-conditional shape: acEquipment
// present iff category is ac, solarSystem iff solar.
func normalizePayload(b *models.Budget) {
	if b.Category != models.CategoryAC {
		b.ACEquipment = nil
	}
	if b.Category != models.CategorySolar {
		b.SolarSystem = nil
	}
}

// Save validates the aggregate, recomputes every derived field one last
// time, and persists the full record through the gateway.
func (s *BudgetService) Save(b *models.Budget) error {
	if !b.Category.Valid() {
		return ErrInvalidCategory
	}
	if b.ClientID == "" {
		return ErrNoClient
	}
	if len(b.Items) == 0 && b.LaborCost <= 0 {
		return ErrEmptyBudget
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = models.StatusDraft
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	normalizePayload(b)
	Recalculate(b)
	return s.Store.SaveBudget(*b)
}

func (s *BudgetService) Get(id string) (*models.Budget, error) {
	b, err := s.Store.BudgetByID(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBudgetNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BudgetService) List() ([]models.Budget, error) {
	return s.Store.Budgets()
}

func (s *BudgetService) Delete(id string) error {
	return s.Store.DeleteBudget(id)
}

// UpdateStatus transitions the budget's lifecycle stage and persists the
// full record. Moving to sent stamps SentAt; other transitions leave it
// untouched.
func (s *BudgetService) UpdateStatus(id string, status models.BudgetStatus) (*models.Budget, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	b, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	b.Status = status
	if status == models.StatusSent {
		now := time.Now().UTC()
		b.SentAt = &now
	}
	if err := s.Store.SaveBudget(*b); err != nil {
		return nil, err
	}
	return b, nil
}
