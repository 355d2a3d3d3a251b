package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/presupuestos/internal/models"

	"gorm.io/gorm"
)

// Collection names the four persisted document sets.
type Collection string

const (
	CollectionProfile Collection = "profile"
	CollectionClients Collection = "clients"
	CollectionBudgets Collection = "budgets"
	CollectionCatalog Collection = "catalog"
)

// profileKey is the fixed id of the singleton profile document.
const profileKey = "profile"

// Record is the storage row: one JSON document per entity, keyed by
// (collection, id). All writes replace the full document; there is no
// partial patching, so derived fields never drift from what was computed.
type Record struct {
	Collection string `gorm:"primaryKey;size:32"`
	ID         string `gorm:"primaryKey;size:64"`
	Data       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var ErrNotFound = errors.New("record_not_found")

// Store is the persistence gateway. Components receive it explicitly and
// never touch the underlying handle.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// Ping runs a lightweight connectivity check (used by /healthz).
func (s *Store) Ping() error {
	return s.db.Exec("SELECT 1").Error
}

func (s *Store) list(col Collection) ([]Record, error) {
	var recs []Record
	if err := s.db.Where("collection = ?", string(col)).Order("created_at asc, id asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *Store) get(col Collection, id string, out any) error {
	var rec Record
	err := s.db.Where("collection = ? AND id = ?", string(col), id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(rec.Data), out); err != nil {
		return fmt.Errorf("decode %s/%s: %w", col, id, err)
	}
	return nil
}

func (s *Store) put(col Collection, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", col, id, err)
	}
	var existing Record
	err = s.db.Where("collection = ? AND id = ?", string(col), id).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&Record{Collection: string(col), ID: id, Data: string(data)}).Error
	}
	if err != nil {
		return err
	}
	existing.Data = string(data)
	return s.db.Save(&existing).Error
}

// Delete removes one document. Deleting an absent id is not an error.
func (s *Store) Delete(col Collection, id string) error {
	return s.db.Where("collection = ? AND id = ?", string(col), id).Delete(&Record{}).Error
}

// --- Profile (singleton) ---

// Profile returns the stored profile, or nil when not configured yet.
func (s *Store) Profile() (*models.Profile, error) {
	var p models.Profile
	err := s.get(CollectionProfile, profileKey, &p)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SaveProfile(p models.Profile) error {
	return s.put(CollectionProfile, profileKey, p)
}

// --- Clients ---

func (s *Store) Clients() ([]models.Client, error) {
	recs, err := s.list(CollectionClients)
	if err != nil {
		return nil, err
	}
	out := make([]models.Client, 0, len(recs))
	for _, rec := range recs {
		var c models.Client
		if err := json.Unmarshal([]byte(rec.Data), &c); err != nil {
			return nil, fmt.Errorf("decode clients/%s: %w", rec.ID, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) ClientByID(id string) (*models.Client, error) {
	var c models.Client
	if err := s.get(CollectionClients, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) SaveClient(c models.Client) error {
	return s.put(CollectionClients, c.ID, c)
}

func (s *Store) DeleteClient(id string) error {
	// No cascade: budgets keep their clientId/clientName snapshot.
	return s.Delete(CollectionClients, id)
}

// --- Budgets ---

func (s *Store) Budgets() ([]models.Budget, error) {
	recs, err := s.list(CollectionBudgets)
	if err != nil {
		return nil, err
	}
	out := make([]models.Budget, 0, len(recs))
	for _, rec := range recs {
		var b models.Budget
		if err := json.Unmarshal([]byte(rec.Data), &b); err != nil {
			return nil, fmt.Errorf("decode budgets/%s: %w", rec.ID, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *Store) BudgetByID(id string) (*models.Budget, error) {
	var b models.Budget
	if err := s.get(CollectionBudgets, id, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) SaveBudget(b models.Budget) error {
	return s.put(CollectionBudgets, b.ID, b)
}

func (s *Store) DeleteBudget(id string) error {
	return s.Delete(CollectionBudgets, id)
}

// --- Catalog ---

func (s *Store) CatalogItems() ([]models.CatalogItem, error) {
	recs, err := s.list(CollectionCatalog)
	if err != nil {
		return nil, err
	}
	out := make([]models.CatalogItem, 0, len(recs))
	for _, rec := range recs {
		var it models.CatalogItem
		if err := json.Unmarshal([]byte(rec.Data), &it); err != nil {
			return nil, fmt.Errorf("decode catalog/%s: %w", rec.ID, err)
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *Store) CatalogItemByID(id string) (*models.CatalogItem, error) {
	var it models.CatalogItem
	if err := s.get(CollectionCatalog, id, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *Store) SaveCatalogItem(it models.CatalogItem) error {
	return s.put(CollectionCatalog, it.ID, it)
}

func (s *Store) DeleteCatalogItem(id string) error {
	return s.Delete(CollectionCatalog, id)
}
