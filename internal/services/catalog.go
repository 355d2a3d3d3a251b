package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/presupuestos/internal/models"
	"github.com/diewo77/presupuestos/internal/store"

	"github.com/google/uuid"
)

var ErrInvalidImport = errors.New("invalid_import_file")

// CatalogService manages the reusable price templates and their JSON
// import/export.
type CatalogService struct {
	Store *store.Store
}

func NewCatalogService(st *store.Store) *CatalogService { return &CatalogService{Store: st} }

// Export serializes the whole catalog collection as an indented JSON file.
func (s *CatalogService) Export() ([]byte, error) {
	items, err := s.Store.CatalogItems()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(items, "", "  ")
}

// Import merges a previously exported JSON file into the catalog. The merge
// is additive by id: items without an id get a new one, items without a
// timestamp get now. A file that does not parse as an item list aborts the
// whole import; nothing is merged partially. Entries missing a name are
// skipped, which is the only per-item validation performed.
func (s *CatalogService) Import(data []byte) (int, error) {
	var imported []models.CatalogItem
	if err := json.Unmarshal(data, &imported); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	count := 0
	for _, it := range imported {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if it.CreatedAt.IsZero() {
			it.CreatedAt = time.Now().UTC()
		}
		if err := s.Store.SaveCatalogItem(it); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
