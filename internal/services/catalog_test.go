package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/diewo77/presupuestos/internal/models"
)

func TestCatalogExportImportRoundTrip(t *testing.T) {
	st := setupTestStore(t)
	svc := NewCatalogService(st)

	existing := models.CatalogItem{ID: "cat-1", Name: "Caño 3m", Price: 1500, Category: "ac", CreatedAt: time.Now().UTC()}
	if err := st.SaveCatalogItem(existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	data, err := svc.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var exported []models.CatalogItem
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("export not valid json: %v", err)
	}
	if len(exported) != 1 || exported[0].ID != "cat-1" {
		t.Fatalf("unexpected export: %+v", exported)
	}

	// Re-importing the export is an idempotent merge by id.
	count, err := svc.Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 merged got %d", count)
	}
	items, _ := st.CatalogItems()
	if len(items) != 1 {
		t.Fatalf("expected 1 item after re-import got %d", len(items))
	}
}

func TestCatalogImportAssignsIDAndTimestamp(t *testing.T) {
	st := setupTestStore(t)
	svc := NewCatalogService(st)

	existing := models.CatalogItem{ID: "cat-1", Name: "Cinta", Price: 300, CreatedAt: time.Now().UTC()}
	if err := st.SaveCatalogItem(existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	count, err := svc.Import([]byte(`[{"name":"Cinta","price":500}]`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 imported got %d", count)
	}
	items, _ := st.CatalogItems()
	if len(items) != 2 {
		t.Fatalf("expected additive merge (2 items), got %d", len(items))
	}
	var imported *models.CatalogItem
	for i := range items {
		if items[i].ID != "cat-1" {
			imported = &items[i]
		}
	}
	if imported == nil {
		t.Fatalf("imported item not found")
	}
	if imported.ID == "" || imported.CreatedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp, got %+v", imported)
	}
	// Existing entry with the same name is untouched.
	got, err := st.CatalogItemByID("cat-1")
	if err != nil || got.Price != 300 {
		t.Fatalf("existing entry altered: %+v err=%v", got, err)
	}
}

func TestCatalogImportMalformedAborts(t *testing.T) {
	st := setupTestStore(t)
	svc := NewCatalogService(st)

	if _, err := svc.Import([]byte(`{"not":"a list"}`)); !errors.Is(err, ErrInvalidImport) {
		t.Fatalf("expected ErrInvalidImport got %v", err)
	}
	// Non-numeric price is a shape failure: nothing merges.
	if _, err := svc.Import([]byte(`[{"name":"x","price":"dear"}]`)); !errors.Is(err, ErrInvalidImport) {
		t.Fatalf("expected ErrInvalidImport got %v", err)
	}
	items, _ := st.CatalogItems()
	if len(items) != 0 {
		t.Fatalf("expected no partial merge, got %d items", len(items))
	}
}

func TestCatalogImportSkipsNameless(t *testing.T) {
	st := setupTestStore(t)
	svc := NewCatalogService(st)

	count, err := svc.Import([]byte(`[{"name":"","price":10},{"name":"ok","price":10}]`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 imported got %d", count)
	}
}
