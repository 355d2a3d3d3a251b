package models

import "time"

// CatalogCategoryGeneral marks a catalog item usable across all categories.
const CatalogCategoryGeneral = "general"

// CatalogItem is a reusable price template. Inserting one into a budget
// copies its values; no link back is retained.
type CatalogItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category,omitempty"` // budget category or "general"
	CreatedAt time.Time `json:"createdAt"`
}
