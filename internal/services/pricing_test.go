package services

import (
	"testing"

	"github.com/diewo77/presupuestos/internal/models"
)

func TestComputeTotalsWithTax(t *testing.T) {
	items := []models.BudgetItem{
		{Quantity: 2, UnitPrice: 100},
		{Quantity: 1, UnitPrice: 50},
	}
	got := ComputeTotals(items, 0, 21, 0)
	if got.Subtotal != 250 {
		t.Fatalf("subtotal: expected 250 got %v", got.Subtotal)
	}
	if got.TaxAmount != 52.5 {
		t.Fatalf("taxAmount: expected 52.5 got %v", got.TaxAmount)
	}
	if got.Total != 302.5 {
		t.Fatalf("total: expected 302.5 got %v", got.Total)
	}
}

func TestComputeTotalsDiscountFloorsAtZero(t *testing.T) {
	items := []models.BudgetItem{
		{Quantity: 2, UnitPrice: 100},
		{Quantity: 1, UnitPrice: 50},
	}
	got := ComputeTotals(items, 100, 0, 500)
	if got.Subtotal != 250 {
		t.Fatalf("subtotal: expected 250 got %v", got.Subtotal)
	}
	if got.TaxAmount != 0 {
		t.Fatalf("taxAmount: expected 0 got %v", got.TaxAmount)
	}
	if got.Total != 0 {
		t.Fatalf("total: expected 0 got %v", got.Total)
	}
}

func TestComputeTotalsDeterministic(t *testing.T) {
	items := []models.BudgetItem{
		{Quantity: 3, UnitPrice: 33.33},
		{Quantity: 7, UnitPrice: 0.07},
	}
	a := ComputeTotals(items, 12.5, 10.5, 3)
	b := ComputeTotals(items, 12.5, 10.5, 3)
	if a != b {
		t.Fatalf("expected identical results, got %+v vs %+v", a, b)
	}
}

func TestComputeTotalsNeverNegative(t *testing.T) {
	cases := []struct {
		labor, tax, discount float64
	}{
		{0, 0, 1},
		{0, 21, 1e12},
		{500, 0, 1e6},
	}
	for _, tc := range cases {
		got := ComputeTotals(nil, tc.labor, tc.tax, tc.discount)
		if got.Total < 0 {
			t.Fatalf("total went negative for %+v: %v", tc, got.Total)
		}
	}
}

func TestRecalculateItemTotals(t *testing.T) {
	b := &models.Budget{
		Items: []models.BudgetItem{
			{Quantity: 4, UnitPrice: 12.5, Total: 999}, // stale
		},
	}
	Recalculate(b)
	if b.Items[0].Total != 50 {
		t.Fatalf("item total: expected 50 got %v", b.Items[0].Total)
	}
	if b.Subtotal != 50 {
		t.Fatalf("subtotal: expected 50 got %v", b.Subtotal)
	}

	// Edit quantity, recompute; the invariant must hold again.
	b.Items[0].Quantity = 3
	Recalculate(b)
	if b.Items[0].Total != 37.5 {
		t.Fatalf("item total after edit: expected 37.5 got %v", b.Items[0].Total)
	}
}

func TestSolarTotalPowerRecompute(t *testing.T) {
	b := &models.Budget{
		Category:  models.CategorySolar,
		LaborCost: 1,
		SolarSystem: &models.SolarSystem{
			SystemType: "On-grid",
			PanelType:  "Monocristalino",
			PanelPower: "410",
			Quantity:   10,
		},
	}
	Recalculate(b)
	if b.SolarSystem.TotalPower != 4100 {
		t.Fatalf("totalPower: expected 4100 got %d", b.SolarSystem.TotalPower)
	}
	b.SolarSystem.Quantity = 12
	Recalculate(b)
	if b.SolarSystem.TotalPower != 4920 {
		t.Fatalf("totalPower after edit: expected 4920 got %d", b.SolarSystem.TotalPower)
	}
}

func TestSolarTotalPowerUnparseablePower(t *testing.T) {
	s := &models.SolarSystem{PanelPower: "n/a", Quantity: 10}
	if got := SolarTotalPower(s); got != 0 {
		t.Fatalf("expected 0 for unparseable power, got %d", got)
	}
	if got := SolarTotalPower(nil); got != 0 {
		t.Fatalf("expected 0 for nil system, got %d", got)
	}
}
