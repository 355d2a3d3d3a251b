package services

import (
	"strconv"

	"github.com/diewo77/presupuestos/internal/models"
)

// Totals are the derived money fields of a budget. Values are kept unrounded;
// 2-decimal formatting is a presentation concern applied at render time.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// ItemTotal computes one line amount.
func ItemTotal(quantity int, unitPrice float64) float64 {
	return float64(quantity) * unitPrice
}

// ComputeTotals derives subtotal, tax, and total from the line items plus the
// cost modifiers. It does not validate inputs; the form layer rejects
// negative or garbage values before they reach here. Tax applies to
// materials plus labor, and the total floors at zero when the discount
// exceeds everything else.
func ComputeTotals(items []models.BudgetItem, laborCost, taxRate, discount float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += ItemTotal(it.Quantity, it.UnitPrice)
	}
	base := subtotal + laborCost
	taxAmount := base * taxRate / 100
	total := base + taxAmount - discount
	if total < 0 {
		total = 0
	}
	return Totals{Subtotal: subtotal, TaxAmount: taxAmount, Total: total}
}

// SolarTotalPower derives the array's total power. An unparseable panel
// power counts as zero rather than failing the recompute.
func SolarTotalPower(s *models.SolarSystem) int {
	if s == nil {
		return 0
	}
	power, _ := strconv.Atoi(s.PanelPower)
	return power * s.Quantity
}

// Recalculate replaces every derived field on the budget: each item total,
// the three money totals, and the solar array power. Callers must invoke it
// after any mutation and before persisting, so the stored record never
// drifts from its items.
func Recalculate(b *models.Budget) {
	for i := range b.Items {
		b.Items[i].Total = ItemTotal(b.Items[i].Quantity, b.Items[i].UnitPrice)
	}
	t := ComputeTotals(b.Items, b.LaborCost, b.TaxRate, b.Discount)
	b.Subtotal = t.Subtotal
	b.TaxAmount = t.TaxAmount
	b.Total = t.Total
	if b.SolarSystem != nil {
		b.SolarSystem.TotalPower = SolarTotalPower(b.SolarSystem)
	}
}
