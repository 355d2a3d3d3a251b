package pdf

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/presupuestos/internal/models"
)

func sampleBudget() *models.Budget {
	return &models.Budget{
		ID:         "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		ClientID:   "c1",
		ClientName: "Juan Perez",
		Category:   models.CategoryAC,
		Items: []models.BudgetItem{
			{ID: "i1", Description: "Split 3000 frigorias", Quantity: 1, UnitPrice: 450000, Total: 450000},
			{ID: "i2", Description: "Caño de cobre 3m", Quantity: 2, UnitPrice: 15000, Total: 30000},
		},
		LaborCost:    80000,
		Subtotal:     480000,
		TaxRate:      21,
		TaxAmount:    117600,
		Discount:     10000,
		Total:        667600,
		Notes:        "Incluye materiales de fijacion.",
		ValidityDays: 5,
		Warranty:     "6 meses en mano de obra",
		PaymentTerms: "50% anticipo, 50% al finalizar",
		Status:       models.StatusDraft,
		CreatedAt:    time.Date(2026, 8, 5, 10, 0, 0, 0, time.UTC),
		ACEquipment:  &models.ACEquipment{Capacity: "3000", Technology: "Inverter", Status: "Instalacion de equipo nuevo"},
	}
}

func sampleProfile() *models.Profile {
	return &models.Profile{
		ID:           "profile",
		Name:         "Carlos Gomez",
		BusinessName: "Clima Sur",
		TaxID:        "20-12345678-9",
		Phone:        "1155550000",
		Email:        "carlos@climasur.ar",
		Address:      "Av. Siempre Viva 123",
	}
}

func TestDocumentNumber(t *testing.T) {
	if got := DocumentNumber("a1b2c3d4-e5f6"); got != "A1B2C3D4" {
		t.Fatalf("expected A1B2C3D4 got %s", got)
	}
	if got := DocumentNumber("abc"); got != "ABC" {
		t.Fatalf("short ids pass through uppercased, got %s", got)
	}
}

func TestArtifactName(t *testing.T) {
	b := sampleBudget()
	want := "Presupuesto_a1b2c3d4_Juan_Perez.pdf"
	if got := ArtifactName(b); got != want {
		t.Fatalf("expected %s got %s", want, got)
	}

	// Every whitespace run character collapses to underscores.
	b.ClientName = "Maria  del\tCarmen"
	if got := ArtifactName(b); got != "Presupuesto_a1b2c3d4_Maria__del_Carmen.pdf" {
		t.Fatalf("unexpected sanitized name: %s", got)
	}
}

func TestTechnicalLinesAC(t *testing.T) {
	title, lines := TechnicalLines(sampleBudget())
	if title != "DATOS DEL EQUIPO" {
		t.Fatalf("unexpected title: %s", title)
	}
	if len(lines) != 1 {
		t.Fatalf("expected single joined line, got %d", len(lines))
	}
	for _, want := range []string{"3000 frigorias", "Inverter", "Instalacion de equipo nuevo"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("line missing %q: %s", want, lines[0])
		}
	}
}

func TestTechnicalLinesSolar(t *testing.T) {
	b := sampleBudget()
	b.Category = models.CategorySolar
	b.ACEquipment = nil
	b.SolarSystem = &models.SolarSystem{
		SystemType: "On-grid",
		PanelType:  "Monocristalino",
		PanelPower: "410",
		Quantity:   10,
		TotalPower: 4100,
	}
	title, lines := TechnicalLines(b)
	if title != "DATOS DEL SISTEMA FOTOVOLTAICO" {
		t.Fatalf("unexpected title: %s", title)
	}
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "On-grid") {
		t.Fatalf("first line should carry system type: %s", lines[0])
	}
	if !strings.Contains(lines[1], "410 Wp") || !strings.Contains(lines[1], "Cantidad: 10") {
		t.Fatalf("second line missing panel details: %s", lines[1])
	}
}

func TestTechnicalLinesElectricBannerOnly(t *testing.T) {
	b := sampleBudget()
	b.Category = models.CategoryElectric
	b.ACEquipment = nil
	title, lines := TechnicalLines(b)
	if title != "INSTALACION ELECTRICA DOMICILIARIA" {
		t.Fatalf("unexpected title: %s", title)
	}
	if lines != nil {
		t.Fatalf("electric is a banner with no detail lines, got %v", lines)
	}
}

func TestTechnicalLinesMissingPayload(t *testing.T) {
	b := sampleBudget()
	b.ACEquipment = nil
	if title, _ := TechnicalLines(b); title != "" {
		t.Fatalf("expected empty section without payload, got %s", title)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0,00"},
		{250, "$250,00"},
		{302.5, "$302,50"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
	// Large figures use the es-AR dot grouping.
	if got := FormatAmount(1250000); !strings.Contains(got, "1.250.000") {
		t.Errorf("FormatAmount(1250000) = %q, want dot-grouped thousands", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)); got != "5 de agosto, 2026" {
		t.Fatalf("unexpected date: %s", got)
	}
	if got := FormatDate(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)); got != "31 de enero, 2025" {
		t.Fatalf("unexpected date: %s", got)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	for _, cat := range []models.BudgetCategory{models.CategoryAC, models.CategoryElectric, models.CategorySolar} {
		b := sampleBudget()
		b.Category = cat
		if cat == models.CategorySolar {
			b.ACEquipment = nil
			b.SolarSystem = &models.SolarSystem{SystemType: "On-grid", PanelType: "Mono", PanelPower: "410", Quantity: 4, TotalPower: 1640}
		}
		data, err := Render(b, sampleProfile())
		if err != nil {
			t.Fatalf("render %s: %v", cat, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Fatalf("render %s: expected pdf magic, got %q", cat, data[:8])
		}
	}
}

func TestRenderDoesNotMutateInputs(t *testing.T) {
	b := sampleBudget()
	p := sampleProfile()
	before := sampleBudget()
	beforeProfile := *p
	if _, err := Render(b, p); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !reflect.DeepEqual(b, before) {
		t.Fatalf("budget mutated by render:\n got %+v\nwant %+v", b, before)
	}
	if *p != beforeProfile {
		t.Fatalf("profile mutated by render")
	}
}

func TestRenderWithoutOptionalFields(t *testing.T) {
	b := sampleBudget()
	b.Notes = ""
	b.TaxRate = 0
	b.TaxAmount = 0
	b.Discount = 0
	b.ACEquipment = nil
	b.Items = nil
	data, err := Render(b, sampleProfile())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected document bytes")
	}
}
