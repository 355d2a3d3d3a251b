package models

import "time"

// BudgetCategory is the installation domain of a budget. It gates which
// technical payload the budget carries and which labels the document uses.
type BudgetCategory string

const (
	CategoryAC       BudgetCategory = "ac"
	CategoryElectric BudgetCategory = "electric"
	CategorySolar    BudgetCategory = "solar"
)

func (c BudgetCategory) Valid() bool {
	switch c {
	case CategoryAC, CategoryElectric, CategorySolar:
		return true
	}
	return false
}

// CategoryLabels are the human labels printed on documents and badges.
var CategoryLabels = map[BudgetCategory]string{
	CategoryAC:       "Aire Acondicionado Split",
	CategoryElectric: "Instalacion Electrica",
	CategorySolar:    "Sistema Fotovoltaico",
}

// CategoryPhrases are the lowercase forms used inside share messages.
var CategoryPhrases = map[BudgetCategory]string{
	CategoryAC:       "instalacion de aire acondicionado",
	CategoryElectric: "instalacion electrica",
	CategorySolar:    "sistema fotovoltaico",
}

type BudgetStatus string

const (
	StatusDraft    BudgetStatus = "draft"
	StatusSent     BudgetStatus = "sent"
	StatusAccepted BudgetStatus = "accepted"
	// StatusRejected is never set by the wizard; it is reachable only through
	// the direct status update endpoint.
	StatusRejected BudgetStatus = "rejected"
)

func (s BudgetStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// BudgetItem is one billable line. Total is derived and must equal
// Quantity * UnitPrice after every mutation.
type BudgetItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// ACEquipment is the technical payload for category "ac".
type ACEquipment struct {
	Capacity   string `json:"capacity"`   // frigorias
	Technology string `json:"technology"` // On/Off, Inverter
	Status     string `json:"status"`     // installation kind
}

// SolarSystem is the technical payload for category "solar".
// TotalPower is derived: PanelPower (Wp, stored as the selected option
// string) times Quantity.
type SolarSystem struct {
	SystemType string `json:"systemType"`
	PanelType  string `json:"panelType"`
	PanelPower string `json:"panelPower"`
	Quantity   int    `json:"quantity"`
	TotalPower int    `json:"totalPower"`
}

// Budget is the central aggregate: one quotation for one client and one
// category. ClientName is a snapshot taken when the client is bound;
// deleting the client afterwards leaves the budget untouched.
type Budget struct {
	ID           string         `json:"id"`
	ClientID     string         `json:"clientId"`
	ClientName   string         `json:"clientName"`
	Category     BudgetCategory `json:"category"`
	Items        []BudgetItem   `json:"items"`
	LaborCost    float64        `json:"laborCost"`
	Subtotal     float64        `json:"subtotal"`
	TaxRate      float64        `json:"taxRate"` // percent
	TaxAmount    float64        `json:"taxAmount"`
	Discount     float64        `json:"discount"` // flat amount
	Total        float64        `json:"total"`
	Notes        string         `json:"notes"`
	ValidityDays int            `json:"validityDays"`
	Warranty     string         `json:"warranty"`
	PaymentTerms string         `json:"paymentTerms"`
	Status       BudgetStatus   `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	SentAt       *time.Time     `json:"sentAt,omitempty"`
	ACEquipment  *ACEquipment   `json:"acEquipment,omitempty"`
	SolarSystem  *SolarSystem   `json:"solarSystem,omitempty"`
}

// Sub-form option lists. The client renders these as selects; the server
// only publishes them. Free-text values are still accepted on save.
var (
	ACCapacityOptions   = []string{"2250", "3000", "4500", "6000"}
	ACTechnologyOptions = []string{"On/Off", "Inverter"}
	ACStatusOptions     = []string{"Instalacion de equipo nuevo", "Desinstalacion", "Reinstalacion"}

	SolarSystemTypeOptions = []string{"On-grid", "Off-grid", "Hibrido"}
	SolarPanelTypeOptions  = []string{"Monocristalino", "Policristalino"}
	SolarPanelPowerOptions = []string{
		"10", "30", "50", "60", "90", "120", "170", "200", "210",
		"350", "370", "400", "410", "440", "450", "500", "520", "550", "580", "585", "610", "635", "700", "710",
	}
)
