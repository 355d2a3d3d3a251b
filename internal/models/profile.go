package models

// Profile holds the single professional user's business identity, printed as
// the document letterhead. Create-or-overwrite, no further lifecycle.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BusinessName string `json:"businessName"`
	TaxID        string `json:"taxId"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Logo         string `json:"logo,omitempty"`
}
