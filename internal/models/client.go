package models

import "time"

// Client entity. Budgets reference clients by id but snapshot the name, so
// this record can be deleted without touching existing budgets.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}
