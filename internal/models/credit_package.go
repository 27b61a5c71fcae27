package models

import "time"

// CreditPackage is a one-off purchasable credit bundle.
type CreditPackage struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Credits   int        `json:"credits"`
	Price     int        `json:"price"`
	Currency  string     `json:"currency"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CreditPackageInput is the payload for admin package create/update calls.
type CreditPackageInput struct {
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
	Price    int    `json:"price"`
	Currency string `json:"currency"`
	IsActive bool   `json:"is_active"`
}
