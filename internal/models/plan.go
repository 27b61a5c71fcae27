package models

import "time"

// Plan represents a subscription plan as returned by the billing backend.
// Feature information arrives in three overlapping shapes: an explicit
// highlighted list, structured numeric/boolean fields, and free-text entries.
type Plan struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	Price               int        `json:"price"`
	Currency            string     `json:"currency"`
	Interval            string     `json:"interval"`
	IsActive            bool       `json:"is_active"`
	IsPublic            bool       `json:"is_public"`
	Credits             int        `json:"credits"`
	MaxProjects         int        `json:"max_projects"`
	MaxBrandMessages    int        `json:"max_brand_messages"`
	MaxProductVersions  int        `json:"max_product_versions"`
	TeamMembers         int        `json:"team_members"`
	SupportLevel        string     `json:"support_level,omitempty"`
	APIAccess           bool       `json:"api_access"`
	CustomBranding      bool       `json:"custom_branding"`
	HighlightedFeatures []string   `json:"highlighted_features,omitempty"`
	Features            []string   `json:"features,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// PlanInput is the payload for admin plan create/update calls.
type PlanInput struct {
	Name                string   `json:"name"`
	Description         string   `json:"description,omitempty"`
	Price               int      `json:"price"`
	Currency            string   `json:"currency"`
	Interval            string   `json:"interval"`
	IsActive            bool     `json:"is_active"`
	IsPublic            bool     `json:"is_public"`
	Credits             int      `json:"credits"`
	MaxProjects         int      `json:"max_projects"`
	MaxBrandMessages    int      `json:"max_brand_messages"`
	MaxProductVersions  int      `json:"max_product_versions"`
	TeamMembers         int      `json:"team_members"`
	SupportLevel        string   `json:"support_level,omitempty"`
	APIAccess           bool     `json:"api_access"`
	CustomBranding      bool     `json:"custom_branding"`
	HighlightedFeatures []string `json:"highlighted_features,omitempty"`
	Features            []string `json:"features,omitempty"`
}
