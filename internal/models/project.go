package models

import (
	"regexp"
	"strings"
	"time"
)

// Project groups brand messages under a single brand/domain.
type Project struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Domain      string    `json:"domain"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectDraft is the in-progress project creation form. It is persisted
// under a fixed per-user key and overwritten on every save.
type ProjectDraft struct {
	Name        string    `json:"name"`
	Domain      string    `json:"domain"`
	Description string    `json:"description,omitempty"`
	SavedAt     time.Time `json:"saved_at"`
}

var domainNameRe = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}$`)

// ValidateProjectDraft checks required fields and domain shape before any
// network call is made. Validation failures never reach the backend.
func ValidateProjectDraft(d ProjectDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrMissingField
	}
	domain := strings.ToLower(strings.TrimSpace(d.Domain))
	if domain == "" {
		return ErrMissingField
	}
	if !domainNameRe.MatchString(domain) {
		return ErrInvalidDomainName
	}
	return nil
}
