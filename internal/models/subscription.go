package models

import "time"

// Subscription statuses mirrored from the billing backend.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusTrialing  = "trialing"
	SubscriptionStatusPastDue   = "past_due"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription is the current subscription of a console user.
type Subscription struct {
	ID               string     `json:"id"`
	UserID           int        `json:"user_id"`
	PlanID           string     `json:"plan_id"`
	PlanName         string     `json:"plan_name,omitempty"`
	Status           string     `json:"status"`
	CreditsRemaining int        `json:"credits_remaining"`
	CreditsTotal     int        `json:"credits_total"`
	RenewsAt         *time.Time `json:"renews_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// HasSubscription reports whether the record represents a real subscription
// rather than the backend's "no subscription" sentinel (empty id).
func (s Subscription) HasSubscription() bool {
	return s.ID != ""
}

// CreditUsage aggregates credit consumption for the analytics panel.
type CreditUsage struct {
	UserID     int            `json:"user_id"`
	PeriodFrom time.Time      `json:"period_from"`
	PeriodTo   time.Time      `json:"period_to"`
	Used       int            `json:"used"`
	Remaining  int            `json:"remaining"`
	ByFeature  map[string]int `json:"by_feature,omitempty"`
}
