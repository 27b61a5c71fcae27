package models

import "time"

// Order statuses form a closed set; anything else coming back from the
// billing backend is treated as unknown and left untouched.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusExpired    = "expired"
)

// Order represents a pending attempt to purchase a plan or credit package.
// OrderID is empty for free-plan activations that never entered the payment
// flow; PaymentIntentID is set once the payment provider has been engaged.
type Order struct {
	OrderID         string     `json:"order_id,omitempty"`
	UserID          int        `json:"user_id"`
	PlanID          string     `json:"plan_id,omitempty"`
	PackageID       string     `json:"package_id,omitempty"`
	SubscriptionID  string     `json:"subscription_id,omitempty"`
	Status          string     `json:"status"`
	Amount          int        `json:"amount"`
	Currency        string     `json:"currency"`
	PaymentRequired bool       `json:"payment_required"`
	PaymentIntentID *string    `json:"payment_intent_id,omitempty"`
	CheckoutURL     *string    `json:"checkout_url,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TimeRemaining is a breakdown of the interval until an order expires.
type TimeRemaining struct {
	Expired bool `json:"expired"`
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
}

// IsExpired reports whether the order's expiry lies strictly in the past.
// Orders without an expiry never expire.
func (o Order) IsExpired(now time.Time) bool {
	if o.ExpiresAt == nil {
		return false
	}
	return o.ExpiresAt.Before(now)
}

// IsExpiringSoon reports whether the order expires within the next hour.
// Expired orders are not "expiring soon".
func (o Order) IsExpiringSoon(now time.Time) bool {
	if o.ExpiresAt == nil {
		return false
	}
	until := o.ExpiresAt.Sub(now)
	return until > 0 && until <= time.Hour
}

// Remaining computes the time left until expiry. Negative deltas collapse to
// the zero breakdown with Expired set instead of negative components.
func (o Order) Remaining(now time.Time) TimeRemaining {
	if o.ExpiresAt == nil {
		return TimeRemaining{}
	}
	delta := o.ExpiresAt.Sub(now)
	if delta <= 0 {
		return TimeRemaining{Expired: true}
	}
	seconds := int(delta / time.Second)
	return TimeRemaining{
		Days:    seconds / 86400,
		Hours:   (seconds % 86400) / 3600,
		Minutes: (seconds % 3600) / 60,
		Seconds: seconds % 60,
	}
}

// IsFreePlanActivation reports whether the record is an already-activated
// free plan rather than a true pending order: no order id was issued and no
// payment is required.
func (o Order) IsFreePlanActivation() bool {
	return o.OrderID == "" && !o.PaymentRequired
}

// IsCancellable reports whether the order can still be cancelled. An order
// that has not entered the payment flow is always cancellable.
func (o Order) IsCancellable() bool {
	if o.IsFreePlanActivation() {
		return false
	}
	if o.PaymentIntentID == nil {
		return true
	}
	return o.Status == OrderStatusPending
}
