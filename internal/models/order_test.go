package models

import (
	"testing"
	"time"
)

func orderExpiringAt(t time.Time) Order {
	return Order{OrderID: "ord_1", PaymentRequired: true, Status: OrderStatusPending, ExpiresAt: &t}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		order Order
		want  bool
	}{
		{"one millisecond past expiry", orderExpiringAt(now.Add(-time.Millisecond)), true},
		{"exactly at expiry", orderExpiringAt(now), false},
		{"one millisecond before expiry", orderExpiringAt(now.Add(time.Millisecond)), false},
		{"no expiry set", Order{OrderID: "ord_1", PaymentRequired: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.order.IsExpired(now); got != tt.want {
				t.Fatalf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsExpiringSoon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		order Order
		want  bool
	}{
		{"59 minutes left", orderExpiringAt(now.Add(59 * time.Minute)), true},
		{"exactly one hour left", orderExpiringAt(now.Add(time.Hour)), true},
		{"61 minutes left", orderExpiringAt(now.Add(61 * time.Minute)), false},
		{"already expired", orderExpiringAt(now.Add(-time.Minute)), false},
		{"no expiry set", Order{OrderID: "ord_1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.order.IsExpiringSoon(now); got != tt.want {
				t.Fatalf("IsExpiringSoon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemainingBreakdown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	order := orderExpiringAt(now.Add(49*time.Hour + 3*time.Minute + 20*time.Second))
	got := order.Remaining(now)
	want := TimeRemaining{Days: 2, Hours: 1, Minutes: 3, Seconds: 20}
	if got != want {
		t.Fatalf("Remaining() = %+v, want %+v", got, want)
	}
}

func TestRemainingExpiredCollapsesToZero(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	order := orderExpiringAt(now.Add(-5 * time.Hour))
	got := order.Remaining(now)
	want := TimeRemaining{Expired: true}
	if got != want {
		t.Fatalf("Remaining() = %+v, want %+v", got, want)
	}
}

func TestIsFreePlanActivation(t *testing.T) {
	free := Order{SubscriptionID: "sub_1", PaymentRequired: false}
	if !free.IsFreePlanActivation() {
		t.Fatal("expected order without id and payment to be a free activation")
	}
	paid := Order{OrderID: "ord_1", PaymentRequired: true}
	if paid.IsFreePlanActivation() {
		t.Fatal("expected paid order not to be a free activation")
	}
}

func TestIsCancellable(t *testing.T) {
	intent := "pi_123"

	tests := []struct {
		name  string
		order Order
		want  bool
	}{
		{"no payment intent yet", Order{OrderID: "ord_1", PaymentRequired: true}, true},
		{"pending with intent", Order{OrderID: "ord_1", PaymentRequired: true, PaymentIntentID: &intent, Status: OrderStatusPending}, true},
		{"processing with intent", Order{OrderID: "ord_1", PaymentRequired: true, PaymentIntentID: &intent, Status: OrderStatusProcessing}, false},
		{"free activation", Order{SubscriptionID: "sub_1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.order.IsCancellable(); got != tt.want {
				t.Fatalf("IsCancellable() = %v, want %v", got, tt.want)
			}
		})
	}
}
