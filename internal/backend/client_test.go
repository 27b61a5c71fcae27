package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"brandoraBack/internal/models"
)

func TestBearerTokenForwarded(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"sub-1","status":"active"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	ctx := WithToken(context.Background(), "tok-123")
	sub, err := c.CurrentSubscription(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if !sub.HasSubscription() || sub.Status != "active" {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
}

func TestErrorMessageSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"order already exists for this plan"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	_, err := c.InitiateOrder(context.Background(), "plan-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "order already exists for this plan" || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestNotFoundMapsToNoRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	_, err := c.PlanByID(context.Background(), "missing")
	if !errors.Is(err, models.ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
}

func TestNoSubscriptionSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	sub, err := c.CurrentSubscription(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.HasSubscription() {
		t.Fatal("empty payload must read as no subscription")
	}
}
