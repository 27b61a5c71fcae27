package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/loader"
	"brandoraBack/internal/models"
)

func TestUpdateMissingPackage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	svc := &CreditPackageService{Backend: backend.NewClient(srv.Client(), srv.URL), Loads: &loader.Group{}}

	_, err := svc.Update(context.Background(), "pack_gone", models.CreditPackageInput{Name: "Starter"})
	if !errors.Is(err, models.ErrPackageNotFound) {
		t.Fatalf("Update() error = %v, want ErrPackageNotFound", err)
	}
	if err := svc.Delete(context.Background(), "pack_gone"); !errors.Is(err, models.ErrPackageNotFound) {
		t.Fatalf("Delete() error = %v, want ErrPackageNotFound", err)
	}
}
