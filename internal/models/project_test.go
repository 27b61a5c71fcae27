package models

import (
	"errors"
	"testing"
)

func TestValidateProjectDraft(t *testing.T) {
	tests := []struct {
		name    string
		draft   ProjectDraft
		wantErr error
	}{
		{"valid", ProjectDraft{Name: "Acme", Domain: "acme.example.com"}, nil},
		{"uppercase domain accepted", ProjectDraft{Name: "Acme", Domain: "ACME.COM"}, nil},
		{"missing name", ProjectDraft{Domain: "acme.com"}, ErrMissingField},
		{"blank name", ProjectDraft{Name: "   ", Domain: "acme.com"}, ErrMissingField},
		{"missing domain", ProjectDraft{Name: "Acme"}, ErrMissingField},
		{"no tld", ProjectDraft{Name: "Acme", Domain: "localhost"}, ErrInvalidDomainName},
		{"scheme included", ProjectDraft{Name: "Acme", Domain: "https://acme.com"}, ErrInvalidDomainName},
		{"leading hyphen", ProjectDraft{Name: "Acme", Domain: "-acme.com"}, ErrInvalidDomainName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectDraft(tt.draft)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateProjectDraft() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
