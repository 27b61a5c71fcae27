package services

import (
	"context"
	"errors"
	"sync"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/loader"
	"brandoraBack/internal/models"
)

// CreditPackageService caches the credit package catalogue. Like the plan
// list it carries an explicit loaded flag.
type CreditPackageService struct {
	Backend *backend.Client
	Loads   *loader.Group

	mu    sync.Mutex
	packs []models.CreditPackage
	state loader.State
}

// List returns the credit package catalogue, fetched once until forced.
func (s *CreditPackageService) List(ctx context.Context, force bool) ([]models.CreditPackage, error) {
	if !force && s.state.IsLoaded("") {
		return s.cached(), nil
	}
	v, err := s.Loads.Do(ctx, "credit-package:list", force, func(ctx context.Context) (interface{}, error) {
		seq := s.state.Begin()
		packs, err := s.Backend.CreditPackages(ctx)
		if err != nil {
			s.state.Fail(seq, err.Error())
			return nil, err
		}
		if s.state.Complete(seq, "") {
			s.mu.Lock()
			s.packs = packs
			s.mu.Unlock()
		}
		return packs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.CreditPackage), nil
}

// Create proxies an admin package creation and invalidates the catalogue.
func (s *CreditPackageService) Create(ctx context.Context, in models.CreditPackageInput) (models.CreditPackage, error) {
	pack, err := s.Backend.CreateCreditPackage(ctx, in)
	if err != nil {
		return models.CreditPackage{}, err
	}
	s.state.Reset()
	return pack, nil
}

// Update proxies an admin package update and invalidates the catalogue.
func (s *CreditPackageService) Update(ctx context.Context, id string, in models.CreditPackageInput) (models.CreditPackage, error) {
	pack, err := s.Backend.UpdateCreditPackage(ctx, id, in)
	if errors.Is(err, models.ErrNoRecord) {
		return models.CreditPackage{}, models.ErrPackageNotFound
	}
	if err != nil {
		return models.CreditPackage{}, err
	}
	s.state.Reset()
	return pack, nil
}

// Delete proxies an admin package deletion and invalidates the catalogue.
func (s *CreditPackageService) Delete(ctx context.Context, id string) error {
	if err := s.Backend.DeleteCreditPackage(ctx, id); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.ErrPackageNotFound
		}
		return err
	}
	s.state.Reset()
	return nil
}

func (s *CreditPackageService) cached() []models.CreditPackage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CreditPackage, len(s.packs))
	copy(out, s.packs)
	return out
}
