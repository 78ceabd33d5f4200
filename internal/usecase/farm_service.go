package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/marlondridley/FarME/internal/domain"
)

// Farm profile validation bounds, matching the profile form contract.
const (
	minNameLen    = 3
	minBioLen     = 10
	maxBioLen     = 160
	minAddressLen = 10
)

// FarmService serves persisted farm profiles, falling back to the bundled
// seed set when the collection is empty or unreachable, and handles
// merge-on-write profile saves.
type FarmService struct {
	repo      domain.FarmRepository
	assets    domain.AssetResolver
	seedFarms []domain.Farm
	catalog   []domain.Product
	// detailProducts is the enriched product list attached to detail views.
	detailProducts []string
}

// NewFarmService creates the farm service. seedFarms and catalog are the
// bundled static data.
func NewFarmService(repo domain.FarmRepository, assets domain.AssetResolver, seedFarms []domain.Farm, catalog []domain.Product, detailProducts []string) *FarmService {
	return &FarmService{
		repo:           repo,
		assets:         assets,
		seedFarms:      seedFarms,
		catalog:        catalog,
		detailProducts: detailProducts,
	}
}

// ListFarms returns every stored farm, decorated with display assets. An
// empty or unreachable collection degrades to the seed set so the
// marketplace is never empty.
func (s *FarmService) ListFarms(ctx context.Context) []domain.Farm {
	farms, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("[farms] list failed, serving seed data: %v", err)
		farms = nil
	}
	if len(farms) == 0 {
		farms = make([]domain.Farm, len(s.seedFarms))
		copy(farms, s.seedFarms)
	}

	for i := range farms {
		farms[i].LogoURL = s.assets.LogoURL(ctx, i)
		farms[i].HeroURL = s.assets.HeroURL(ctx, i)
	}
	return farms
}

// GetFarm returns one farm by id, checking the store first and the seed set
// second. Detail views carry the enriched product list.
func (s *FarmService) GetFarm(ctx context.Context, id string) (*domain.Farm, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: farm id is required", domain.ErrInvalidRequest)
	}

	for i, farm := range s.ListFarms(ctx) {
		if farm.ID == id {
			return s.detail(ctx, farm, i), nil
		}
	}
	// A non-empty collection does not shadow the bundled farms; each seed id
	// still resolves.
	for i, farm := range s.seedFarms {
		if farm.ID == id {
			return s.detail(ctx, farm, i), nil
		}
	}
	return nil, domain.ErrFarmNotFound
}

// detail builds the enriched detail view of one farm.
func (s *FarmService) detail(ctx context.Context, farm domain.Farm, index int) *domain.Farm {
	found := farm
	found.Products = append([]string(nil), s.detailProducts...)
	found.LogoURL = s.assets.LogoURL(ctx, index)
	found.HeroURL = s.assets.HeroURL(ctx, index)
	return &found
}

// SaveProfile validates and persists a farmer's profile edits. The write is
// a structural merge: fields outside the update (products, rating, geopoint)
// are preserved on the stored document.
func (s *FarmService) SaveProfile(ctx context.Context, ownerID string, update domain.ProfileUpdate) error {
	if ownerID == "" {
		return fmt.Errorf("%w: owner id is required", domain.ErrInvalidRequest)
	}
	if err := validateProfile(update); err != nil {
		return err
	}

	fields := map[string]interface{}{
		"name": strings.TrimSpace(update.Name),
		"bio":  strings.TrimSpace(update.Bio),
		"location": map[string]interface{}{
			"address": strings.TrimSpace(update.Address),
		},
	}
	return s.repo.Save(ctx, ownerID, fields)
}

// Products returns the product catalog.
func (s *FarmService) Products() []domain.Product {
	return s.catalog
}

// ProductByID looks up one catalog product.
func (s *FarmService) ProductByID(id string) (*domain.Product, error) {
	for _, p := range s.catalog {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
}

func validateProfile(update domain.ProfileUpdate) error {
	if len(strings.TrimSpace(update.Name)) < minNameLen {
		return fmt.Errorf("%w: farm name must be at least %d characters long", domain.ErrInvalidRequest, minNameLen)
	}
	bio := strings.TrimSpace(update.Bio)
	if len(bio) < minBioLen {
		return fmt.Errorf("%w: bio must be at least %d characters long", domain.ErrInvalidRequest, minBioLen)
	}
	if len(bio) > maxBioLen {
		return fmt.Errorf("%w: bio should not exceed %d characters", domain.ErrInvalidRequest, maxBioLen)
	}
	if len(strings.TrimSpace(update.Address)) < minAddressLen {
		return fmt.Errorf("%w: please enter a valid address", domain.ErrInvalidRequest)
	}
	return nil
}
