package ai

import (
	"context"

	"github.com/marlondridley/FarME/internal/domain"
)

// Disabled is the advisor used when no Gemini API key is configured. Every
// flow reports ErrAdvisorUnavailable; callers degrade from there (zip-based
// explore serves fallback data, orders use a plain generated notification).
type Disabled struct{}

var _ domain.Advisor = Disabled{}

func (Disabled) Geocode(ctx context.Context, zipCode string) (*domain.GeoPoint, error) {
	return nil, domain.ErrAdvisorUnavailable
}

func (Disabled) SuggestCrops(ctx context.Context, req domain.CropSuggestionRequest) (*domain.CropSuggestions, error) {
	return nil, domain.ErrAdvisorUnavailable
}

func (Disabled) DiscoverProduce(ctx context.Context, req domain.ProduceDiscoveryRequest) (*domain.ProduceDiscovery, error) {
	return nil, domain.ErrAdvisorUnavailable
}

func (Disabled) SuggestRecipes(ctx context.Context, produce string) (*domain.RecipeSuggestions, error) {
	return nil, domain.ErrAdvisorUnavailable
}

func (Disabled) OrderNotification(ctx context.Context, summary domain.OrderSummary) (string, error) {
	return "", domain.ErrAdvisorUnavailable
}
