package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marlondridley/FarME/internal/domain"
)

// SuggestionService fronts the generative advisor flows with input
// validation and sensible defaulting.
type SuggestionService struct {
	advisor domain.Advisor

	now func() time.Time
}

// NewSuggestionService creates the suggestion service.
func NewSuggestionService(advisor domain.Advisor) *SuggestionService {
	return &SuggestionService{advisor: advisor, now: time.Now}
}

// SuggestCrops recommends crops for a farmer. TimeOfYear defaults to the
// current season when omitted.
func (s *SuggestionService) SuggestCrops(ctx context.Context, req domain.CropSuggestionRequest) (*domain.CropSuggestions, error) {
	if strings.TrimSpace(req.WeatherPatterns) == "" ||
		strings.TrimSpace(req.TrendingPreferences) == "" ||
		strings.TrimSpace(req.GeographicArea) == "" {
		return nil, fmt.Errorf("%w: weather patterns, trending preferences and geographic area are required", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.TimeOfYear) == "" {
		req.TimeOfYear = season(s.now())
	}
	return s.advisor.SuggestCrops(ctx, req)
}

// DiscoverProduce suggests seasonal produce for a consumer.
func (s *SuggestionService) DiscoverProduce(ctx context.Context, req domain.ProduceDiscoveryRequest) (*domain.ProduceDiscovery, error) {
	if strings.TrimSpace(req.GeographicArea) == "" ||
		strings.TrimSpace(req.TastePreferences) == "" {
		return nil, fmt.Errorf("%w: geographic area and taste preferences are required", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.TimeOfYear) == "" {
		req.TimeOfYear = season(s.now())
	}
	return s.advisor.DiscoverProduce(ctx, req)
}

// SuggestRecipes produces recipe ideas for a list of produce.
func (s *SuggestionService) SuggestRecipes(ctx context.Context, produce string) (*domain.RecipeSuggestions, error) {
	if strings.TrimSpace(produce) == "" {
		return nil, fmt.Errorf("%w: produce list is required", domain.ErrInvalidRequest)
	}
	return s.advisor.SuggestRecipes(ctx, produce)
}

// season names the northern-hemisphere season for a date.
func season(t time.Time) string {
	switch t.Month() {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	default:
		return "Fall"
	}
}
