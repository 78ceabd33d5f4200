package domain

import "context"

// CropSuggestionRequest carries the context the advisor uses to recommend
// crops to a farmer.
type CropSuggestionRequest struct {
	WeatherPatterns     string `json:"weatherPatterns" binding:"required"`
	TimeOfYear          string `json:"timeOfYear"`
	TrendingPreferences string `json:"trendingPreferences" binding:"required"`
	GeographicArea      string `json:"geographicArea" binding:"required"`
	FarmHistory         string `json:"farmHistory,omitempty"`
}

// CropSuggestions is the advisor's crop recommendation.
type CropSuggestions struct {
	SuggestedCrops string `json:"suggestedCrops"`
	Reasoning      string `json:"reasoning"`
}

// ProduceDiscoveryRequest carries a consumer's context for seasonal produce
// suggestions.
type ProduceDiscoveryRequest struct {
	TimeOfYear       string `json:"timeOfYear"`
	GeographicArea   string `json:"geographicArea" binding:"required"`
	TastePreferences string `json:"tastePreferences" binding:"required"`
	CookingHabits    string `json:"cookingHabits,omitempty"`
}

// ProduceDiscovery is the advisor's produce recommendation for a consumer.
type ProduceDiscovery struct {
	SuggestedProducts string `json:"suggestedProducts"`
	Reasoning         string `json:"reasoning"`
}

// RecipeSuggestions holds 2-3 recipe ideas for a list of produce.
type RecipeSuggestions struct {
	Recipes string `json:"recipes"`
}

// OrderSummary is the order context the advisor turns into a farmer
// notification message.
type OrderSummary struct {
	FarmName    string
	ProductName string
	Quantity    int
	Total       float64
}

// Advisor is the generative prompt layer: structured input in, structured
// output back. Implementations live in infrastructure; usecases and tests
// depend only on this interface.
type Advisor interface {
	// Geocode converts a zip code to coordinates. Returns ErrGeocodeFailed
	// when the zip cannot be resolved.
	Geocode(ctx context.Context, zipCode string) (*GeoPoint, error)
	SuggestCrops(ctx context.Context, req CropSuggestionRequest) (*CropSuggestions, error)
	DiscoverProduce(ctx context.Context, req ProduceDiscoveryRequest) (*ProduceDiscovery, error)
	SuggestRecipes(ctx context.Context, produce string) (*RecipeSuggestions, error)
	OrderNotification(ctx context.Context, summary OrderSummary) (string, error)
}
