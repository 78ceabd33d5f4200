// Package ai implements the generative prompt layer on the Gemini API.
// Every flow takes a structured input, renders a prompt, and asks the model
// for JSON matching a declared schema.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marlondridley/FarME/internal/domain"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Advisor implements domain.Advisor on the Gemini API.
type Advisor struct {
	client *genai.Client
	model  string
}

// NewAdvisor creates a Gemini-backed advisor.
func NewAdvisor(ctx context.Context, apiKey, model string) (*Advisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", domain.ErrAdvisorUnavailable)
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating client: %v", domain.ErrAdvisorUnavailable, err)
	}

	return &Advisor{client: client, model: model}, nil
}

// generate runs one prompt with a JSON response schema and decodes the model
// output into out.
func (a *Advisor) generate(ctx context.Context, prompt string, schema *genai.Schema, out interface{}) error {
	result, err := a.client.Models.GenerateContent(ctx, a.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAdvisorUnavailable, err)
	}

	text := result.Text()
	if text == "" {
		return fmt.Errorf("%w: empty response", domain.ErrAdvisorUnavailable)
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", domain.ErrAdvisorUnavailable, err)
	}
	return nil
}

// Geocode converts a zip code into coordinates.
func (a *Advisor) Geocode(ctx context.Context, zipCode string) (*domain.GeoPoint, error) {
	prompt := fmt.Sprintf(`You are a geocoding expert. Given the following zip code, provide the corresponding latitude and longitude.

Zip Code: %s

Only return the numerical latitude and longitude.`, zipCode)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"latitude":  {Type: genai.TypeNumber, Description: "The latitude of the zip code."},
			"longitude": {Type: genai.TypeNumber, Description: "The longitude of the zip code."},
		},
	}

	var out struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := a.generate(ctx, prompt, schema, &out); err != nil {
		return nil, err
	}
	if out.Latitude == nil || out.Longitude == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGeocodeFailed, zipCode)
	}

	return &domain.GeoPoint{Latitude: *out.Latitude, Longitude: *out.Longitude}, nil
}

// SuggestCrops recommends crops for a farmer to plant.
func (a *Advisor) SuggestCrops(ctx context.Context, req domain.CropSuggestionRequest) (*domain.CropSuggestions, error) {
	var b strings.Builder
	b.WriteString("You are an expert agricultural advisor. Based on the following information, provide a list of suggested crops for the farmer to plant and a brief explanation of your reasoning.\n\n")
	fmt.Fprintf(&b, "Weather Patterns: %s\n", req.WeatherPatterns)
	fmt.Fprintf(&b, "Time of Year: %s\n", req.TimeOfYear)
	fmt.Fprintf(&b, "Trending Customer Preferences: %s\n", req.TrendingPreferences)
	fmt.Fprintf(&b, "Geographic Area: %s\n", req.GeographicArea)
	if req.FarmHistory != "" {
		fmt.Fprintf(&b, "Farm History: %s\n", req.FarmHistory)
	}
	b.WriteString("\nConsider all factors to provide the best possible recommendations.")

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestedCrops": {Type: genai.TypeString, Description: "A list of suggested crops to plant, considering the input factors."},
			"reasoning":      {Type: genai.TypeString, Description: "Explanation of why these crops are suggested, referencing the input factors."},
		},
		Required: []string{"suggestedCrops", "reasoning"},
	}

	var out domain.CropSuggestions
	if err := a.generate(ctx, b.String(), schema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DiscoverProduce suggests seasonal produce for a consumer to look for.
func (a *Advisor) DiscoverProduce(ctx context.Context, req domain.ProduceDiscoveryRequest) (*domain.ProduceDiscovery, error) {
	var b strings.Builder
	b.WriteString("You are a local food expert. Based on the following information, suggest 3-5 seasonal produce items the user should look for at local farms and markets, with a brief explanation.\n\n")
	fmt.Fprintf(&b, "Time of Year: %s\n", req.TimeOfYear)
	fmt.Fprintf(&b, "Geographic Area: %s\n", req.GeographicArea)
	fmt.Fprintf(&b, "Taste Preferences: %s\n", req.TastePreferences)
	if req.CookingHabits != "" {
		fmt.Fprintf(&b, "Cooking Habits: %s\n", req.CookingHabits)
	}

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestedProducts": {Type: genai.TypeString, Description: "A list of 3-5 suggested produce items to look for at local farms and markets."},
			"reasoning":         {Type: genai.TypeString, Description: "Explanation referencing seasonality, location, and user preferences."},
		},
		Required: []string{"suggestedProducts", "reasoning"},
	}

	var out domain.ProduceDiscovery
	if err := a.generate(ctx, b.String(), schema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SuggestRecipes produces 2-3 recipe ideas for a list of produce.
func (a *Advisor) SuggestRecipes(ctx context.Context, produce string) (*domain.RecipeSuggestions, error) {
	prompt := fmt.Sprintf(`You are a creative chef who specializes in simple, delicious recipes using fresh, seasonal ingredients.

A user has the following produce available:
%s

Suggest 2-3 simple and appealing recipe ideas that feature these ingredients. The recipes should be easy to follow for a home cook. For each recipe, provide a name and a brief, enticing description. Do not provide a full ingredient list or step-by-step instructions.`, produce)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recipes": {Type: genai.TypeString, Description: "A list of 2-3 simple recipe ideas using the provided produce, formatted for easy reading."},
		},
		Required: []string{"recipes"},
	}

	var out domain.RecipeSuggestions
	if err := a.generate(ctx, prompt, schema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderNotification writes the short message sent to a farmer when an order
// comes in. The order id itself is assigned by the caller, not the model.
func (a *Advisor) OrderNotification(ctx context.Context, summary domain.OrderSummary) (string, error) {
	prompt := fmt.Sprintf(`You are an order processing agent for a farm-to-table delivery service. A customer has just placed an order.

Order Details:
- Farm: %s
- Product: %s
- Quantity: %d
- Total: $%.2f

Write a short, clear notification message for the farmer summarizing the new order.`,
		summary.FarmName, summary.ProductName, summary.Quantity, summary.Total)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"farmerNotification": {Type: genai.TypeString, Description: "A notification message to be sent to the farmer."},
		},
		Required: []string{"farmerNotification"},
	}

	var out struct {
		FarmerNotification string `json:"farmerNotification"`
	}
	if err := a.generate(ctx, prompt, schema, &out); err != nil {
		return "", err
	}
	return out.FarmerNotification, nil
}
