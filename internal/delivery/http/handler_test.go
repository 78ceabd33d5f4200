package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marlondridley/FarME/config"
	"github.com/marlondridley/FarME/internal/domain"
	"github.com/marlondridley/FarME/internal/infrastructure/ai"
	"github.com/marlondridley/FarME/internal/infrastructure/cache"
	"github.com/marlondridley/FarME/internal/infrastructure/notify"
	"github.com/marlondridley/FarME/internal/seed"
	"github.com/marlondridley/FarME/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

// fakeUsers resolves bearer tokens from an in-memory map.
type fakeUsers struct {
	byToken map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUsers() *fakeUsers {
	farmer := &domain.User{ID: "farmer-1", Email: "farmer@example.com", Role: domain.RoleFarmer}
	consumer := &domain.User{ID: "consumer-1", Email: "consumer@example.com", Role: domain.RoleConsumer}
	return &fakeUsers{
		byToken: map[string]*domain.User{
			"farmer-token":   farmer,
			"consumer-token": consumer,
		},
		byEmail: map[string]*domain.User{
			farmer.Email:   farmer,
			consumer.Email: consumer,
		},
	}
}

func (f *fakeUsers) Create(ctx context.Context, user *domain.User, token string) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return domain.ErrUserExists
	}
	f.byEmail[user.Email] = user
	f.byToken[token] = user
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, user := range f.byToken {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	if user, ok := f.byToken[token]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// fakeFarms is an empty in-memory farm store, so handlers serve seed data.
type fakeFarms struct {
	savedID string
	saved   map[string]interface{}
}

func (f *fakeFarms) GetByID(ctx context.Context, id string) (*domain.Farm, error) {
	return nil, domain.ErrFarmNotFound
}

func (f *fakeFarms) List(ctx context.Context) ([]domain.Farm, error) {
	return nil, nil
}

func (f *fakeFarms) Save(ctx context.Context, id string, fields map[string]interface{}) error {
	f.savedID = id
	f.saved = fields
	return nil
}

// fakeOrders is an in-memory order store.
type fakeOrders struct {
	orders map[string]*domain.Order
}

func (f *fakeOrders) Create(ctx context.Context, order *domain.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if order, ok := f.orders[id]; ok {
		return order, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (f *fakeOrders) ListByFarm(ctx context.Context, farmID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range f.orders {
		if order.FarmID == farmID {
			out = append(out, *order)
		}
	}
	return out, nil
}

// fakeDirectories returns the same canned listings for every directory, or a
// shared error.
type fakeDirectories struct {
	listings []domain.Listing
	err      error
}

func (f *fakeDirectories) Search(ctx context.Context, dir domain.Directory, center domain.GeoPoint, radiusMiles float64) ([]domain.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listings, nil
}

// fakeAdvisor returns canned suggestion results.
type fakeAdvisor struct {
	ai.Disabled

	crops   *domain.CropSuggestions
	produce *domain.ProduceDiscovery
	recipes *domain.RecipeSuggestions
}

func (f *fakeAdvisor) SuggestCrops(ctx context.Context, req domain.CropSuggestionRequest) (*domain.CropSuggestions, error) {
	return f.crops, nil
}

func (f *fakeAdvisor) DiscoverProduce(ctx context.Context, req domain.ProduceDiscoveryRequest) (*domain.ProduceDiscovery, error) {
	return f.produce, nil
}

func (f *fakeAdvisor) SuggestRecipes(ctx context.Context, produce string) (*domain.RecipeSuggestions, error) {
	return f.recipes, nil
}

type testEnv struct {
	router *gin.Engine
	users  *fakeUsers
	farms  *fakeFarms
	orders *fakeOrders
}

// setupTestEnv wires the full handler stack over in-memory fakes. The
// directory client and advisor are swappable per test.
func setupTestEnv(directories domain.DirectoryClient, advisor domain.Advisor) *testEnv {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	users := newFakeUsers()
	farms := &fakeFarms{}
	orders := &fakeOrders{orders: map[string]*domain.Order{}}
	placeholders := usecase.NewPlaceholders(rand.New(rand.NewSource(1)))

	exploreService := usecase.NewExploreService(
		directories, advisor, cache.NewMemoryCache(), mockAssets{}, placeholders,
		seed.Listings(), usecase.ExploreConfig{},
	)
	farmService := usecase.NewFarmService(farms, mockAssets{}, seed.Farms(), seed.Products(), seed.DetailProducts())
	orderService := usecase.NewOrderService(orders, farmService, advisor, notify.NoopPublisher{})
	suggestionService := usecase.NewSuggestionService(advisor)

	handler := NewHandler(exploreService, farmService, orderService, suggestionService, users)
	return &testEnv{
		router: SetupRouter(cfg, handler),
		users:  users,
		farms:  farms,
		orders: orders,
	}
}

// mockAssets labels URLs by index so decoration is observable.
type mockAssets struct{}

func (mockAssets) LogoURL(ctx context.Context, index int) string    { return "logo" }
func (mockAssets) HeroURL(ctx context.Context, index int) string    { return "hero" }
func (mockAssets) ProductURL(ctx context.Context, id string) string { return "product" }

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
}

func TestHealthCheckEndpoint(t *testing.T) {
	env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

	w := doJSON(t, env.router, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	decode(t, w, &response)
	if response["status"] != "healthy" {
		t.Errorf(`status = %v, want "healthy"`, response["status"])
	}
}

func TestExploreEndpoint(t *testing.T) {
	liveListings := []domain.Listing{
		{ID: "live-1", Name: "Live Farm", Distance: 1.2, Category: domain.CategoryFarm},
	}

	t.Run("authenticated caller gets live data", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{listings: liveListings}, ai.Disabled{})

		w := doJSON(t, env.router, "GET", "/api/v1/explore?lat=34.05&lng=-118.24", "consumer-token", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}

		var result domain.ExploreResult
		decode(t, w, &result)
		if result.Source != domain.SourceLive {
			t.Errorf("Source = %s, want live", result.Source)
		}
		if len(result.Listings) != 1 || result.Listings[0].ID != "live-1" {
			t.Errorf("Listings = %v, want the single deduplicated live listing", result.Listings)
		}
	})

	t.Run("guest gets the truncated fallback view when upstream is down", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{err: errors.New("upstream down")}, ai.Disabled{})

		w := doJSON(t, env.router, "GET", "/api/v1/explore?lat=34.05&lng=-118.24", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var result domain.ExploreResult
		decode(t, w, &result)
		if result.Source != domain.SourceFallback {
			t.Errorf("Source = %s, want fallback", result.Source)
		}
		if len(result.Listings) != 3 {
			t.Errorf("got %d listings, want the guest limit of 3", len(result.Listings))
		}
		if result.Notice == "" {
			t.Error("fallback response must carry a notice")
		}
	})

	t.Run("zip without a working geocoder falls back", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{listings: liveListings}, ai.Disabled{})

		w := doJSON(t, env.router, "GET", "/api/v1/explore?zip=90210", "consumer-token", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var result domain.ExploreResult
		decode(t, w, &result)
		if result.Source != domain.SourceFallback {
			t.Errorf("Source = %s, want fallback when geocoding is unavailable", result.Source)
		}
	})

	t.Run("missing coordinates", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "GET", "/api/v1/explore", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestFarmEndpoints(t *testing.T) {
	env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

	t.Run("list is public and seeded", func(t *testing.T) {
		w := doJSON(t, env.router, "GET", "/api/v1/farms", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response struct {
			Farms []domain.Farm `json:"farms"`
		}
		decode(t, w, &response)
		if len(response.Farms) != 4 {
			t.Errorf("got %d farms, want the 4 seed farms", len(response.Farms))
		}
	})

	t.Run("detail view", func(t *testing.T) {
		w := doJSON(t, env.router, "GET", "/api/v1/farms/green-valley-greens", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var farm domain.Farm
		decode(t, w, &farm)
		if farm.Name != "Green Valley Greens" {
			t.Errorf("Name = %s, want Green Valley Greens", farm.Name)
		}
		if len(farm.Products) == 0 {
			t.Error("detail view must carry the product list")
		}
	})

	t.Run("unknown farm", func(t *testing.T) {
		w := doJSON(t, env.router, "GET", "/api/v1/farms/nope", "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestSaveProfileEndpoint(t *testing.T) {
	update := domain.ProfileUpdate{
		Name:    "Green Valley Greens",
		Bio:     "Organic greens and heirloom vegetables.",
		Address: "123 Green Valley Rd, Organica, CA",
	}

	t.Run("farmer can save", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "PUT", "/api/v1/farms/profile", "farmer-token", update)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
		if env.farms.savedID != "farmer-1" {
			t.Errorf("saved id = %s, want the farmer's own id", env.farms.savedID)
		}
	})

	t.Run("requires a token", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "PUT", "/api/v1/farms/profile", "", update)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("requires the farmer role", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "PUT", "/api/v1/farms/profile", "consumer-token", update)
		if w.Code != http.StatusForbidden {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("validates the body", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		short := update
		short.Bio = "too short"
		w := doJSON(t, env.router, "PUT", "/api/v1/farms/profile", "farmer-token", short)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestOrderEndpoints(t *testing.T) {
	placeOrder := func(t *testing.T, env *testEnv, token string) domain.Order {
		t.Helper()
		w := doJSON(t, env.router, "POST", "/api/v1/orders", token, map[string]interface{}{
			"farmId": "green-valley-greens",
			"products": []map[string]interface{}{
				{"productId": "heirloom-tomatoes", "quantity": 2},
			},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
		}
		var order domain.Order
		decode(t, w, &order)
		return order
	}

	t.Run("place and fetch", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		order := placeOrder(t, env, "consumer-token")
		if order.Total != 2*4.99 {
			t.Errorf("Total = %v, want %v", order.Total, 2*4.99)
		}
		if order.FarmerNotification == "" {
			t.Error("order must carry a farmer notification message")
		}

		w := doJSON(t, env.router, "GET", "/api/v1/orders/"+order.ID, "consumer-token", nil)
		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("requires a token", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "POST", "/api/v1/orders", "", map[string]interface{}{})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("strangers cannot read an order", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		order := placeOrder(t, env, "consumer-token")
		w := doJSON(t, env.router, "GET", "/api/v1/orders/"+order.ID, "farmer-token", nil)
		// farmer-1 does not own green-valley-greens, so the order is hidden.
		if w.Code != http.StatusForbidden {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("farmer lists own farm orders", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "GET", "/api/v1/orders", "farmer-token", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		w = doJSON(t, env.router, "GET", "/api/v1/orders", "consumer-token", nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("Status = %d, want %d for a consumer", w.Code, http.StatusForbidden)
		}
	})
}

func TestSuggestionEndpoints(t *testing.T) {
	advisor := &fakeAdvisor{
		crops:   &domain.CropSuggestions{SuggestedCrops: "kale, chard"},
		produce: &domain.ProduceDiscovery{SuggestedProducts: "strawberries"},
		recipes: &domain.RecipeSuggestions{Recipes: "tomato salad"},
	}

	cropBody := map[string]string{
		"weatherPatterns":     "mild and wet",
		"trendingPreferences": "leafy greens",
		"geographicArea":      "Willamette Valley",
	}

	t.Run("crops are farmer only", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, advisor)

		w := doJSON(t, env.router, "POST", "/api/v1/suggestions/crops", "farmer-token", cropBody)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}

		w = doJSON(t, env.router, "POST", "/api/v1/suggestions/crops", "consumer-token", cropBody)
		if w.Code != http.StatusForbidden {
			t.Errorf("Status = %d, want %d for a consumer", w.Code, http.StatusForbidden)
		}
	})

	t.Run("produce discovery", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, advisor)

		w := doJSON(t, env.router, "POST", "/api/v1/suggestions/produce", "consumer-token", map[string]string{
			"geographicArea":   "Los Angeles",
			"tastePreferences": "sweet and crunchy",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("recipes validate the body", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, advisor)

		w := doJSON(t, env.router, "POST", "/api/v1/suggestions/recipes", "consumer-token", map[string]string{})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("disabled advisor reports unavailability", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "POST", "/api/v1/suggestions/recipes", "consumer-token", map[string]string{
			"produce": "tomatoes",
		})
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("signup then me", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "POST", "/api/v1/auth/signup", "", map[string]string{
			"email": "new@example.com",
			"role":  "consumer",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
		}

		var response struct {
			User  domain.User `json:"user"`
			Token string      `json:"token"`
		}
		decode(t, w, &response)
		if response.Token == "" {
			t.Fatal("signup must issue a token")
		}

		w = doJSON(t, env.router, "GET", "/api/v1/auth/me", response.Token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var me domain.User
		decode(t, w, &me)
		if me.Email != "new@example.com" {
			t.Errorf("Email = %s, want new@example.com", me.Email)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "POST", "/api/v1/auth/signup", "", map[string]string{
			"email": "farmer@example.com",
			"role":  "farmer",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusConflict)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "POST", "/api/v1/auth/signup", "", map[string]string{
			"email": "another@example.com",
			"role":  "admin",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("me requires a token", func(t *testing.T) {
		env := setupTestEnv(&fakeDirectories{}, ai.Disabled{})

		w := doJSON(t, env.router, "GET", "/api/v1/auth/me", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}
