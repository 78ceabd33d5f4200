package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/marlondridley/FarME/internal/domain"
)

// MockDirectoryClient returns canned listings or errors per directory.
type MockDirectoryClient struct {
	results map[domain.Directory][]domain.Listing
	errs    map[domain.Directory]error
	calls   []domain.Directory
}

func NewMockDirectoryClient() *MockDirectoryClient {
	return &MockDirectoryClient{
		results: make(map[domain.Directory][]domain.Listing),
		errs:    make(map[domain.Directory]error),
	}
}

func (m *MockDirectoryClient) Search(ctx context.Context, dir domain.Directory, center domain.GeoPoint, radiusMiles float64) ([]domain.Listing, error) {
	m.calls = append(m.calls, dir)
	if err, ok := m.errs[dir]; ok {
		return nil, err
	}
	return m.results[dir], nil
}

// MockCacheRepository is an in-memory domain.CacheRepository.
type MockCacheRepository struct {
	data      map[string]interface{}
	getCalled int
	setCalled int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string]interface{})}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.getCalled++
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalled++
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockAdvisor is a canned domain.Advisor.
type MockAdvisor struct {
	geocodeResult *domain.GeoPoint
	geocodeErr    error
	geocodeCalls  int

	cropResult    *domain.CropSuggestions
	produceResult *domain.ProduceDiscovery
	recipeResult  *domain.RecipeSuggestions
	flowErr       error

	notification    string
	notificationErr error

	lastCropReq    domain.CropSuggestionRequest
	lastProduceReq domain.ProduceDiscoveryRequest
}

func (m *MockAdvisor) Geocode(ctx context.Context, zipCode string) (*domain.GeoPoint, error) {
	m.geocodeCalls++
	if m.geocodeErr != nil {
		return nil, m.geocodeErr
	}
	return m.geocodeResult, nil
}

func (m *MockAdvisor) SuggestCrops(ctx context.Context, req domain.CropSuggestionRequest) (*domain.CropSuggestions, error) {
	m.lastCropReq = req
	if m.flowErr != nil {
		return nil, m.flowErr
	}
	return m.cropResult, nil
}

func (m *MockAdvisor) DiscoverProduce(ctx context.Context, req domain.ProduceDiscoveryRequest) (*domain.ProduceDiscovery, error) {
	m.lastProduceReq = req
	if m.flowErr != nil {
		return nil, m.flowErr
	}
	return m.produceResult, nil
}

func (m *MockAdvisor) SuggestRecipes(ctx context.Context, produce string) (*domain.RecipeSuggestions, error) {
	if m.flowErr != nil {
		return nil, m.flowErr
	}
	return m.recipeResult, nil
}

func (m *MockAdvisor) OrderNotification(ctx context.Context, summary domain.OrderSummary) (string, error) {
	if m.notificationErr != nil {
		return "", m.notificationErr
	}
	return m.notification, nil
}

// MockAssets labels assets by index so tests can assert decoration happened.
type MockAssets struct{}

func (MockAssets) LogoURL(ctx context.Context, index int) string {
	return fmt.Sprintf("logo-%d", index)
}

func (MockAssets) HeroURL(ctx context.Context, index int) string {
	return fmt.Sprintf("hero-%d", index)
}

func (MockAssets) ProductURL(ctx context.Context, productID string) string {
	return "product-" + productID
}

// SequencePlaceholders hands out a fixed rating and a repeating sequence of
// guest distances.
type SequencePlaceholders struct {
	rating    float64
	distances []float64
	next      int
}

func (p *SequencePlaceholders) Rating() float64 { return p.rating }

func (p *SequencePlaceholders) GuestDistance() float64 {
	if len(p.distances) == 0 {
		return 0
	}
	d := p.distances[p.next%len(p.distances)]
	p.next++
	return d
}

// MockFarmRepository is an in-memory domain.FarmRepository.
type MockFarmRepository struct {
	farms    []domain.Farm
	listErr  error
	saveErr  error
	savedID  string
	saved    map[string]interface{}
	saveHits int
}

func (m *MockFarmRepository) GetByID(ctx context.Context, id string) (*domain.Farm, error) {
	for _, f := range m.farms {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, domain.ErrFarmNotFound
}

func (m *MockFarmRepository) List(ctx context.Context) ([]domain.Farm, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.farms, nil
}

func (m *MockFarmRepository) Save(ctx context.Context, id string, fields map[string]interface{}) error {
	m.saveHits++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedID = id
	m.saved = fields
	return nil
}

// MockOrderRepository is an in-memory domain.OrderRepository.
type MockOrderRepository struct {
	orders    map[string]*domain.Order
	createErr error
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[string]*domain.Order)}
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if order, ok := m.orders[id]; ok {
		return order, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderRepository) ListByFarm(ctx context.Context, farmID string) ([]domain.Order, error) {
	var orders []domain.Order
	for _, order := range m.orders {
		if order.FarmID == farmID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

// MockPublisher records published notifications.
type MockPublisher struct {
	published []string
	err       error
}

func (m *MockPublisher) PublishOrderNotification(ctx context.Context, farmID, orderID, message string) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, message)
	return nil
}
