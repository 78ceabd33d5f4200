package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marlondridley/FarME/internal/domain"
)

// Delivery lead times per fulfilment tier.
const (
	standardDeliveryDays = 5
	premiumDeliveryDays  = 2
)

// PlaceOrderRequest is a customer's order submission.
type PlaceOrderRequest struct {
	FarmID         string                `json:"farmId" binding:"required"`
	Items          []domain.OrderItem    `json:"products" binding:"required"`
	DeliveryOption domain.DeliveryOption `json:"deliveryOption"`
}

// OrderService places and serves orders. Placing an order persists it,
// generates a notification message for the farmer, and publishes that
// message; the two latter steps are best-effort and never fail the order.
type OrderService struct {
	orders    domain.OrderRepository
	farms     *FarmService
	advisor   domain.Advisor
	publisher domain.NotificationPublisher

	// Injectable for deterministic tests.
	now   func() time.Time
	newID func() string
}

// NewOrderService creates the order service.
func NewOrderService(orders domain.OrderRepository, farms *FarmService, advisor domain.Advisor, publisher domain.NotificationPublisher) *OrderService {
	return &OrderService{
		orders:    orders,
		farms:     farms,
		advisor:   advisor,
		publisher: publisher,
		now:       time.Now,
		newID:     newOrderID,
	}
}

// newOrderID returns an id in the ord_xxxxxxxx format.
func newOrderID() string {
	return "ord_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// PlaceOrder validates and persists a new order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (*domain.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no products", domain.ErrInvalidRequest)
	}

	delivery := req.DeliveryOption
	if delivery == "" {
		delivery = domain.DeliveryStandard
	}
	if delivery != domain.DeliveryStandard && delivery != domain.DeliveryPremium {
		return nil, fmt.Errorf("%w: unknown delivery option %q", domain.ErrInvalidRequest, req.DeliveryOption)
	}

	farm, err := s.farms.GetFarm(ctx, req.FarmID)
	if err != nil {
		return nil, err
	}

	var (
		total    float64
		names    []string
		quantity int
	)
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidRequest)
		}
		product, err := s.farms.ProductByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		total += product.Price * float64(item.Quantity)
		names = append(names, product.Name)
		quantity += item.Quantity
	}

	now := s.now()
	order := &domain.Order{
		ID:                s.newID(),
		UserID:            userID,
		FarmID:            farm.ID,
		Items:             req.Items,
		Total:             total,
		DeliveryOption:    delivery,
		Status:            domain.OrderPlaced,
		OrderDate:         now,
		EstimatedDelivery: now.AddDate(0, 0, deliveryDays(delivery)),
	}
	order.FarmerNotification = s.notificationText(ctx, farm.Name, strings.Join(names, ", "), quantity, total)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishOrderNotification(ctx, farm.ID, order.ID, order.FarmerNotification); err != nil {
		log.Printf("[orders] publishing notification for %s failed: %v", order.ID, err)
	}

	return order, nil
}

// GetOrder returns an order visible to the caller: its purchaser or the
// farmer whose farm it was placed against.
func (s *OrderService) GetOrder(ctx context.Context, id, callerID string) (*domain.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: order id is required", domain.ErrInvalidRequest)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Farms are keyed by their owning farmer, so the farm id doubles as the
	// farmer's id.
	if order.UserID != callerID && order.FarmID != callerID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// FarmOrders returns the orders placed against the caller's farm.
func (s *OrderService) FarmOrders(ctx context.Context, farmerID string) ([]domain.Order, error) {
	if farmerID == "" {
		return nil, fmt.Errorf("%w: farmer id is required", domain.ErrInvalidRequest)
	}
	return s.orders.ListByFarm(ctx, farmerID)
}

// notificationText asks the advisor for the farmer notification, degrading
// to a plain generated message when the advisor is unavailable.
func (s *OrderService) notificationText(ctx context.Context, farmName, productNames string, quantity int, total float64) string {
	message, err := s.advisor.OrderNotification(ctx, domain.OrderSummary{
		FarmName:    farmName,
		ProductName: productNames,
		Quantity:    quantity,
		Total:       total,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrAdvisorUnavailable) {
			log.Printf("[orders] notification generation failed: %v", err)
		}
		return fmt.Sprintf("New order for %s: %dx %s, $%.2f total.", farmName, quantity, productNames, total)
	}
	return message
}

func deliveryDays(option domain.DeliveryOption) int {
	if option == domain.DeliveryPremium {
		return premiumDeliveryDays
	}
	return standardDeliveryDays
}
