package domain

import "time"

// Order status lifecycle: placed -> accepted -> shipped -> delivered.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderAccepted  OrderStatus = "accepted"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

// DeliveryOption selects the fulfilment tier for an order.
type DeliveryOption string

const (
	DeliveryStandard DeliveryOption = "standard"
	DeliveryPremium  DeliveryOption = "premium"
)

// OrderItem is one product line on an order.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order is a customer's order against a single farm.
type Order struct {
	ID                string         `json:"id"`
	UserID            string         `json:"userId"`
	FarmID            string         `json:"farmId"`
	Items             []OrderItem    `json:"products"`
	Total             float64        `json:"total"`
	DeliveryOption    DeliveryOption `json:"deliveryOption"`
	Status            OrderStatus    `json:"status"`
	OrderDate         time.Time      `json:"orderDate"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
	// FarmerNotification is the generated message sent to the farm when the
	// order was placed.
	FarmerNotification string `json:"farmerNotification,omitempty"`
}
