package models

import "time"

// OrderStatus is the fixed order lifecycle reported by the server. The
// server owns all transitions; the client only renders the current value.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the five known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Label returns the human-readable form shown in order screens. Unknown
// values fall back to the raw string so new server states still render.
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Pending"
	case OrderProcessing:
		return "Processing"
	case OrderShipped:
		return "Shipped"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Badge returns a compact marker used in list rendering.
func (s OrderStatus) Badge() string {
	switch s {
	case OrderDelivered:
		return "[✓]"
	case OrderCancelled:
		return "[✗]"
	default:
		return "[•]"
	}
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a placed order as returned by /api/orders/:id.
type Order struct {
	ID        string      `json:"id"`
	Status    OrderStatus `json:"status"`
	Items     []OrderItem `json:"items,omitempty"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TrackingStep is one entry of an order's tracking history.
type TrackingStep struct {
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Tracking is the tracking history of an order.
type Tracking struct {
	OrderID string         `json:"order_id"`
	Steps   []TrackingStep `json:"steps"`
}
