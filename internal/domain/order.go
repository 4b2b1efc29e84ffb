package domain

import "fmt"

type OrderStatus string

const (
	OrderStatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderStatusPaid            OrderStatus = "PAID"
	OrderStatusCompleted       OrderStatus = "COMPLETED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
)

// orderTransitions is the single source of truth for the order lifecycle.
// CANCELLED and COMPLETED are terminal. Cancellation is only reachable from
// the initial status; a paid order can no longer be cancelled here.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusAwaitingPayment: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:            {OrderStatusCompleted},
	OrderStatusCompleted:       {},
	OrderStatusCancelled:       {},
}

// CanTransition reports whether moving from -> to is a legal lifecycle step.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrInvalidTransition for illegal moves so callers
// reject them before touching storage.
func ValidateTransition(from, to OrderStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// ParseOrderStatus maps a wire string onto the closed status set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusAwaitingPayment, OrderStatusPaid, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, s)
}

type Order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"order_number"`
	RenterID    int64       `json:"renter_id"`
	PlaceID     int64       `json:"place_id"`
	StartDate   string      `json:"start_date"`
	// Duration is expressed in the place's price unit: hours for per-hour
	// places, booking-days for per-day places.
	Duration  int32 `json:"duration"`
	Headcount int32 `json:"headcount"`
	// Price snapshot — computed server-side at booking time. All amounts are
	// integer rupiah; the value never drifts if the catalog changes later.
	TotalCost int64       `json:"total_cost"`
	Status    OrderStatus `json:"status"`
	CreatedOn string      `json:"created_on"`
	UpdatedOn string      `json:"updated_on"`
}

// OrderLineItem is one rented equipment row, owned by its order. UnitPrice is
// captured from the place catalog at booking time and immutable afterwards.
type OrderLineItem struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"order_id"`
	ItemID    int64  `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// Subtotal is quantity times the captured unit price.
func (li OrderLineItem) Subtotal() int64 {
	return int64(li.Quantity) * li.UnitPrice
}
