package repository

import (
	"context"

	"mancing-booking-backend/internal/domain"
)

// OrderRepository persists bookings. CreateBooking writes the order, its line
// items and the payment intent as one transaction; UpdateStatus is a guarded
// compare-and-swap so concurrent transitions resolve to exactly one winner.
type OrderRepository interface {
	CreateBooking(ctx context.Context, order *domain.Order, items []domain.OrderLineItem, payment *domain.PaymentIntent) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetLineItems(ctx context.Context, orderID int64) ([]domain.OrderLineItem, error)
	// UpdateStatus returns domain.ErrConflict when the order is no longer in
	// the expected status, and domain.ErrNotFound when the row is missing.
	UpdateStatus(ctx context.Context, orderID int64, expected, next domain.OrderStatus) error
	ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListByPlaceOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListAwaitingPaymentSince(ctx context.Context, cutoff string) ([]domain.Order, error)
}

type PaymentRepository interface {
	GetByOrderID(ctx context.Context, orderID int64) (*domain.PaymentIntent, error)
	// UpdateStatus is the same guarded compare-and-swap used for orders.
	UpdateStatus(ctx context.Context, orderID int64, expected, next domain.PaymentStatus) error
}

// PlaceRepository is the read-only boundary to the listing catalog. GetByID
// loads the place together with its rental catalog.
type PlaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Place, error)
}

// UserRepository is the read-only boundary to the identity collaborator.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}
