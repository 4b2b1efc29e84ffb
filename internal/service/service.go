package service

import (
	"context"

	"mancing-booking-backend/internal/domain"
)

// BookingService is the reservation engine: atomic booking creation, the
// guarded lifecycle transitions, and booking reads for both sides of the
// marketplace.
type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*BookingDetail, error)
	GetBooking(ctx context.Context, requesterID, orderID int64) (*BookingDetail, error)
	// CancelBooking is the renter-initiated cancellation, only legal while
	// the order is still awaiting payment.
	CancelBooking(ctx context.Context, requesterID, orderID int64) (*domain.Order, error)
	// CompleteBooking is the mitra action moving a paid order to completed.
	CompleteBooking(ctx context.Context, mitraID, orderID int64) (*domain.Order, error)
	ListBookings(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListPlaceBookings(ctx context.Context, mitraID int64, status string, page, pageSize int32) ([]domain.Order, int32, error)
}

// PaymentService links gateway outcomes to payment intents and drives the
// order forward on success.
type PaymentService interface {
	RecordPaymentOutcome(ctx context.Context, orderID int64, outcome domain.PaymentOutcome) (*domain.PaymentIntent, error)
	GetPaymentByOrder(ctx context.Context, requesterID, orderID int64) (*domain.PaymentIntent, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}

type EmailService interface {
	SendBookingCreatedNotification(ctx context.Context, renterEmail, renterName, placeName, orderNumber string, total int64) error
	SendPaymentSuccessNotification(ctx context.Context, renterEmail, renterName, orderNumber string, amount int64) error
	SendNewPaidBookingNotification(ctx context.Context, mitraEmail, placeName, orderNumber string, amount int64) error
	SendPaymentReminderNotification(ctx context.Context, renterEmail, renterName, orderNumber string, amount int64) error
}

// CreateBookingInput is the assembled cart. Any client-side total is absent on
// purpose: the server recomputes and its figure is authoritative.
type CreateBookingInput struct {
	RenterID  int64
	PlaceID   int64
	StartDate string
	Duration  int32
	Headcount int32
	Items     []domain.ItemSelection
	Method    domain.PaymentMethod
}

// BookingDetail bundles the order with its owned rows for transport.
type BookingDetail struct {
	Order     *domain.Order          `json:"order"`
	LineItems []domain.OrderLineItem `json:"line_items"`
	Payment   *domain.PaymentIntent  `json:"payment"`
}
