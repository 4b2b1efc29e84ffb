package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mancing-booking-backend/internal/domain"
	"mancing-booking-backend/internal/logger"
	"mancing-booking-backend/internal/repository"
	"mancing-booking-backend/internal/utils"

	"github.com/google/uuid"
)

// createRetries bounds order-number regeneration after a uniqueness conflict.
const createRetries = 3

type bookingService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	placeRepo   repository.PlaceRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewBookingService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	placeRepo repository.PlaceRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		placeRepo:   placeRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

// CreateBooking turns a cart into a durable order. The order header, its line
// items and the pending payment intent are written in one repository
// transaction; on any failure nothing persists. The total is recomputed here
// from the live catalog, never taken from the client.
func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*BookingDetail, error) {
	renter, err := s.userRepo.GetByID(ctx, in.RenterID)
	if err != nil {
		return nil, err
	}
	place, err := s.placeRepo.GetByID(ctx, in.PlaceID)
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParsePaymentMethod(string(in.Method)); err != nil {
		return nil, err
	}
	if in.StartDate == "" {
		return nil, fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", in.StartDate); err != nil {
		return nil, fmt.Errorf("%w: start date must be yyyy-mm-dd", domain.ErrValidation)
	}

	quote, err := utils.ComputeBookingCost(place, in.Duration, in.Headcount, in.Items)
	if err != nil {
		return nil, err
	}

	number := utils.GenerateOrderNumber(time.Now(), renter.ID, place.ID)
	var order *domain.Order
	var items []domain.OrderLineItem
	var payment *domain.PaymentIntent
	for attempt := 0; ; attempt++ {
		order = &domain.Order{
			OrderNumber: number,
			RenterID:    renter.ID,
			PlaceID:     place.ID,
			StartDate:   in.StartDate,
			Duration:    in.Duration,
			Headcount:   in.Headcount,
			TotalCost:   quote.TotalCost,
			Status:      domain.OrderStatusAwaitingPayment,
		}
		items = make([]domain.OrderLineItem, len(quote.LineItems))
		copy(items, quote.LineItems)
		payment = &domain.PaymentIntent{
			Code:   "PAY-" + uuid.NewString(),
			Method: in.Method,
			Amount: quote.TotalCost,
			Status: domain.PaymentStatusPending,
		}

		err = s.orderRepo.CreateBooking(ctx, order, items, payment)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrConflict) && attempt < createRetries {
			number = utils.DisambiguateOrderNumber(number)
			continue
		}
		return nil, err
	}

	logger.Info("booking created",
		"order_id", order.ID, "order_number", order.OrderNumber,
		"renter_id", renter.ID, "place_id", place.ID, "total_cost", order.TotalCost)

	// Best-effort notifications; the booking stands regardless.
	if err := s.emailSvc.SendBookingCreatedNotification(ctx, renter.Email, renter.Name, place.Name, order.OrderNumber, order.TotalCost); err != nil {
		logger.Warn("booking created email failed", "order_id", order.ID, "error", err)
	}
	note := &domain.Notification{
		UserID:  renter.ID,
		Title:   "Booking Created",
		Message: fmt.Sprintf("Your booking %s for %s is awaiting payment", order.OrderNumber, place.Name),
		Attributes: map[string]string{
			"type":     "BOOKING_CREATED",
			"order_id": fmt.Sprintf("%d", order.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("booking created notification failed", "order_id", order.ID, "error", err)
	}

	return &BookingDetail{Order: order, LineItems: items, Payment: payment}, nil
}

func (s *bookingService) GetBooking(ctx context.Context, requesterID, orderID int64) (*BookingDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	place, err := s.placeRepo.GetByID(ctx, order.PlaceID)
	if err != nil {
		return nil, err
	}
	if order.RenterID != requesterID && place.OwnerID != requesterID {
		return nil, fmt.Errorf("%w: order %d does not belong to user %d", domain.ErrForbidden, orderID, requesterID)
	}
	items, err := s.orderRepo.GetLineItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &BookingDetail{Order: order, LineItems: items, Payment: payment}, nil
}

// CancelBooking guards renter-initiated cancellation: only the order's own
// renter, and only while the order is still awaiting payment. The transition
// itself is a conditional update, so a cancellation racing a payment success
// loses cleanly with a conflict instead of overwriting the paid status.
func (s *bookingService) CancelBooking(ctx context.Context, requesterID, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.RenterID != requesterID {
		return nil, fmt.Errorf("%w: order %d does not belong to user %d", domain.ErrForbidden, orderID, requesterID)
	}
	if order.Status != domain.OrderStatusAwaitingPayment {
		return nil, domain.ErrInvalidState
	}
	if err := domain.ValidateTransition(order.Status, domain.OrderStatusCancelled); err != nil {
		return nil, err
	}

	err = s.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusAwaitingPayment, domain.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatusCancelled

	logger.Info("booking cancelled", "order_id", orderID, "renter_id", requesterID)
	return order, nil
}

// CompleteBooking is the mitra-side completion of a paid order.
func (s *bookingService) CompleteBooking(ctx context.Context, mitraID, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	place, err := s.placeRepo.GetByID(ctx, order.PlaceID)
	if err != nil {
		return nil, err
	}
	if place.OwnerID != mitraID {
		return nil, fmt.Errorf("%w: place %d is not managed by user %d", domain.ErrForbidden, place.ID, mitraID)
	}
	if err := domain.ValidateTransition(order.Status, domain.OrderStatusCompleted); err != nil {
		return nil, err
	}

	err = s.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusPaid, domain.OrderStatusCompleted)
	if err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatusCompleted

	logger.Info("booking completed", "order_id", orderID, "mitra_id", mitraID)
	return order, nil
}

func (s *bookingService) ListBookings(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	if status != "" {
		if _, err := domain.ParseOrderStatus(status); err != nil {
			return nil, 0, err
		}
	}
	return s.orderRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListPlaceBookings(ctx context.Context, mitraID int64, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	if status != "" {
		if _, err := domain.ParseOrderStatus(status); err != nil {
			return nil, 0, err
		}
	}
	return s.orderRepo.ListByPlaceOwner(ctx, mitraID, status, page, pageSize)
}
