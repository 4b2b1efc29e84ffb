package service

import (
	"context"
	"fmt"

	"mancing-booking-backend/internal/domain"
	"mancing-booking-backend/internal/logger"
	"mancing-booking-backend/internal/repository"
)

type paymentService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	placeRepo   repository.PlaceRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewPaymentService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	placeRepo repository.PlaceRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) PaymentService {
	return &paymentService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		placeRepo:   placeRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

// RecordPaymentOutcome applies a gateway callback to the payment intent.
//
// Success marks the intent SUCCESS and advances the order to PAID via the
// guarded transition. A success arriving for an order that is no longer
// awaiting payment (e.g. cancelled in the meantime) is surfaced as a conflict,
// never swallowed. Replaying success on an already-successful intent is a
// no-op so gateway retries stay safe.
//
// Failure marks the intent FAILED and leaves the order untouched; cancelling
// remains an explicit renter action.
func (s *paymentService) RecordPaymentOutcome(ctx context.Context, orderID int64, outcome domain.PaymentOutcome) (*domain.PaymentIntent, error) {
	intent, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case domain.PaymentOutcomeSuccess:
		if intent.Status == domain.PaymentStatusSuccess {
			// Idempotent replay of a delivered callback.
			logger.Debug("payment success replayed", "order_id", orderID)
			return intent, nil
		}
		if err := s.paymentRepo.UpdateStatus(ctx, orderID, intent.Status, domain.PaymentStatusSuccess); err != nil {
			return nil, err
		}
		if err := s.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusAwaitingPayment, domain.OrderStatusPaid); err != nil {
			return nil, err
		}
		intent.Status = domain.PaymentStatusSuccess
		logger.Info("payment succeeded", "order_id", orderID, "amount", intent.Amount)
		s.notifyPaymentSuccess(ctx, orderID, intent)
		return intent, nil

	case domain.PaymentOutcomeFailed:
		if intent.Status == domain.PaymentStatusFailed {
			logger.Debug("payment failure replayed", "order_id", orderID)
			return intent, nil
		}
		if err := s.paymentRepo.UpdateStatus(ctx, orderID, domain.PaymentStatusPending, domain.PaymentStatusFailed); err != nil {
			return nil, err
		}
		intent.Status = domain.PaymentStatusFailed
		logger.Info("payment failed", "order_id", orderID)
		return intent, nil

	default:
		return nil, fmt.Errorf("%w: unknown payment outcome %q", domain.ErrValidation, outcome)
	}
}

func (s *paymentService) GetPaymentByOrder(ctx context.Context, requesterID, orderID int64) (*domain.PaymentIntent, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.RenterID != requesterID {
		return nil, fmt.Errorf("%w: order %d does not belong to user %d", domain.ErrForbidden, orderID, requesterID)
	}
	return s.paymentRepo.GetByOrderID(ctx, orderID)
}

// notifyPaymentSuccess is best effort: renter email plus notification rows for
// both sides. Failures are logged, never propagated.
func (s *paymentService) notifyPaymentSuccess(ctx context.Context, orderID int64, intent *domain.PaymentIntent) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Warn("payment notification skipped", "order_id", orderID, "error", err)
		return
	}
	renter, err := s.userRepo.GetByID(ctx, order.RenterID)
	if err == nil {
		if err := s.emailSvc.SendPaymentSuccessNotification(ctx, renter.Email, renter.Name, order.OrderNumber, intent.Amount); err != nil {
			logger.Warn("payment success email failed", "order_id", orderID, "error", err)
		}
		note := &domain.Notification{
			UserID:  renter.ID,
			Title:   "Payment Received",
			Message: fmt.Sprintf("Payment for booking %s was received", order.OrderNumber),
			Attributes: map[string]string{
				"type":     "PAYMENT_SUCCESS",
				"order_id": fmt.Sprintf("%d", order.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("payment success notification failed", "order_id", orderID, "error", err)
		}
	}

	place, err := s.placeRepo.GetByID(ctx, order.PlaceID)
	if err != nil {
		return
	}
	mitra, err := s.userRepo.GetByID(ctx, place.OwnerID)
	if err != nil {
		return
	}
	if err := s.emailSvc.SendNewPaidBookingNotification(ctx, mitra.Email, place.Name, order.OrderNumber, intent.Amount); err != nil {
		logger.Warn("mitra paid booking email failed", "order_id", orderID, "error", err)
	}
	note := &domain.Notification{
		UserID:  mitra.ID,
		Title:   "New Paid Booking",
		Message: fmt.Sprintf("Booking %s for %s has been paid", order.OrderNumber, place.Name),
		Attributes: map[string]string{
			"type":     "BOOKING_PAID",
			"order_id": fmt.Sprintf("%d", order.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("mitra paid booking notification failed", "order_id", orderID, "error", err)
	}
}
