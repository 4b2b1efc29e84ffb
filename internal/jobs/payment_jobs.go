package jobs

import (
	"context"
	"fmt"
	"time"

	"mancing-booking-backend/internal/domain"
	"mancing-booking-backend/internal/logger"
)

// SendPaymentReminders emails renters whose bookings still sit awaiting
// payment past the configured age. Notification only: the job never touches
// order status, so it cannot race the payment callback or a cancellation.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()

		age := time.Duration(jr.config.Scheduler.ReminderAgeHours) * time.Hour
		cutoff := time.Now().UTC().Add(-age).Format(time.RFC3339)

		orders, err := jr.store.OrderRepository.ListAwaitingPaymentSince(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list awaiting-payment orders", "error", err)
			return
		}

		reminded := 0
		for _, order := range orders {
			renter, err := jr.store.UserRepository.GetByID(ctx, order.RenterID)
			if err != nil {
				logger.Error("Failed to load renter for reminder", "order_id", order.ID, "error", err)
				continue
			}
			if err := jr.emailSvc.SendPaymentReminderNotification(ctx, renter.Email, renter.Name, order.OrderNumber, order.TotalCost); err != nil {
				logger.Error("Failed to send payment reminder", "order_id", order.ID, "error", err)
				continue
			}
			note := &domain.Notification{
				UserID:  renter.ID,
				Title:   "Payment Reminder",
				Message: fmt.Sprintf("Booking %s is still awaiting payment", order.OrderNumber),
				Attributes: map[string]string{
					"type":     "PAYMENT_REMINDER",
					"order_id": fmt.Sprintf("%d", order.ID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to store reminder notification", "order_id", order.ID, "error", err)
			}
			reminded++
		}
		logger.Info("Payment reminders sent", "count", reminded)
	})
}
