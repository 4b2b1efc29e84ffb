package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingCreatedNotification(ctx context.Context, renterEmail, renterName, placeName, orderNumber string, total int64) error {
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s for %s was created.\nTotal due: Rp%d.\n\nPlease complete the payment to confirm your spot.\n\nTight lines,\nThe Mancing Team", renterName, orderNumber, placeName, total)
	return s.send(renterEmail, renterName, fmt.Sprintf("Booking %s awaiting payment", orderNumber), body)
}

func (s *emailService) SendPaymentSuccessNotification(ctx context.Context, renterEmail, renterName, orderNumber string, amount int64) error {
	body := fmt.Sprintf("Hello %s,\n\nWe received your payment of Rp%d for booking %s. Your spot is confirmed.\n\nTight lines,\nThe Mancing Team", renterName, amount, orderNumber)
	return s.send(renterEmail, renterName, fmt.Sprintf("Payment received for %s", orderNumber), body)
}

func (s *emailService) SendNewPaidBookingNotification(ctx context.Context, mitraEmail, placeName, orderNumber string, amount int64) error {
	body := fmt.Sprintf("Hello,\n\nBooking %s for %s has been paid (Rp%d). Expect the guest on the booked date.\n\nThe Mancing Team", orderNumber, placeName, amount)
	return s.send(mitraEmail, "", fmt.Sprintf("New paid booking %s", orderNumber), body)
}

func (s *emailService) SendPaymentReminderNotification(ctx context.Context, renterEmail, renterName, orderNumber string, amount int64) error {
	body := fmt.Sprintf("Hello %s,\n\nBooking %s is still awaiting payment of Rp%d. Unpaid bookings can be cancelled at any time.\n\nThe Mancing Team", renterName, orderNumber, amount)
	return s.send(renterEmail, renterName, fmt.Sprintf("Payment reminder for %s", orderNumber), body)
}
