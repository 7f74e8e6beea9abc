package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/pricing"
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

func (s *emailService) SendBookingRequestNotification(ctx context.Context, sellerEmail, buyerName, vehicleName, startDate, endDate string) error {
	subject := fmt.Sprintf("New Booking Request: %s", vehicleName)
	body := fmt.Sprintf("%s booked your %s from %s to %s.\n\nLog in to review the booking.",
		buyerName, vehicleName, startDate, endDate)
	return s.send(ctx, sellerEmail, subject, body)
}

func (s *emailService) SendBookingConfirmationNotification(ctx context.Context, buyerEmail, vehicleName, startDate, endDate string, totalCents int64) error {
	subject := fmt.Sprintf("Booking Confirmed: %s", vehicleName)
	body := fmt.Sprintf("Your booking of %s from %s to %s is confirmed.\n\nTotal charged: $%.2f",
		vehicleName, startDate, endDate, pricing.FromCents(totalCents))
	return s.send(ctx, buyerEmail, subject, body)
}

func (s *emailService) SendBookingCancellationNotification(ctx context.Context, email, vehicleName, reason string) error {
	subject := fmt.Sprintf("Booking Cancelled: %s", vehicleName)
	body := fmt.Sprintf("The booking of %s has been cancelled.", vehicleName)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(ctx, email, subject, body)
}

func (s *emailService) send(ctx context.Context, to, subject, plainText string) error {
	if s.apiKey == "" {
		// Email is optional in development setups.
		logger.InfoContext(ctx, "email sending skipped, no api key configured", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

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
