package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"equiphire-backend/internal/logger"
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

func (s *emailService) send(ctx context.Context, toEmail, subject, body string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendBookingRequestNotification(ctx context.Context, vendorEmail, renterName, equipmentName string) error {
	body := fmt.Sprintf("Hello,\n\n%s requested to book your equipment: %s.\n\nPlease review the request in your vendor dashboard.\n\nBest regards,\nThe EquipHire Team", renterName, equipmentName)
	return s.send(ctx, vendorEmail, "New Booking Request", body)
}

func (s *emailService) SendBookingApprovalNotification(ctx context.Context, renterEmail, equipmentName, vendorName string) error {
	body := fmt.Sprintf("Hello,\n\nYour booking for %s was confirmed by %s.\n\nBest regards,\nThe EquipHire Team", equipmentName, vendorName)
	return s.send(ctx, renterEmail, "Booking Confirmed", body)
}

func (s *emailService) SendBookingRejectionNotification(ctx context.Context, renterEmail, equipmentName, vendorName string) error {
	body := fmt.Sprintf("Hello,\n\nYour booking for %s was rejected by %s.\n\nBest regards,\nThe EquipHire Team", equipmentName, vendorName)
	return s.send(ctx, renterEmail, "Booking Rejected", body)
}

func (s *emailService) SendBookingCancellationNotification(ctx context.Context, vendorEmail, renterName, equipmentName, reason string) error {
	body := fmt.Sprintf("Hello,\n\n%s cancelled the booking for %s.", renterName, equipmentName)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe EquipHire Team"
	return s.send(ctx, vendorEmail, "Booking Cancelled", body)
}

func (s *emailService) SendBookingCompletionNotification(ctx context.Context, email, role, equipmentName string, amount float64) error {
	body := fmt.Sprintf("Hello %s,\n\nThe booking for %s is complete. Total amount: ₹%.2f.\n\nBest regards,\nThe EquipHire Team", role, equipmentName, amount)
	return s.send(ctx, email, "Booking Completed", body)
}

func (s *emailService) SendExtensionRequestNotification(ctx context.Context, vendorEmail, renterName, equipmentName string, newDrop time.Time) error {
	body := fmt.Sprintf("Hello,\n\n%s requested to extend the booking for %s until %s.\n\nPlease approve or reject the request in your vendor dashboard.\n\nBest regards,\nThe EquipHire Team",
		renterName, equipmentName, newDrop.Format("02 Jan 2006"))
	return s.send(ctx, vendorEmail, "Extension Requested", body)
}

func (s *emailService) SendExtensionResultNotification(ctx context.Context, renterEmail, equipmentName string, approved bool) error {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	body := fmt.Sprintf("Hello,\n\nYour extension request for %s was %s.\n\nBest regards,\nThe EquipHire Team", equipmentName, outcome)
	return s.send(ctx, renterEmail, "Extension Request Update", body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, renterEmail, equipmentName string, dropDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nA friendly reminder that %s is due for return on %s.\n\nBest regards,\nThe EquipHire Team",
		equipmentName, dropDate.Format("02 Jan 2006"))
	return s.send(ctx, renterEmail, "Return Reminder", body)
}
