package services

import (
	"fmt"
	"log"
	"time"
)

// EmailSender is satisfied by pkg/mailer.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// NotificationService is a best-effort sink: every send logs failures and
// swallows them, so an email problem never fails the operation that
// triggered it.
type NotificationService interface {
	SendSubscriptionReceipt(email, plan string, validTill time.Time)
	SendContactAcknowledgment(email, name, subject string)
}

type notificationService struct {
	sender EmailSender
}

func NewNotificationService(sender EmailSender) NotificationService {
	return &notificationService{sender: sender}
}

func (s *notificationService) SendSubscriptionReceipt(email, plan string, validTill time.Time) {
	body := fmt.Sprintf(
		"<p>Thank you for subscribing!</p><p>Your <b>%s</b> plan is active until %s.</p>",
		plan, validTill.Format("2 January 2006"),
	)
	if err := s.sender.Send(email, "Subscription confirmed", body); err != nil {
		log.Printf("Failed to send subscription receipt to %s: %v", email, err)
	}
}

func (s *notificationService) SendContactAcknowledgment(email, name, subject string) {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your message about \"%s\" and will get back to you soon.</p>",
		name, subject,
	)
	if err := s.sender.Send(email, "We received your message", body); err != nil {
		log.Printf("Failed to send contact acknowledgment to %s: %v", email, err)
	}
}
