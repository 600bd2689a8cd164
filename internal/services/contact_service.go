package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

// RateLimiter is the slice of the redis client the contact form needs.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type SubmitTicketInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactService interface {
	SubmitTicket(ctx context.Context, clientIP string, input SubmitTicketInput) (*models.ContactTicket, error)
	GetAllTickets(ctx context.Context) ([]models.ContactTicket, error)
	ResolveTicket(ctx context.Context, id uint) error
}

type contactService struct {
	contactRepo   repository.ContactRepository
	limiter       RateLimiter
	notifications NotificationService
	limit         int
	window        time.Duration
}

func NewContactService(contactRepo repository.ContactRepository, limiter RateLimiter, notifications NotificationService, limit int, window time.Duration) ContactService {
	return &contactService{
		contactRepo:   contactRepo,
		limiter:       limiter,
		notifications: notifications,
		limit:         limit,
		window:        window,
	}
}

func (s *contactService) SubmitTicket(ctx context.Context, clientIP string, input SubmitTicketInput) (*models.ContactTicket, error) {
	allowed, err := s.limiter.Allow(ctx, "contact:"+clientIP, s.limit, s.window)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	if input.Name == "" {
		return nil, newValidationError("name", "field is required")
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, newValidationError("email", "valid email is required")
	}
	if input.Subject == "" {
		return nil, newValidationError("subject", "field is required")
	}
	if input.Message == "" {
		return nil, newValidationError("message", "field is required")
	}

	ticket := &models.ContactTicket{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Status:  string(models.TicketOpen),
	}
	if err := s.contactRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to persist ticket: %w", err)
	}

	s.notifications.SendContactAcknowledgment(ticket.Email, ticket.Name, ticket.Subject)
	return ticket, nil
}

func (s *contactService) GetAllTickets(ctx context.Context) ([]models.ContactTicket, error) {
	return s.contactRepo.GetAll(ctx)
}

func (s *contactService) ResolveTicket(ctx context.Context, id uint) error {
	ticket, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketNotFound
		}
		return err
	}
	if ticket.Status != string(models.TicketOpen) {
		return ErrInvalidTransition
	}
	return s.contactRepo.UpdateStatus(ctx, id, string(models.TicketResolved))
}
