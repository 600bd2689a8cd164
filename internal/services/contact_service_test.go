package services

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContactService(limit int) (ContactService, *fakeContactRepo, *fakeLimiter, *fakeNotifier) {
	repo := newFakeContactRepo()
	limiter := newFakeLimiter()
	notifier := &fakeNotifier{}
	svc := NewContactService(repo, limiter, notifier, limit, time.Hour)
	return svc, repo, limiter, notifier
}

func validTicketInput() SubmitTicketInput {
	return SubmitTicketInput{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Subject: "Order arrived damaged",
		Message: gofakeit.Sentence(12),
	}
}

func TestSubmitTicket(t *testing.T) {
	svc, repo, _, notifier := newTestContactService(5)

	input := validTicketInput()
	ticket, err := svc.SubmitTicket(context.Background(), "203.0.113.9", input)
	require.NoError(t, err)
	require.NotZero(t, ticket.ID)
	assert.Equal(t, string(models.TicketOpen), ticket.Status)

	stored, err := repo.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, input.Email, stored.Email)
	assert.Equal(t, input.Message, stored.Message)

	require.Len(t, notifier.acks, 1)
	assert.Equal(t, input.Email, notifier.acks[0])
}

func TestSubmitTicket_RateLimited(t *testing.T) {
	svc, repo, _, _ := newTestContactService(2)
	ctx := context.Background()

	_, err := svc.SubmitTicket(ctx, "203.0.113.9", validTicketInput())
	require.NoError(t, err)
	_, err = svc.SubmitTicket(ctx, "203.0.113.9", validTicketInput())
	require.NoError(t, err)

	_, err = svc.SubmitTicket(ctx, "203.0.113.9", validTicketInput())
	require.ErrorIs(t, err, ErrRateLimited)

	tickets, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, 2, "the limited submission must not be persisted")

	// A different client is unaffected.
	_, err = svc.SubmitTicket(ctx, "198.51.100.7", validTicketInput())
	require.NoError(t, err)
}

func TestSubmitTicket_Validation(t *testing.T) {
	svc, repo, _, notifier := newTestContactService(50)

	tests := []struct {
		name   string
		mutate func(*SubmitTicketInput)
	}{
		{"missing name", func(in *SubmitTicketInput) { in.Name = "" }},
		{"missing email", func(in *SubmitTicketInput) { in.Email = "" }},
		{"bad email", func(in *SubmitTicketInput) { in.Email = "nope" }},
		{"missing subject", func(in *SubmitTicketInput) { in.Subject = "" }},
		{"missing message", func(in *SubmitTicketInput) { in.Message = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validTicketInput()
			tt.mutate(&input)

			_, err := svc.SubmitTicket(context.Background(), "203.0.113.9", input)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}

	tickets, _ := repo.GetAll(context.Background())
	assert.Empty(t, tickets)
	assert.Empty(t, notifier.acks)
}

func TestResolveTicket(t *testing.T) {
	svc, repo, _, _ := newTestContactService(5)
	ctx := context.Background()

	ticket, err := svc.SubmitTicket(ctx, "203.0.113.9", validTicketInput())
	require.NoError(t, err)

	require.NoError(t, svc.ResolveTicket(ctx, ticket.ID))

	stored, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.TicketResolved), stored.Status)

	// Already resolved.
	require.ErrorIs(t, svc.ResolveTicket(ctx, ticket.ID), ErrInvalidTransition)
}

func TestResolveTicket_NotFound(t *testing.T) {
	svc, _, _, _ := newTestContactService(5)
	require.ErrorIs(t, svc.ResolveTicket(context.Background(), 99), ErrTicketNotFound)
}
