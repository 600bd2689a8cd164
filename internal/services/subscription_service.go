package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Plan describes a purchasable subscription tier.
type Plan struct {
	Name     string
	Price    decimal.Decimal
	Validity time.Duration
}

// DefaultPlans mirrors the tiers offered by the storefront UI.
var DefaultPlans = map[string]Plan{
	"monthly": {Name: "monthly", Price: decimal.NewFromInt(199), Validity: 30 * 24 * time.Hour},
	"yearly":  {Name: "yearly", Price: decimal.NewFromInt(1999), Validity: 365 * 24 * time.Hour},
}

type CreateSubscriptionResult struct {
	RazorpayOrderID string          `json:"razorpay_order_id"`
	Amount          decimal.Decimal `json:"amount"`
}

type SubscriptionService interface {
	CreateSubscription(ctx context.Context, email, plan string) (*CreateSubscriptionResult, error)
	ReconcileSubscription(ctx context.Context, callback PaymentCallback) error
	GetAllSubscribers(ctx context.Context) ([]models.Subscriber, error)
	DeleteSubscriber(ctx context.Context, id uint) error
}

type subscriptionService struct {
	subscriberRepo repository.SubscriberRepository
	gateway        PaymentGateway
	notifications  NotificationService
	plans          map[string]Plan
}

func NewSubscriptionService(subscriberRepo repository.SubscriberRepository, gateway PaymentGateway, notifications NotificationService, plans map[string]Plan) SubscriptionService {
	if plans == nil {
		plans = DefaultPlans
	}
	return &subscriptionService{
		subscriberRepo: subscriberRepo,
		gateway:        gateway,
		notifications:  notifications,
		plans:          plans,
	}
}

// CreateSubscription opens a gateway order for the plan price and records a
// pending subscriber tied to it. The email and plan are fixed at this point;
// the payment callback only activates what was recorded here.
func (s *subscriptionService) CreateSubscription(ctx context.Context, email, plan string) (*CreateSubscriptionResult, error) {
	if email == "" || !strings.Contains(email, "@") {
		return nil, newValidationError("email", "valid email is required")
	}
	tier, ok := s.plans[plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	amountPaise := tier.Price.Mul(decimal.NewFromInt(100)).IntPart()
	receipt := "SUB-" + uuid.NewString()
	gatewayOrder, err := s.gateway.CreateOrder(ctx, amountPaise, orderCurrency, receipt, map[string]string{
		"email": email,
		"plan":  tier.Name,
	})
	if err != nil {
		return nil, &GatewayError{Err: err}
	}

	subscriber := &models.Subscriber{
		Email:           email,
		Paid:            false,
		Plan:            tier.Name,
		ReferenceID:     receipt,
		RazorpayOrderID: gatewayOrder.ID,
	}
	if err := s.subscriberRepo.Create(ctx, subscriber); err != nil {
		return nil, fmt.Errorf("failed to persist subscriber: %w", err)
	}

	return &CreateSubscriptionResult{
		RazorpayOrderID: gatewayOrder.ID,
		Amount:          tier.Price,
	}, nil
}

// ReconcileSubscription activates the pending subscriber recorded at checkout.
// The plan and email come from that row, never from the callback. Replays of
// an already-applied callback succeed without side effects.
func (s *subscriptionService) ReconcileSubscription(ctx context.Context, callback PaymentCallback) error {
	if callback.RazorpayOrderID == "" || callback.RazorpayPaymentID == "" {
		return newValidationError("callback", "missing gateway order or payment id")
	}

	if !s.gateway.VerifyPaymentSignature(callback.RazorpayOrderID, callback.RazorpayPaymentID, callback.RazorpaySignature) {
		log.Printf("Rejected subscription callback with bad signature for gateway order %s", callback.RazorpayOrderID)
		return ErrSignatureInvalid
	}

	subscriber, err := s.subscriberRepo.GetByRazorpayOrderID(ctx, callback.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return fmt.Errorf("failed to look up subscriber: %w", err)
	}

	tier, ok := s.plans[subscriber.Plan]
	if !ok {
		return fmt.Errorf("subscriber %d references unknown plan %q", subscriber.ID, subscriber.Plan)
	}

	now := time.Now()
	updated, err := s.subscriberRepo.MarkPaid(ctx, callback.RazorpayOrderID, callback.RazorpayPaymentID, now, now.Add(tier.Validity))
	if err != nil {
		return fmt.Errorf("failed to update subscriber payment state: %w", err)
	}
	if !updated {
		// Row exists but was already paid: a replayed callback.
		return nil
	}

	s.notifications.SendSubscriptionReceipt(subscriber.Email, tier.Name, now.Add(tier.Validity))
	return nil
}

func (s *subscriptionService) GetAllSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	return s.subscriberRepo.GetAll(ctx)
}

func (s *subscriptionService) DeleteSubscriber(ctx context.Context, id uint) error {
	return s.subscriberRepo.Delete(ctx, id)
}
