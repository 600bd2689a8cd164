package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/pkg/razorpay"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"
)

// fakeOrderRepo is an in-memory stand-in for the gorm-backed repository.
type fakeOrderRepo struct {
	mu     sync.Mutex
	nextID uint
	orders map[uint]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*models.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uint) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetByUserID(_ context.Context, userID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *fakeOrderRepo) GetByRazorpayOrderID(_ context.Context, razorpayOrderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.RazorpayOrderID == razorpayOrderID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) MarkPaid(_ context.Context, razorpayOrderID, razorpayPaymentID string, paidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.RazorpayOrderID == razorpayOrderID && !order.IsPaid && order.Status != models.OrderCancelled {
			order.RazorpayPaymentID = razorpayPaymentID
			order.IsPaid = true
			order.PaidAt = &paidAt
			order.PaymentStatus = models.PaymentPaid
			order.Status = models.OrderConfirmed
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uint, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := fields["status"]; ok {
		order.Status = status.(models.OrderStatus)
	}
	if delivered, ok := fields["is_delivered"]; ok {
		order.IsDelivered = delivered.(bool)
	}
	if deliveredAt, ok := fields["delivered_at"]; ok {
		at := deliveredAt.(time.Time)
		order.DeliveredAt = &at
	}
	return nil
}

func (r *fakeOrderRepo) GetAll(_ context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []models.Order
	for _, order := range r.orders {
		orders = append(orders, *order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// fakeSubscriberRepo is an in-memory stand-in for the subscriber repository.
type fakeSubscriberRepo struct {
	mu          sync.Mutex
	nextID      uint
	subscribers map[uint]*models.Subscriber
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{subscribers: make(map[uint]*models.Subscriber)}
}

func (r *fakeSubscriberRepo) Create(_ context.Context, subscriber *models.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	subscriber.ID = r.nextID
	copied := *subscriber
	r.subscribers[subscriber.ID] = &copied
	return nil
}

func (r *fakeSubscriberRepo) GetByRazorpayOrderID(_ context.Context, razorpayOrderID string) (*models.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, subscriber := range r.subscribers {
		if subscriber.RazorpayOrderID == razorpayOrderID {
			copied := *subscriber
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSubscriberRepo) MarkPaid(_ context.Context, razorpayOrderID, razorpayPaymentID string, date, validTill time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, subscriber := range r.subscribers {
		if subscriber.RazorpayOrderID == razorpayOrderID && !subscriber.Paid {
			subscriber.RazorpayPaymentID = razorpayPaymentID
			subscriber.Paid = true
			subscriber.Date = date
			subscriber.ValidTill = validTill
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubscriberRepo) GetAll(_ context.Context) ([]models.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var subscribers []models.Subscriber
	for _, subscriber := range r.subscribers {
		subscribers = append(subscribers, *subscriber)
	}
	return subscribers, nil
}

func (r *fakeSubscriberRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.subscribers, id)
	return nil
}

// fakeContactRepo is an in-memory stand-in for the contact repository.
type fakeContactRepo struct {
	mu      sync.Mutex
	nextID  uint
	tickets map[uint]*models.ContactTicket
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{tickets: make(map[uint]*models.ContactTicket)}
}

func (r *fakeContactRepo) Create(_ context.Context, ticket *models.ContactTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	ticket.ID = r.nextID
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeContactRepo) GetByID(_ context.Context, id uint) (*models.ContactTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeContactRepo) GetAll(_ context.Context) ([]models.ContactTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tickets []models.ContactTicket
	for _, ticket := range r.tickets {
		tickets = append(tickets, *ticket)
	}
	return tickets, nil
}

func (r *fakeContactRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ticket.Status = status
	return nil
}

// fakeGateway records CreateOrder calls and reuses the real client's HMAC
// verification so tests exercise the production signing formula.
type fakeGateway struct {
	signer      *razorpay.Client
	createCalls int
	lastAmount  int64
	lastReceipt string
	failCreate  bool
	nextOrderID string
}

func newFakeGateway(secret string) *fakeGateway {
	return &fakeGateway{
		signer:      razorpay.NewClient("rzp_test_key", secret),
		nextOrderID: "order_" + gofakeit.LetterN(12),
	}
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string, _ map[string]string) (*razorpay.Order, error) {
	g.createCalls++
	g.lastAmount = amount
	g.lastReceipt = receipt
	if g.failCreate {
		return nil, errors.New("connection reset by peer")
	}
	return &razorpay.Order{
		ID:       g.nextOrderID,
		Entity:   "order",
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return g.signer.VerifyPaymentSignature(orderID, paymentID, signature)
}

// fakeNotifier records notification calls.
type fakeNotifier struct {
	receipts []string
	acks     []string
}

func (n *fakeNotifier) SendSubscriptionReceipt(email, _ string, _ time.Time) {
	n.receipts = append(n.receipts, email)
}

func (n *fakeNotifier) SendContactAcknowledgment(email, _, _ string) {
	n.acks = append(n.acks, email)
}

// fakeLimiter allows a fixed number of calls per key.
type fakeLimiter struct {
	counts map[string]int
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{counts: make(map[string]int)}
}

func (l *fakeLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	l.counts[key]++
	return l.counts[key] <= limit, nil
}

func fakeShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName: gofakeit.Name(),
		Address:  gofakeit.Street(),
		City:     gofakeit.City(),
		State:    gofakeit.State(),
		ZipCode:  gofakeit.Zip(),
		Phone:    gofakeit.Phone(),
		Email:    gofakeit.Email(),
	}
}
