package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/pkg/razorpay"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderCurrency = "INR"

// PaymentGateway is the slice of the gateway client the order workflow needs.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*razorpay.Order, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// ShippingPolicy computes the shipping charge for a cart subtotal: a flat
// rate, waived once the subtotal reaches the free-shipping threshold.
type ShippingPolicy struct {
	FlatRate      decimal.Decimal
	FreeThreshold decimal.Decimal
}

func (p ShippingPolicy) Price(itemsPrice decimal.Decimal) decimal.Decimal {
	if itemsPrice.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.FlatRate
}

type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

type CreateOrderInput struct {
	Items           []CartItem             `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   models.PaymentMethod   `json:"payment_method"`
}

type CreateOrderResult struct {
	OrderID         uint            `json:"order_id"`
	OrderNumber     string          `json:"order_number"`
	RazorpayOrderID string          `json:"razorpay_order_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
}

type PaymentCallback struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, input CreateOrderInput) (*CreateOrderResult, error)
	ReconcilePayment(ctx context.Context, callback PaymentCallback) error
	GetOrderByID(ctx context.Context, id uint) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	gateway   PaymentGateway
	shipping  ShippingPolicy
	maxAmount decimal.Decimal
}

func NewOrderService(orderRepo repository.OrderRepository, gateway PaymentGateway, shipping ShippingPolicy, maxAmount decimal.Decimal) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		gateway:   gateway,
		shipping:  shipping,
		maxAmount: maxAmount,
	}
}

func generateOrderNumber() string {
	return "ORD-" + uuid.NewString()
}

func (s *orderService) CreateOrder(ctx context.Context, userID string, input CreateOrderInput) (*CreateOrderResult, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	itemsPrice := decimal.Zero
	for _, item := range input.Items {
		itemsPrice = itemsPrice.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	shippingPrice := s.shipping.Price(itemsPrice)
	totalPrice := itemsPrice.Add(shippingPrice)

	order := &models.Order{
		OrderNumber:     generateOrderNumber(),
		UserID:          userID,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		ItemsPrice:      itemsPrice,
		ShippingPrice:   shippingPrice,
		TotalPrice:      totalPrice,
		Status:          models.OrderPending,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Image:     item.Image,
		})
	}

	if input.PaymentMethod == models.PaymentMethodOnline {
		// Gateway-imposed transaction ceiling, enforced here rather than
		// trusting the client.
		if totalPrice.GreaterThan(s.maxAmount) {
			return nil, ErrAmountAboveCeiling
		}

		amountPaise := totalPrice.Mul(decimal.NewFromInt(100)).IntPart()
		gatewayOrder, err := s.gateway.CreateOrder(ctx, amountPaise, orderCurrency, order.OrderNumber, map[string]string{
			"user_id": userID,
		})
		if err != nil {
			// Nothing has been persisted at this point.
			return nil, &GatewayError{Err: err}
		}
		order.RazorpayOrderID = gatewayOrder.ID
	} else {
		// COD orders skip the gateway and are confirmed immediately;
		// payment stays pending until collected on delivery.
		order.Status = models.OrderConfirmed
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	return &CreateOrderResult{
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		RazorpayOrderID: order.RazorpayOrderID,
		Amount:          totalPrice,
	}, nil
}

// ReconcilePayment matches a gateway success callback to the order that
// initiated it. The signature check is the only integrity guard against
// forged callbacks, so nothing is mutated until it passes. Replays of an
// already-applied callback succeed without side effects, and a callback that
// lands after the order was cancelled leaves it cancelled.
func (s *orderService) ReconcilePayment(ctx context.Context, callback PaymentCallback) error {
	if callback.RazorpayOrderID == "" || callback.RazorpayPaymentID == "" {
		return newValidationError("callback", "missing gateway order or payment id")
	}

	if !s.gateway.VerifyPaymentSignature(callback.RazorpayOrderID, callback.RazorpayPaymentID, callback.RazorpaySignature) {
		log.Printf("Rejected payment callback with bad signature for gateway order %s", callback.RazorpayOrderID)
		return ErrSignatureInvalid
	}

	updated, err := s.orderRepo.MarkPaid(ctx, callback.RazorpayOrderID, callback.RazorpayPaymentID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update order payment state: %w", err)
	}
	if updated {
		return nil
	}

	// No unpaid row matched: either the order is unknown or the callback is
	// a replay of one already applied.
	order, err := s.orderRepo.GetByRazorpayOrderID(ctx, callback.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to look up order: %w", err)
	}
	if order.IsPaid {
		return nil
	}
	if order.Status == models.OrderCancelled {
		log.Printf("Rejected payment callback for cancelled order %s", callback.RazorpayOrderID)
		return ErrOrderCancelled
	}
	return fmt.Errorf("order %s could not be marked paid", callback.RazorpayOrderID)
}

func (s *orderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(ctx, userID)
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	order, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}

	if !models.CanTransition(order.Status, status) {
		return ErrInvalidTransition
	}

	fields := map[string]interface{}{"status": status}
	if status == models.OrderDelivered {
		fields["is_delivered"] = true
		fields["delivered_at"] = time.Now()
	}

	return s.orderRepo.UpdateStatus(ctx, id, fields)
}

func validateOrderInput(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyCart
	}
	for i, item := range input.Items {
		if item.Quantity < 1 {
			return newValidationError(fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
		}
		if item.Price.IsNegative() {
			return newValidationError(fmt.Sprintf("items[%d].price", i), "price must not be negative")
		}
		// Prices finer than a paisa would be silently truncated when the
		// total is converted for the gateway.
		if !item.Price.Equal(item.Price.Round(2)) {
			return newValidationError(fmt.Sprintf("items[%d].price", i), "price must have at most two decimal places")
		}
		if item.ProductID == "" {
			return newValidationError(fmt.Sprintf("items[%d].product_id", i), "product reference is required")
		}
	}

	addr := input.ShippingAddress
	addressFields := map[string]string{
		"full_name": addr.FullName,
		"address":   addr.Address,
		"city":      addr.City,
		"state":     addr.State,
		"zip_code":  addr.ZipCode,
		"phone":     addr.Phone,
		"email":     addr.Email,
	}
	for field, value := range addressFields {
		if value == "" {
			return newValidationError("shipping_address."+field, "field is required")
		}
	}

	if input.PaymentMethod != models.PaymentMethodCOD && input.PaymentMethod != models.PaymentMethodOnline {
		return newValidationError("payment_method", "must be COD or online")
	}
	return nil
}
