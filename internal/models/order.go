package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	OrderNumber       string          `json:"order_number" gorm:"unique;not null"`
	UserID            string          `json:"user_id" gorm:"index;not null"`
	Items             []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress   ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod     PaymentMethod   `json:"payment_method" gorm:"type:varchar(10);not null"`
	PaymentStatus     PaymentStatus   `json:"payment_status" gorm:"type:varchar(10);default:'Pending'"`
	ItemsPrice        decimal.Decimal `json:"items_price" gorm:"type:numeric(12,2);not null"`
	ShippingPrice     decimal.Decimal `json:"shipping_price" gorm:"type:numeric(12,2);not null"`
	TotalPrice        decimal.Decimal `json:"total_price" gorm:"type:numeric(12,2);not null"`
	IsPaid            bool            `json:"is_paid" gorm:"default:false"`
	PaidAt            *time.Time      `json:"paid_at"`
	IsDelivered       bool            `json:"is_delivered" gorm:"default:false"`
	DeliveredAt       *time.Time      `json:"delivered_at"`
	Status            OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	RazorpayOrderID   string          `json:"razorpay_order_id,omitempty" gorm:"index"`
	RazorpayPaymentID string          `json:"razorpay_payment_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"index;not null"`
	ProductID string          `json:"product_id" gorm:"not null"`
	Name      string          `json:"name" gorm:"not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"` // unit price snapshot at order time
	Image     string          `json:"image"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ShippingAddress struct {
	FullName string `json:"full_name" gorm:"not null"`
	Address  string `json:"address" gorm:"not null"`
	City     string `json:"city" gorm:"not null"`
	State    string `json:"state" gorm:"not null"`
	ZipCode  string `json:"zip_code" gorm:"not null"`
	Phone    string `json:"phone" gorm:"not null"`
	Email    string `json:"email" gorm:"not null"`
}

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

type OrderStatus string

// remember to add new statuses to the transition table below
const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// orderTransitions maps each status to the statuses it may move to.
// Cancellation is allowed until the order ships; delivered and cancelled
// are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

var ErrInvalidStatus = errors.New("invalid order status")

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderTransitions[status]; !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
