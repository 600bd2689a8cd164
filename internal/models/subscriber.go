package models

import (
	"time"

	"gorm.io/gorm"
)

type Subscriber struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Email             string         `json:"email" gorm:"not null;index"`
	Paid              bool           `json:"paid" gorm:"default:false"`
	Plan              string         `json:"plan" gorm:"not null"`
	Date              time.Time      `json:"date"`
	ValidTill         time.Time      `json:"valid_till"`
	ReferenceID       string         `json:"reference_id" gorm:"unique;not null"` // checkout receipt
	RazorpayOrderID   string         `json:"razorpay_order_id" gorm:"index"`
	RazorpayPaymentID string         `json:"razorpay_payment_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
