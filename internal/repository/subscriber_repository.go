package repository

import (
	"context"
	"time"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *models.Subscriber) error
	GetByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Subscriber, error)
	MarkPaid(ctx context.Context, razorpayOrderID, razorpayPaymentID string, date, validTill time.Time) (bool, error)
	GetAll(ctx context.Context) ([]models.Subscriber, error)
	Delete(ctx context.Context, id uint) error
}

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, subscriber *models.Subscriber) error {
	return r.db.WithContext(ctx).Create(subscriber).Error
}

func (r *subscriberRepository) GetByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	err := r.db.WithContext(ctx).Where("razorpay_order_id = ?", razorpayOrderID).First(&subscriber).Error
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// MarkPaid activates a pending subscription in a single conditional update.
// The paid guard makes replayed gateway callbacks a no-op. Returns false when
// no pending row matched.
func (r *subscriberRepository) MarkPaid(ctx context.Context, razorpayOrderID, razorpayPaymentID string, date, validTill time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Subscriber{}).
		Where("razorpay_order_id = ? AND paid = ?", razorpayOrderID, false).
		Updates(map[string]interface{}{
			"razorpay_payment_id": razorpayPaymentID,
			"paid":                true,
			"date":                date,
			"valid_till":          validTill,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *subscriberRepository) GetAll(ctx context.Context) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&subscribers).Error
	return subscribers, err
}

func (r *subscriberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Subscriber{}, id).Error
}
