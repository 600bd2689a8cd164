package repository

import (
	"context"
	"storefront/internal/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, ticket *models.ContactTicket) error
	GetByID(ctx context.Context, id uint) (*models.ContactTicket, error)
	GetAll(ctx context.Context) ([]models.ContactTicket, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, ticket *models.ContactTicket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id uint) (*models.ContactTicket, error) {
	var ticket models.ContactTicket
	err := r.db.WithContext(ctx).First(&ticket, id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *contactRepository) GetAll(ctx context.Context) ([]models.ContactTicket, error) {
	var tickets []models.ContactTicket
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.ContactTicket{}).
		Where("id = ?", id).
		Update("status", status).Error
}
