package migrations

import (
	"log"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// RunMigrations creates or updates the schema. Tables are never dropped:
// orders are an audit trail and survive redeployments.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.Subscriber{},
		&models.ContactTicket{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migrations completed successfully!")
	return nil
}
