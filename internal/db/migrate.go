package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zulandar/orderdesk/internal/models"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Session{},
		&models.Order{},
		&models.Agent{},
	}
}

// AutoMigrate creates or updates all Orderdesk tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// Seed upserts a small set of demo orders and support agents so a fresh
// install has something to chat about. Existing rows keep their status —
// re-seeding never un-cancels an order or frees a busy agent.
func Seed(db *gorm.DB) error {
	in3days := time.Now().AddDate(0, 0, 3)
	in7days := time.Now().AddDate(0, 0, 7)

	orders := []models.Order{
		{OrderID: "O101", UserID: "u1", Status: models.OrderStatusShipped, DeliveryDate: &in3days},
		{OrderID: "O102", UserID: "u1", Status: models.OrderStatusPending, DeliveryDate: &in7days},
		{OrderID: "O201", UserID: "u2", Status: models.OrderStatusPending},
	}
	for _, o := range orders {
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoNothing: true,
		}).Create(&o)
		if result.Error != nil {
			return fmt.Errorf("db: seed order %s: %w", o.OrderID, result.Error)
		}
	}

	agents := []models.Agent{
		{AgentID: "A1", Name: "Maya", Phone: "+1-555-0101", Status: models.AgentStatusAvailable},
		{AgentID: "A2", Name: "Ravi", Phone: "+1-555-0102", Status: models.AgentStatusAvailable},
	}
	for _, a := range agents {
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "agent_id"}},
			DoNothing: true,
		}).Create(&a)
		if result.Error != nil {
			return fmt.Errorf("db: seed agent %s: %w", a.AgentID, result.Error)
		}
	}

	return nil
}
