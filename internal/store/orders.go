package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/zulandar/orderdesk/internal/models"
)

// OrderStore reads and mutates customer orders. The only mutation Orderdesk
// performs is the status write used by cancellation.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates an OrderStore.
func NewOrderStore(db *gorm.DB) (*OrderStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: order store: db is required")
	}
	return &OrderStore{db: db}, nil
}

// FindByUser returns the (order_id, status) projection of every order owned
// by userID, oldest first. Delivery dates and ownership are not leaked into
// order listings.
func (s *OrderStore) FindByUser(userID string) ([]models.OrderSummary, error) {
	var summaries []models.OrderSummary
	err := s.db.Model(&models.Order{}).
		Select("order_id", "status").
		Where("user_id = ?", userID).
		Order("id").
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("store: find orders for %s: %w", userID, err)
	}
	return summaries, nil
}

// FindByID fetches a single order by its customer-facing id. Returns
// ErrOrderNotFound on a miss.
func (s *OrderStore) FindByID(orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("order_id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find order %s: %w", orderID, err)
	}
	return &order, nil
}

// SetStatus writes the order's status unconditionally. A missing order id
// is a no-op, not an error — cancellation of an unknown order succeeds
// silently by design of the conversation flow.
func (s *OrderStore) SetStatus(orderID, status string) error {
	err := s.db.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("store: set order %s status: %w", orderID, err)
	}
	return nil
}
