package models

import "time"

// Order status values. The column is an open string so upstream systems
// can introduce statuses without a migration; these are the ones the bot
// itself reads or writes.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// Order is a customer order as the bot sees it. Orders are written by the
// surrounding commerce system; the bot only ever flips Status to cancelled.
type Order struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	OrderID      string `gorm:"size:32;uniqueIndex;not null"` // public id, e.g. "O101"
	UserID       string `gorm:"size:128;index;not null"`
	Status       string `gorm:"size:32;not null;default:pending"`
	DeliveryDate *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderSummary is the id+status projection returned when listing a user's
// orders.
type OrderSummary struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
