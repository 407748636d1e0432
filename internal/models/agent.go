package models

import "time"

// Agent status values.
const (
	AgentStatusAvailable = "available"
	AgentStatusBusy      = "busy"
)

// Agent is a human support agent users can be handed to. Assignment marks
// the agent busy and stamps BusyAt; the release sweep uses that stamp to
// free agents nothing ever handed back.
type Agent struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	AgentID   string     `gorm:"size:32;uniqueIndex;not null"`
	Name      string     `gorm:"size:128;not null"`
	Phone     string     `gorm:"size:32"`
	Status    string     `gorm:"size:16;not null;default:available;index"`
	BusyAt    *time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
