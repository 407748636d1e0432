package models

import "time"

// SessionState is the conversation position a user's session is in. The
// set is closed: any other string found in storage is corrupt data, not a
// state.
type SessionState string

const (
	StateMainMenu      SessionState = "MAIN_MENU"
	StateViewingOrders SessionState = "VIEWING_ORDERS"
	StateOrderSelected SessionState = "ORDER_SELECTED"
)

// Valid reports whether s is one of the known conversation states.
func (s SessionState) Valid() bool {
	switch s {
	case StateMainMenu, StateViewingOrders, StateOrderSelected:
		return true
	}
	return false
}

// Session is one user's conversation state. One row per user id, created
// on first contact and never deleted. SelectedOrder is set exactly while
// the session sits in ORDER_SELECTED.
type Session struct {
	ID            uint         `gorm:"primaryKey;autoIncrement"`
	UserID        string       `gorm:"size:128;uniqueIndex;not null"`
	State         SessionState `gorm:"size:32;not null;default:MAIN_MENU"`
	SelectedOrder *string      `gorm:"size:32"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
