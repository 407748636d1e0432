package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/zulandar/orderdesk/internal/models"
)

// SessionStore persists per-user conversation state. There is exactly one
// session row per user id; rows are created on first contact and never
// deleted. Updates are last-write-wins — no optimistic locking.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore creates a SessionStore.
func NewSessionStore(db *gorm.DB) (*SessionStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: session store: db is required")
	}
	return &SessionStore{db: db}, nil
}

// GetOrCreate fetches the session for userID, inserting a fresh MAIN_MENU
// session on first contact. It never fails for a missing user.
func (s *SessionStore) GetOrCreate(userID string) (*models.Session, error) {
	var session models.Session
	err := s.db.Where("user_id = ?", userID).First(&session).Error
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("store: get session for %s: %w", userID, err)
	}

	session = models.Session{
		UserID: userID,
		State:  models.StateMainMenu,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("store: create session for %s: %w", userID, err)
	}
	return &session, nil
}

// SessionPatch is a partial session update. A nil field means "leave
// unchanged"; clearing SelectedOrder is only possible through the explicit
// ClearSelectedOrder flag, so "unset" and "set to nothing" never conflate.
type SessionPatch struct {
	State              *models.SessionState
	SelectedOrder      *string
	ClearSelectedOrder bool
}

// isEmpty reports whether the patch would change nothing.
func (p SessionPatch) isEmpty() bool {
	return p.State == nil && p.SelectedOrder == nil && !p.ClearSelectedOrder
}

// Update applies a partial update to the user's session, creating the row
// if it does not exist yet (unconditional upsert). Only fields present in
// the patch are written.
func (s *SessionStore) Update(userID string, patch SessionPatch) error {
	if patch.isEmpty() {
		return nil
	}

	updates := map[string]interface{}{}
	if patch.State != nil {
		updates["state"] = *patch.State
	}
	if patch.ClearSelectedOrder {
		updates["selected_order"] = nil
	} else if patch.SelectedOrder != nil {
		updates["selected_order"] = *patch.SelectedOrder
	}

	result := s.db.Model(&models.Session{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("store: update session for %s: %w", userID, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// No row yet — upsert path. Start from defaults and apply the patch.
	session := models.Session{
		UserID: userID,
		State:  models.StateMainMenu,
	}
	if patch.State != nil {
		session.State = *patch.State
	}
	if !patch.ClearSelectedOrder && patch.SelectedOrder != nil {
		session.SelectedOrder = patch.SelectedOrder
	}
	if err := s.db.Create(&session).Error; err != nil {
		return fmt.Errorf("store: upsert session for %s: %w", userID, err)
	}
	return nil
}
