package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/zulandar/orderdesk/internal/models"
)

// AgentStore hands out support agents. Assignment marks an agent busy;
// the release sweep (see internal/jobs) returns long-busy agents to the
// pool, since the conversation flow itself has no "hang up" signal.
type AgentStore struct {
	db *gorm.DB

	// now is overridable for tests.
	now func() time.Time
}

// NewAgentStore creates an AgentStore.
func NewAgentStore(db *gorm.DB) (*AgentStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: agent store: db is required")
	}
	return &AgentStore{db: db, now: time.Now}, nil
}

// FindAvailable returns an available agent, or ErrNoAgentAvailable when the
// whole pool is busy.
func (s *AgentStore) FindAvailable() (*models.Agent, error) {
	var agent models.Agent
	err := s.db.Where("status = ?", models.AgentStatusAvailable).Order("id").First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoAgentAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("store: find available agent: %w", err)
	}
	return &agent, nil
}

// Assign marks the agent busy unconditionally and stamps BusyAt so the
// release sweep has a basis for its TTL.
func (s *AgentStore) Assign(agentID string) error {
	now := s.now()
	err := s.db.Model(&models.Agent{}).
		Where("agent_id = ?", agentID).
		Updates(map[string]interface{}{
			"status":  models.AgentStatusBusy,
			"busy_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("store: assign agent %s: %w", agentID, err)
	}
	return nil
}

// Release returns the agent to the available pool.
func (s *AgentStore) Release(agentID string) error {
	err := s.db.Model(&models.Agent{}).
		Where("agent_id = ?", agentID).
		Updates(map[string]interface{}{
			"status":  models.AgentStatusAvailable,
			"busy_at": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("store: release agent %s: %w", agentID, err)
	}
	return nil
}

// ReleaseStale releases every agent that has been busy longer than ttl.
// Returns the number of agents released.
func (s *AgentStore) ReleaseStale(ttl time.Duration) (int64, error) {
	cutoff := s.now().Add(-ttl)
	result := s.db.Model(&models.Agent{}).
		Where("status = ? AND busy_at IS NOT NULL AND busy_at < ?", models.AgentStatusBusy, cutoff).
		Updates(map[string]interface{}{
			"status":  models.AgentStatusAvailable,
			"busy_at": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("store: release stale agents: %w", result.Error)
	}
	return result.RowsAffected, nil
}
