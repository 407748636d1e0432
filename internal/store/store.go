// Package store provides the persistence adapters the dispatcher talks to:
// per-user conversation sessions, customer orders, and support agents.
package store

import "errors"

var (
	// ErrOrderNotFound is returned when an order lookup by id misses.
	ErrOrderNotFound = errors.New("store: order not found")
	// ErrNoAgentAvailable is returned when every agent is busy.
	ErrNoAgentAvailable = errors.New("store: no agent available")
)
