package domain

import (
	"context"

	"github.com/google/uuid"
)

// AgentRepository defines the interface for agent data operations
type AgentRepository interface {
	// ListByUser returns the user's agents newest first, each with its most
	// recent strategies and trade count
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*AgentSummary, error)

	// Create persists a new INACTIVE agent for the user
	Create(ctx context.Context, userID uuid.UUID, input NewAgent) (*Agent, error)
}

// AgentSeedRepository is the agent store as seen by the seeder. Save writes
// status and timestamps exactly as given, so it stays off AgentRepository.
type AgentSeedRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*AgentSummary, error)

	// Save persists a fully populated agent as given
	Save(ctx context.Context, agent *Agent) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TradeRepository defines the interface for trade data operations
type TradeRepository interface {
	// CreateMany inserts trades in a single batch
	CreateMany(ctx context.Context, trades []*Trade) (int, error)
}

// StrategyRepository defines the interface for strategy data operations
type StrategyRepository interface {
	// Create attaches a new strategy to an agent
	Create(ctx context.Context, strategy *Strategy) error
}
