package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agenthub/internal/domain"
)

// StrategyRepositoryImpl implements the StrategyRepository interface
type StrategyRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewStrategyRepository creates a new StrategyRepository
func NewStrategyRepository(db *pgxpool.Pool) domain.StrategyRepository {
	return &StrategyRepositoryImpl{db: db}
}

// Create attaches a new strategy to an agent
func (r *StrategyRepositoryImpl) Create(ctx context.Context, strategy *domain.Strategy) error {
	query := `
		INSERT INTO strategies (id, name, description, parameters, agent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var params any
	if len(strategy.Parameters) > 0 {
		params = []byte(strategy.Parameters)
	}

	_, err := r.db.Exec(ctx, query,
		strategy.ID,
		strategy.Name,
		strategy.Description,
		params,
		strategy.AgentID,
		strategy.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create strategy: %w", err)
	}

	return nil
}

func scanStrategy(row pgx.Row) (*domain.Strategy, error) {
	strategy := &domain.Strategy{}
	var params []byte

	err := row.Scan(
		&strategy.ID,
		&strategy.Name,
		&strategy.Description,
		&params,
		&strategy.AgentID,
		&strategy.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if params != nil {
		strategy.Parameters = json.RawMessage(params)
	}

	return strategy, nil
}
