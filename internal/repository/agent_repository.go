package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agenthub/internal/domain"
)

const agentColumns = `id, name, type, status, description, config, user_id, created_at, updated_at`

// AgentRepositoryImpl implements domain.AgentRepository for handlers and
// domain.AgentSeedRepository for the seeder
type AgentRepositoryImpl struct {
	db querier
}

// querier is the part of *pgxpool.Pool the agent repository needs
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ domain.AgentRepository     = (*AgentRepositoryImpl)(nil)
	_ domain.AgentSeedRepository = (*AgentRepositoryImpl)(nil)
)

// NewAgentRepository creates a new AgentRepositoryImpl
func NewAgentRepository(db *pgxpool.Pool) *AgentRepositoryImpl {
	return &AgentRepositoryImpl{db: db}
}

// ListByUser retrieves the user's agents with recent strategies and trade counts
func (r *AgentRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.AgentSummary, error) {
	query := `
		SELECT ` + agentColumns + `
		FROM agents
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()

	agents := make([]*domain.AgentSummary, 0)
	byID := make(map[uuid.UUID]*domain.AgentSummary)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		summary := &domain.AgentSummary{
			Agent:      *agent,
			Strategies: make([]*domain.Strategy, 0),
		}
		agents = append(agents, summary)
		byID[agent.ID] = summary
		ids = append(ids, agent.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agents: %w", err)
	}

	if len(agents) == 0 {
		return agents, nil
	}

	if err := r.attachRecentStrategies(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.attachTradeCounts(ctx, ids, byID); err != nil {
		return nil, err
	}

	return agents, nil
}

// attachRecentStrategies loads the newest strategies of each agent in one query
func (r *AgentRepositoryImpl) attachRecentStrategies(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.AgentSummary) error {
	query := `
		SELECT id, name, description, parameters, agent_id, created_at
		FROM (
			SELECT s.id, s.name, s.description, s.parameters, s.agent_id, s.created_at,
			       ROW_NUMBER() OVER (PARTITION BY s.agent_id ORDER BY s.created_at DESC, s.id DESC) AS rn
			FROM strategies s
			WHERE s.agent_id = ANY($1)
		) ranked
		WHERE rn <= $2
		ORDER BY agent_id, created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, ids, domain.RecentStrategiesLimit)
	if err != nil {
		return fmt.Errorf("failed to query recent strategies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		strategy, err := scanStrategy(rows)
		if err != nil {
			return fmt.Errorf("failed to scan strategy: %w", err)
		}
		if summary, ok := byID[strategy.AgentID]; ok {
			summary.Strategies = append(summary.Strategies, strategy)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating strategies: %w", err)
	}

	return nil
}

// attachTradeCounts loads trade counts per agent in one query
func (r *AgentRepositoryImpl) attachTradeCounts(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.AgentSummary) error {
	query := `
		SELECT agent_id, COUNT(*)
		FROM trades
		WHERE agent_id = ANY($1)
		GROUP BY agent_id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to count trades: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var agentID uuid.UUID
		var count int
		if err := rows.Scan(&agentID, &count); err != nil {
			return fmt.Errorf("failed to scan trade count: %w", err)
		}
		if summary, ok := byID[agentID]; ok {
			summary.Count.Trades = count
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating trade counts: %w", err)
	}

	return nil
}

// Create persists a new agent. Status is always INACTIVE on creation.
func (r *AgentRepositoryImpl) Create(ctx context.Context, userID uuid.UUID, input domain.NewAgent) (*domain.Agent, error) {
	now := time.Now().UTC()
	agent := &domain.Agent{
		ID:          uuid.New(),
		Name:        input.Name,
		Type:        input.Type,
		Status:      domain.AgentStatusInactive,
		Description: input.Description,
		Config:      input.Config,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.Save(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

// Save inserts the agent and refreshes it with the stored row
func (r *AgentRepositoryImpl) Save(ctx context.Context, agent *domain.Agent) error {
	query := `
		INSERT INTO agents (
			id, name, type, status, description, config, user_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING ` + agentColumns

	row := r.db.QueryRow(ctx, query,
		agent.ID,
		agent.Name,
		string(agent.Type),
		string(agent.Status),
		agent.Description,
		configParam(agent.Config),
		agent.UserID,
		agent.CreatedAt,
		agent.UpdatedAt,
	)

	stored, err := scanAgent(row)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}

	*agent = *stored
	return nil
}

// scanAgent reads one agent row selected with agentColumns
func scanAgent(row pgx.Row) (*domain.Agent, error) {
	agent := &domain.Agent{}
	var agentType, status string
	var config []byte

	err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agentType,
		&status,
		&agent.Description,
		&config,
		&agent.UserID,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	agent.Type = domain.AgentType(agentType)
	agent.Status = domain.AgentStatus(status)
	if config != nil {
		agent.Config = domain.AgentConfig(config)
	}

	return agent, nil
}

// configParam maps an absent config to SQL NULL
func configParam(config domain.AgentConfig) any {
	if config.IsZero() {
		return nil
	}
	return []byte(config)
}
