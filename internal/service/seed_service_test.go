package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agenthub/internal/domain"
)

type memUsers struct {
	byEmail map[string]*domain.User
	err     error
}

func (m *memUsers) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type memAgents struct {
	saved []*domain.Agent
}

func (m *memAgents) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.AgentSummary, error) {
	var out []*domain.AgentSummary
	for _, a := range m.saved {
		if a.UserID == userID {
			out = append(out, &domain.AgentSummary{Agent: *a})
		}
	}
	return out, nil
}

func (m *memAgents) Save(ctx context.Context, agent *domain.Agent) error {
	m.saved = append(m.saved, agent)
	return nil
}

type memStrategies struct {
	saved []*domain.Strategy
}

func (m *memStrategies) Create(ctx context.Context, strategy *domain.Strategy) error {
	m.saved = append(m.saved, strategy)
	return nil
}

type memTrades struct {
	saved []*domain.Trade
}

func (m *memTrades) CreateMany(ctx context.Context, trades []*domain.Trade) (int, error) {
	m.saved = append(m.saved, trades...)
	return len(trades), nil
}

func newSeeder() (*SeedService, *memUsers, *memAgents, *memStrategies, *memTrades) {
	users := &memUsers{byEmail: map[string]*domain.User{}}
	agents := &memAgents{}
	strategies := &memStrategies{}
	trades := &memTrades{}
	s := NewSeedService(users, agents, strategies, trades, zap.NewNop())
	s.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }
	return s, users, agents, strategies, trades
}

func TestSeed_EmptyDatabase(t *testing.T) {
	s, users, agents, strategies, trades := newSeeder()

	result, err := s.Seed(context.Background())
	require.NoError(t, err)

	user := users.byEmail[DemoEmail]
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.False(t, result.UserExists)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(DemoPassword)))

	require.Len(t, agents.saved, 3)
	for _, a := range agents.saved {
		assert.Equal(t, user.ID, a.UserID)
		assert.Equal(t, domain.AgentStatusActive, a.Status)
		assert.NoError(t, a.Config.Validate())
	}
	assert.JSONEq(t, `{"maxLossUsd":25,"maxGainUsd":25,"minimumBalanceUsd":50}`, string(agents.saved[2].Config))

	require.Len(t, strategies.saved, 2)
	assert.Equal(t, agents.saved[1].ID, strategies.saved[0].AgentID)

	require.Len(t, trades.saved, 3)
	assert.Equal(t, 3, result.Trades)
	assert.Equal(t, agents.saved[0].ID, trades.saved[0].AgentID)
	assert.Equal(t, agents.saved[1].ID, trades.saved[2].AgentID)
}

func TestSeed_Idempotent(t *testing.T) {
	s, users, agents, _, trades := newSeeder()

	_, err := s.Seed(context.Background())
	require.NoError(t, err)

	result, err := s.Seed(context.Background())
	require.NoError(t, err)
	assert.True(t, result.UserExists)
	assert.Len(t, users.byEmail, 1)
	assert.Len(t, agents.saved, 3)
	assert.Len(t, trades.saved, 3)
}

func TestSeed_UserLookupFailure(t *testing.T) {
	s, users, _, _, _ := newSeeder()
	users.err = errors.New("db down")

	_, err := s.Seed(context.Background())
	assert.ErrorContains(t, err, "db down")
}
