package http

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"agenthub/internal/domain"
)

// fakeAgentRepository keeps agents in memory and counts calls
type fakeAgentRepository struct {
	mu         sync.Mutex
	agents     []*domain.Agent
	strategies map[uuid.UUID][]*domain.Strategy
	trades     map[uuid.UUID]int
	err        error
	calls      int
	clock      time.Time
}

func newFakeAgentRepository() *fakeAgentRepository {
	return &fakeAgentRepository{
		strategies: make(map[uuid.UUID][]*domain.Strategy),
		trades:     make(map[uuid.UUID]int),
		clock:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeAgentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.AgentSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	out := make([]*domain.AgentSummary, 0)
	for _, a := range f.agents {
		if a.UserID != userID {
			continue
		}
		strategies := append([]*domain.Strategy(nil), f.strategies[a.ID]...)
		sort.Slice(strategies, func(i, j int) bool {
			return strategies[i].CreatedAt.After(strategies[j].CreatedAt)
		})
		if len(strategies) > domain.RecentStrategiesLimit {
			strategies = strategies[:domain.RecentStrategiesLimit]
		}
		if strategies == nil {
			strategies = make([]*domain.Strategy, 0)
		}
		out = append(out, &domain.AgentSummary{
			Agent:      *a,
			Strategies: strategies,
			Count:      domain.AgentCount{Trades: f.trades[a.ID]},
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeAgentRepository) Create(ctx context.Context, userID uuid.UUID, input domain.NewAgent) (*domain.Agent, error) {
	f.mu.Lock()
	f.clock = f.clock.Add(time.Second)
	now := f.clock
	f.mu.Unlock()

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

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	stored := *agent
	f.agents = append(f.agents, &stored)
	return agent, nil
}

func (f *fakeAgentRepository) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeUserRepository keeps users in memory keyed by email
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
	err   error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepository) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	stored := *user
	f.users[user.Email] = &stored
	return nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}
