package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agenthub/internal/domain"
)

// Demo account created by the seeder
const (
	DemoEmail    = "gabriel@gmail.com"
	DemoName     = "Gabriel"
	DemoPassword = "12345678"
)

// SeedResult summarises what a seed run wrote
type SeedResult struct {
	User       *domain.User
	UserExists bool
	Agents     []*domain.Agent
	Strategies int
	Trades     int
}

// SeedService populates an empty database with a demo account
type SeedService struct {
	userRepo     domain.UserRepository
	agentRepo    domain.AgentSeedRepository
	strategyRepo domain.StrategyRepository
	tradeRepo    domain.TradeRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewSeedService creates a new SeedService
func NewSeedService(
	userRepo domain.UserRepository,
	agentRepo domain.AgentSeedRepository,
	strategyRepo domain.StrategyRepository,
	tradeRepo domain.TradeRepository,
	logger *zap.Logger,
) *SeedService {
	return &SeedService{
		userRepo:     userRepo,
		agentRepo:    agentRepo,
		strategyRepo: strategyRepo,
		tradeRepo:    tradeRepo,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Seed creates the demo administrator if missing. Demo agents, strategies
// and trades are only written when that user owns no agents yet.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	user, existed, err := s.ensureUser(ctx)
	if err != nil {
		return nil, err
	}
	result := &SeedResult{User: user, UserExists: existed}

	existing, err := s.agentRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing agents: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("demo agents already present, skipping", zap.Int("agents", len(existing)))
		return result, nil
	}

	trading, err := s.createAgent(ctx, user.ID, "Trading Agent AI", domain.AgentTypeTrading,
		"AI trading agent with optional swarm mode",
		map[string]any{"exchange": "solana", "useSwarmMode": false, "longOnly": true, "usdSize": 25})
	if err != nil {
		return nil, err
	}
	strategy, err := s.createAgent(ctx, user.ID, "Strategy Agent", domain.AgentTypeStrategy,
		"Runs custom algorithmic strategies",
		map[string]any{"enableStrategies": true, "strategies": []string{"ExampleStrategy", "MyStrategy"}})
	if err != nil {
		return nil, err
	}
	risk, err := s.createAgent(ctx, user.ID, "Risk Management", domain.AgentTypeRisk,
		"Monitors risk and manages the portfolio",
		map[string]any{"maxLossUsd": 25, "maxGainUsd": 25, "minimumBalanceUsd": 50})
	if err != nil {
		return nil, err
	}
	result.Agents = []*domain.Agent{trading, strategy, risk}

	for i, name := range []string{"ExampleStrategy", "MyStrategy"} {
		err := s.strategyRepo.Create(ctx, &domain.Strategy{
			ID:        uuid.New(),
			Name:      name,
			AgentID:   strategy.ID,
			CreatedAt: s.now().Add(time.Duration(i) * time.Millisecond),
		})
		if err != nil {
			return nil, err
		}
		result.Strategies++
	}

	count, err := s.tradeRepo.CreateMany(ctx, demoTrades(user.ID, trading.ID, strategy.ID, s.now()))
	if err != nil {
		return nil, err
	}
	result.Trades = count

	s.logger.Info("seeding completed",
		zap.String("email", user.Email),
		zap.Int("agents", len(result.Agents)),
		zap.Int("strategies", result.Strategies),
		zap.Int("trades", result.Trades),
	)
	return result, nil
}

func (s *SeedService) ensureUser(ctx context.Context) (*domain.User, bool, error) {
	user, err := s.userRepo.GetByEmail(ctx, DemoEmail)
	if err == nil {
		return user, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up demo user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), 10)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash demo password: %w", err)
	}

	now := s.now()
	user = &domain.User{
		ID:           uuid.New(),
		Email:        DemoEmail,
		Name:         DemoName,
		PasswordHash: string(hashed),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}

	s.logger.Info("demo user created", zap.String("email", user.Email))
	return user, false, nil
}

func (s *SeedService) createAgent(ctx context.Context, userID uuid.UUID, name string, agentType domain.AgentType, description string, config map[string]any) (*domain.Agent, error) {
	raw, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s config: %w", name, err)
	}

	now := s.now()
	agent := &domain.Agent{
		ID:          uuid.New(),
		Name:        name,
		Type:        agentType,
		Status:      domain.AgentStatusActive,
		Description: &description,
		Config:      domain.AgentConfig(raw),
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.agentRepo.Save(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func demoTrades(userID, tradingID, strategyID uuid.UUID, now time.Time) []*domain.Trade {
	f := func(v float64) *float64 { return &v }

	return []*domain.Trade{
		{
			ID: uuid.New(), Symbol: "BTC", Side: domain.TradeSideLong, Type: domain.OrderTypeMarket,
			Quantity: 0.001, Price: 68500.00, EntryPrice: 68500.00,
			ExitPrice: f(69200.00), PnL: f(0.70), PnLPercent: f(1.02),
			Status: domain.TradeStatusClosed, Exchange: "HYPERLIQUID",
			UserID: userID, AgentID: tradingID, CreatedAt: now,
		},
		{
			ID: uuid.New(), Symbol: "ETH", Side: domain.TradeSideLong, Type: domain.OrderTypeMarket,
			Quantity: 0.025, Price: 2450.00, EntryPrice: 2450.00,
			Status: domain.TradeStatusOpen, Exchange: "HYPERLIQUID",
			UserID: userID, AgentID: tradingID, CreatedAt: now,
		},
		{
			ID: uuid.New(), Symbol: "SOL", Side: domain.TradeSideLong, Type: domain.OrderTypeMarket,
			Quantity: 0.5, Price: 150.00, EntryPrice: 150.00,
			ExitPrice: f(155.00), PnL: f(2.50), PnLPercent: f(3.33),
			Status: domain.TradeStatusClosed, Exchange: "SOLANA",
			UserID: userID, AgentID: strategyID, CreatedAt: now,
		},
	}
}
