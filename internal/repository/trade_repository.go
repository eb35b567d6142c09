package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agenthub/internal/domain"
)

// TradeRepositoryImpl implements the TradeRepository interface
type TradeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) domain.TradeRepository {
	return &TradeRepositoryImpl{db: db}
}

// CreateMany inserts the trades with a single COPY
func (r *TradeRepositoryImpl) CreateMany(ctx context.Context, trades []*domain.Trade) (int, error) {
	if len(trades) == 0 {
		return 0, nil
	}

	columns := []string{
		"id", "symbol", "side", "type", "quantity", "price", "entry_price",
		"exit_price", "pnl", "pnl_percent", "status", "exchange",
		"user_id", "agent_id", "created_at",
	}

	copied, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"trades"},
		columns,
		pgx.CopyFromSlice(len(trades), func(i int) ([]any, error) {
			t := trades[i]
			return []any{
				t.ID, t.Symbol, t.Side, t.Type, t.Quantity, t.Price, t.EntryPrice,
				t.ExitPrice, t.PnL, t.PnLPercent, t.Status, t.Exchange,
				t.UserID, t.AgentID, t.CreatedAt,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create trades: %w", err)
	}

	return int(copied), nil
}
