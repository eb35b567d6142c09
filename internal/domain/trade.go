package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trade is a market transaction executed by an agent
type Trade struct {
	ID         uuid.UUID `json:"id"`
	Symbol     string    `json:"symbol"`
	Side       string    `json:"side"`
	Type       string    `json:"type"`
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	EntryPrice float64   `json:"entryPrice"`
	ExitPrice  *float64  `json:"exitPrice"`
	PnL        *float64  `json:"pnl"`
	PnLPercent *float64  `json:"pnlPercent"`
	Status     string    `json:"status"`
	Exchange   string    `json:"exchange"`
	UserID     uuid.UUID `json:"userId"`
	AgentID    uuid.UUID `json:"agentId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TradeSide constants
const (
	TradeSideLong  = "LONG"
	TradeSideShort = "SHORT"
)

// TradeStatus constants
const (
	TradeStatusOpen   = "OPEN"
	TradeStatusClosed = "CLOSED"
)

// OrderType constants
const (
	OrderTypeMarket = "MARKET"
	OrderTypeLimit  = "LIMIT"
)
