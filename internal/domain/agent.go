package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AgentType tags what an agent automates
type AgentType string

// AgentType constants
const (
	AgentTypeTrading       AgentType = "TRADING"
	AgentTypeStrategy      AgentType = "STRATEGY"
	AgentTypeRisk          AgentType = "RISK"
	AgentTypeCopyBot       AgentType = "COPYBOT"
	AgentTypeSentiment     AgentType = "SENTIMENT"
	AgentTypeWhale         AgentType = "WHALE"
	AgentTypeFunding       AgentType = "FUNDING"
	AgentTypeLiquidation   AgentType = "LIQUIDATION"
	AgentTypeSniper        AgentType = "SNIPER"
	AgentTypeResearch      AgentType = "RESEARCH"
	AgentTypeChartAnalysis AgentType = "CHARTANALYSIS"
	AgentTypePolymarket    AgentType = "POLYMARKET"
	AgentTypeSolana        AgentType = "SOLANA"
)

var agentTypes = map[AgentType]struct{}{
	AgentTypeTrading:       {},
	AgentTypeStrategy:      {},
	AgentTypeRisk:          {},
	AgentTypeCopyBot:       {},
	AgentTypeSentiment:     {},
	AgentTypeWhale:         {},
	AgentTypeFunding:       {},
	AgentTypeLiquidation:   {},
	AgentTypeSniper:        {},
	AgentTypeResearch:      {},
	AgentTypeChartAnalysis: {},
	AgentTypePolymarket:    {},
	AgentTypeSolana:        {},
}

// Valid reports whether t is one of the known agent types
func (t AgentType) Valid() bool {
	_, ok := agentTypes[t]
	return ok
}

// AgentStatus is the activation state of an agent
type AgentStatus string

// AgentStatus constants
const (
	AgentStatusActive   AgentStatus = "ACTIVE"
	AgentStatusInactive AgentStatus = "INACTIVE"
)

// ErrInvalidConfig is returned when an agent config is not well-formed JSON
var ErrInvalidConfig = errors.New("agent config is not valid JSON")

// AgentConfig is the free-form settings document of an agent. Its shape
// depends on the agent type and is stored and returned as given.
type AgentConfig json.RawMessage

// IsZero reports whether the config is absent or JSON null
func (c AgentConfig) IsZero() bool {
	trimmed := bytes.TrimSpace(c)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Validate checks that the document is well-formed JSON
func (c AgentConfig) Validate() error {
	if c.IsZero() {
		return nil
	}
	if !json.Valid(c) {
		return ErrInvalidConfig
	}
	return nil
}

// MarshalJSON emits the stored document, or null when absent
func (c AgentConfig) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return c, nil
}

// UnmarshalJSON keeps a copy of the raw document
func (c *AgentConfig) UnmarshalJSON(data []byte) error {
	if c == nil {
		return errors.New("domain.AgentConfig: UnmarshalJSON on nil pointer")
	}
	*c = append((*c)[0:0], data...)
	return nil
}

// Agent is an automation configuration owned by a single user
type Agent struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Type        AgentType   `json:"type"`
	Status      AgentStatus `json:"status"`
	Description *string     `json:"description"`
	Config      AgentConfig `json:"config"`
	UserID      uuid.UUID   `json:"userId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// AgentCount carries aggregate counts of an agent's children
type AgentCount struct {
	Trades int `json:"trades"`
}

// AgentSummary is an agent as returned by the list operation
type AgentSummary struct {
	Agent
	Strategies []*Strategy `json:"strategies"`
	Count      AgentCount  `json:"_count"`
}

// NewAgent holds the caller-controlled fields of a new agent
type NewAgent struct {
	Name        string
	Type        AgentType
	Description *string
	Config      AgentConfig
}

// RecentStrategiesLimit caps the strategies embedded per agent in list results
const RecentStrategiesLimit = 5
