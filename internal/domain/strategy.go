package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Strategy is a named algorithm attached to an agent
type Strategy struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
	AgentID     uuid.UUID       `json:"agentId"`
	CreatedAt   time.Time       `json:"createdAt"`
}
