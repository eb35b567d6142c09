package dto

import "agenthub/internal/domain"

// CreateAgentRequest is the body of POST /api/agents. A status field in the
// body is not decoded: new agents always start INACTIVE.
type CreateAgentRequest struct {
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Description *string            `json:"description"`
	Config      domain.AgentConfig `json:"config"`
}

// AgentListResponse is the body of GET /api/agents
type AgentListResponse struct {
	Agents []*domain.AgentSummary `json:"agents"`
}

// AgentResponse wraps a single agent
type AgentResponse struct {
	Agent *domain.Agent `json:"agent"`
}
