package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agenthub/internal/delivery/http/dto"
	"agenthub/internal/domain"
	"agenthub/internal/middleware"
)

// repositoryTimeout bounds every datastore round-trip made by a handler
const repositoryTimeout = 5 * time.Second

// AgentHandler serves the agent resource
type AgentHandler struct {
	agentRepo domain.AgentRepository
	logger    *zap.Logger
}

// NewAgentHandler creates a new AgentHandler
func NewAgentHandler(agentRepo domain.AgentRepository, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{
		agentRepo: agentRepo,
		logger:    logger,
	}
}

// ListAgents returns the caller's agents, newest first
// GET /api/agents
func (h *AgentHandler) ListAgents(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), repositoryTimeout)
	defer cancel()

	agents, err := h.agentRepo.ListByUser(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, h.logger, "error fetching agents", err)
	}

	return JSONResponse(c, dto.AgentListResponse{Agents: agents})
}

// CreateAgent creates an INACTIVE agent owned by the caller
// POST /api/agents
func (h *AgentHandler) CreateAgent(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Unauthorized")
	}

	var req dto.CreateAgentRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Name == "" || req.Type == "" {
		return BadRequestResponse(c, "Name and type are required")
	}

	agentType := domain.AgentType(req.Type)
	if !agentType.Valid() {
		return BadRequestResponse(c, "Invalid agent type")
	}

	if err := req.Config.Validate(); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), repositoryTimeout)
	defer cancel()

	agent, err := h.agentRepo.Create(ctx, userID, domain.NewAgent{
		Name:        req.Name,
		Type:        agentType,
		Description: req.Description,
		Config:      req.Config,
	})
	if err != nil {
		return InternalServerErrorResponse(c, h.logger, "error creating agent", err)
	}

	h.logger.Info("agent created",
		zap.String("agent_id", agent.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("type", string(agent.Type)),
	)

	return CreatedResponse(c, dto.AgentResponse{Agent: agent})
}
