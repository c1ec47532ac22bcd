package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/procura-ai/procura/pkg/protocol"
	"github.com/procura-ai/procura/pkg/registry"
	"github.com/procura-ai/procura/pkg/services"
)

type APIHandlers struct {
	assistant *services.Assistant
	validator *validator.Validate
	registry  *registry.Registry
}

func NewAPIHandlers(
	assistant *services.Assistant,
	validator *validator.Validate,
	registry *registry.Registry,
) *APIHandlers {
	return &APIHandlers{
		assistant: assistant,
		validator: validator,
		registry:  registry,
	}
}

// HandleTurn runs one chat turn for a user.
func (h *APIHandlers) HandleTurn(c fiber.Ctx) error {
	userID := c.Params("userID")
	if userID == "" {
		return badRequest(c, "User ID is required")
	}

	var req TurnRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "Invalid request: "+err.Error())
	}

	if req.Input != nil {
		if err := h.registry.ValidateInput(req.Action, req.Input); err != nil {
			return badRequest(c, err.Error())
		}
	}

	result, err := h.assistant.HandleTurn(c.Context(), userID, req.Action, protocol.Input{Text: req.Text()})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(TurnResponse{
		Outcome: result.Outcome,
		Message: result.Message,
	})
}

// GetState returns the persisted workflow state for a user.
func (h *APIHandlers) GetState(c fiber.Ctx) error {
	userID := c.Params("userID")
	if userID == "" {
		return badRequest(c, "User ID is required")
	}

	state, err := h.assistant.State(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(state)
}

// GetStepContext returns guidance for the user's current step. New users
// get the initial-step context.
func (h *APIHandlers) GetStepContext(c fiber.Ctx) error {
	userID := c.Params("userID")
	if userID == "" {
		return badRequest(c, "User ID is required")
	}

	stepContext, err := h.assistant.StepContext(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(stepContext)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.assistant.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Procura API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "Procura API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
