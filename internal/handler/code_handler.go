package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/interviewai-go-api/internal/dto"
	"github.com/noah-isme/interviewai-go-api/internal/utils"
	"github.com/noah-isme/interviewai-go-api/pkg/coderun"
)

// CodeHandler runs standalone code snippets for practice outside of an
// interview session.
type CodeHandler struct {
	runner    coderun.Runner
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCodeHandler constructs a code execution handler.
func NewCodeHandler(runner coderun.Runner, validator *validator.Validate, logger zerolog.Logger) *CodeHandler {
	return &CodeHandler{
		runner:    runner,
		validator: validator,
		logger:    logger.With().Str("component", "code_handler").Logger(),
	}
}

// Register wires code execution routes.
func (h *CodeHandler) Register(router fiber.Router) {
	router.Post("/run", h.run)
}

func (h *CodeHandler) run(c *fiber.Ctx) error {
	var payload dto.CodeRunRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "language and code are required")
	}

	if h.runner == nil {
		return utils.SendError(c, fiber.StatusServiceUnavailable, "code execution unavailable")
	}

	result, err := h.runner.Run(c.Context(), coderun.RunRequest{
		Language: payload.Language,
		Source:   payload.Code,
		Stdin:    payload.Stdin,
	})
	if err != nil {
		if errors.Is(err, coderun.ErrUnsupportedLanguage) {
			return utils.SendError(c, fiber.StatusBadRequest, "unsupported language")
		}
		h.logger.Error().Err(err).Str("language", payload.Language).Msg("code execution failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "code execution failed")
	}

	return utils.SendSuccess(c, "code executed", dto.CodeRunResponse{
		Success: result.Succeeded(),
		Output:  result.Output(),
	})
}
