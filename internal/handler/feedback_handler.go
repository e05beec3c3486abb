package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/interviewai-go-api/internal/dto"
	"github.com/noah-isme/interviewai-go-api/internal/service"
	"github.com/noah-isme/interviewai-go-api/internal/utils"
)

// FeedbackHandler handles product feedback submissions.
type FeedbackHandler struct {
	service   service.FeedbackService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewFeedbackHandler constructs a feedback handler.
func NewFeedbackHandler(service service.FeedbackService, validator *validator.Validate, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register wires feedback routes.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *FeedbackHandler) submit(c *fiber.Ctx) error {
	var payload dto.FeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid feedback payload")
	}

	feedback, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to record feedback")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to record feedback")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "feedback recorded", dto.NewFeedbackResponse(feedback))
}
