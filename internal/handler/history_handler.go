package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/interviewai-go-api/internal/service"
	"github.com/noah-isme/interviewai-go-api/internal/utils"
)

// HistoryHandler serves past interview summaries and detail views.
type HistoryHandler struct {
	service service.HistoryService
	logger  zerolog.Logger
}

// NewHistoryHandler constructs a history handler.
func NewHistoryHandler(service service.HistoryService, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		service: service,
		logger:  logger.With().Str("component", "history_handler").Logger(),
	}
}

// Register wires history routes.
func (h *HistoryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/last", h.last)
	router.Get("/:id", h.detail)
}

func (h *HistoryHandler) list(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	summaries, err := h.service.ListByUser(c.Context(), *userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list interview history")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list interview history")
	}

	return utils.SendSuccess(c, "interview history", summaries)
}

func (h *HistoryHandler) last(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	detail, err := h.service.LastByUser(c.Context(), *userID)
	if err != nil {
		if errors.Is(err, service.ErrInterviewNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "no interviews yet")
		}
		h.logger.Error().Err(err).Msg("failed to load last interview")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load last interview")
	}

	return utils.SendSuccess(c, "last interview", detail)
}

func (h *HistoryHandler) detail(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview id")
	}

	detail, err := h.service.Detail(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInterviewNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "interview not found")
		}
		h.logger.Error().Err(err).Msg("failed to load interview detail")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load interview detail")
	}

	return utils.SendSuccess(c, "interview detail", detail)
}
