package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/interviewai-go-api/internal/dto"
	"github.com/noah-isme/interviewai-go-api/internal/service"
	"github.com/noah-isme/interviewai-go-api/internal/utils"
)

// InterviewHandler handles the interview lifecycle endpoints.
type InterviewHandler struct {
	service   service.InterviewService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewInterviewHandler constructs an interview handler.
func NewInterviewHandler(service service.InterviewService, validator *validator.Validate, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register wires interview routes.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("/start", h.start)
	router.Get("/:id", h.get)
	router.Post("/:id/question", h.nextQuestion)
	router.Post("/:id/answer", h.submitAnswer)
	router.Post("/:id/end", h.end)
}

func (h *InterviewHandler) start(c *fiber.Ctx) error {
	var payload dto.StartInterviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview request")
	}

	if payload.UserID == nil {
		payload.UserID = userIDFromContext(c)
	}

	interview, question, err := h.service.Start(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err, "failed to start interview")
	}

	interview.Questions = append(interview.Questions, question)
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "interview started", dto.NewInterviewResponse(interview))
}

func (h *InterviewHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview id")
	}

	interview, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err, "failed to load interview")
	}

	return utils.SendSuccess(c, "interview found", dto.NewInterviewResponse(interview))
}

func (h *InterviewHandler) nextQuestion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview id")
	}

	question, err := h.service.NextQuestion(c.Context(), id)
	if err != nil {
		return h.handleError(c, err, "failed to generate question")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "question generated", dto.NewQuestionResponse(question))
}

func (h *InterviewHandler) submitAnswer(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview id")
	}

	var payload dto.SubmitAnswerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid answer payload")
	}

	answer, err := h.service.SubmitAnswer(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err, "failed to submit answer")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "answer recorded", dto.NewAnswerResponse(answer))
}

func (h *InterviewHandler) end(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid interview id")
	}

	total, err := h.service.End(c.Context(), id)
	if err != nil {
		return h.handleError(c, err, "failed to end interview")
	}

	return utils.SendSuccess(c, "interview ended", dto.EndInterviewResponse{
		InterviewID: id,
		TotalScore:  total,
	})
}

func (h *InterviewHandler) handleError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrInterviewNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "interview not found")
	case errors.Is(err, service.ErrInterviewInactive):
		return utils.SendError(c, fiber.StatusNotFound, "interview not found or inactive")
	case errors.Is(err, service.ErrQuestionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "question not found")
	case errors.Is(err, service.ErrResumeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "resume not found")
	case errors.Is(err, service.ErrJobDescriptionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "job description not found")
	default:
		h.logger.Error().Err(err).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}
