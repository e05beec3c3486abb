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

// ResumeHandler handles resume uploads and job description submissions.
type ResumeHandler struct {
	service   service.ResumeService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewResumeHandler constructs a resume handler.
func NewResumeHandler(service service.ResumeService, validator *validator.Validate, logger zerolog.Logger) *ResumeHandler {
	return &ResumeHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "resume_handler").Logger(),
	}
}

// Register wires resume routes.
func (h *ResumeHandler) Register(router fiber.Router) {
	router.Post("/upload", h.upload)
	router.Get("/:id", h.get)
}

// RegisterJobRoutes wires job description routes.
func (h *ResumeHandler) RegisterJobRoutes(router fiber.Router) {
	router.Post("/upload", h.createJobDescription)
	router.Get("/:id", h.getJobDescription)
}

func (h *ResumeHandler) upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "resume file missing")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read resume file")
	}
	defer file.Close()

	resume, err := h.service.UploadResume(c.Context(), fileHeader.Filename, file, userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "only text resumes are supported")
		}
		h.logger.Error().Err(err).Msg("failed to store resume")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to store resume")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "resume uploaded", dto.NewResumeResponse(resume))
}

func (h *ResumeHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid resume id")
	}

	resume, err := h.service.GetResume(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrResumeNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "resume not found")
		}
		h.logger.Error().Err(err).Msg("failed to load resume")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load resume")
	}

	return utils.SendSuccess(c, "resume found", dto.NewResumeResponse(resume))
}

func (h *ResumeHandler) createJobDescription(c *fiber.Ctx) error {
	var payload dto.JobDescriptionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "job description text is required")
	}

	if payload.UserID == nil {
		payload.UserID = userIDFromContext(c)
	}

	jd, err := h.service.CreateJobDescription(c.Context(), payload.Title, payload.JDText, payload.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to store job description")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to store job description")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "job description stored", dto.NewJobDescriptionResponse(jd))
}

func (h *ResumeHandler) getJobDescription(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid job description id")
	}

	jd, err := h.service.GetJobDescription(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrJobDescriptionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "job description not found")
		}
		h.logger.Error().Err(err).Msg("failed to load job description")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load job description")
	}

	return utils.SendSuccess(c, "job description found", dto.NewJobDescriptionResponse(jd))
}
