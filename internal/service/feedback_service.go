package service

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/interviewai-go-api/internal/dto"
	"github.com/noah-isme/interviewai-go-api/internal/models"
	"github.com/noah-isme/interviewai-go-api/internal/repository"
)

// FeedbackService records product feedback submissions.
type FeedbackService interface {
	Submit(ctx context.Context, req dto.FeedbackRequest) (models.Feedback, error)
}

// NewFeedbackService constructs the feedback recorder.
func NewFeedbackService(feedbacks repository.FeedbackRepository, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		feedbacks: feedbacks,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "feedback_service").Logger(),
	}
}

type feedbackService struct {
	feedbacks repository.FeedbackRepository
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

func (s *feedbackService) Submit(ctx context.Context, req dto.FeedbackRequest) (models.Feedback, error) {
	feedback := models.Feedback{
		Email:        req.Email,
		FeedbackType: req.FeedbackType,
		FeedbackText: s.sanitizer.Sanitize(req.FeedbackText),
	}

	if err := s.feedbacks.Create(ctx, &feedback); err != nil {
		return models.Feedback{}, err
	}

	s.logger.Info().Str("feedback_type", feedback.FeedbackType).Msg("feedback recorded")
	return feedback, nil
}
