package dto

import (
	"time"

	"github.com/noah-isme/interviewai-go-api/internal/models"
)

// FeedbackRequest is a product feedback submission.
type FeedbackRequest struct {
	Email        string `json:"email" validate:"required,email"`
	FeedbackType string `json:"feedback_type" validate:"required,max=64"`
	FeedbackText string `json:"feedback_text" validate:"required,min=1"`
}

// FeedbackResponse represents stored feedback.
type FeedbackResponse struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	FeedbackType string    `json:"feedback_type"`
	FeedbackText string    `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewFeedbackResponse builds a response DTO from a model.
func NewFeedbackResponse(feedback models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:           feedback.ID,
		Email:        feedback.Email,
		FeedbackType: feedback.FeedbackType,
		FeedbackText: feedback.FeedbackText,
		CreatedAt:    feedback.CreatedAt,
	}
}
