package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/interviewai-go-api/internal/models"
)

// FeedbackRepository persists product feedback submissions.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
}

// NewFeedbackRepository constructs a feedback repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

type feedbackRepository struct {
	db *gorm.DB
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}
