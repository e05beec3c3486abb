package models

import "time"

// Feedback is product feedback submitted by a visitor.
type Feedback struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	FeedbackType string    `gorm:"size:64;not null" json:"feedback_type"`
	FeedbackText string    `gorm:"type:text;not null" json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}
