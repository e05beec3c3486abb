package dto

import (
	"time"

	"github.com/noah-isme/interviewai-go-api/internal/models"
)

// ResumeResponse represents an uploaded resume to API consumers.
type ResumeResponse struct {
	ID         uint      `json:"id"`
	Filename   string    `json:"filename"`
	RawText    string    `json:"raw_text"`
	FileURL    string    `json:"file_url,omitempty"`
	UserID     *uint     `json:"user_id"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// JobDescriptionRequest creates a job description to practice against.
type JobDescriptionRequest struct {
	Title  string `json:"title"`
	JDText string `json:"jd_text" validate:"required,min=1"`
	UserID *uint  `json:"user_id" validate:"omitempty,gt=0"`
}

// JobDescriptionResponse represents a stored job description.
type JobDescriptionResponse struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	JDText     string    `json:"jd_text"`
	UserID     *uint     `json:"user_id"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewResumeResponse builds a response DTO from a model.
func NewResumeResponse(resume models.Resume) ResumeResponse {
	return ResumeResponse{
		ID:         resume.ID,
		Filename:   resume.Filename,
		RawText:    resume.RawText,
		FileURL:    resume.FileURL,
		UserID:     resume.UserID,
		UploadedAt: resume.UploadedAt,
	}
}

// NewJobDescriptionResponse builds a response DTO from a model.
func NewJobDescriptionResponse(jd models.JobDescription) JobDescriptionResponse {
	return JobDescriptionResponse{
		ID:         jd.ID,
		Title:      jd.Title,
		JDText:     jd.JDText,
		UserID:     jd.UserID,
		UploadedAt: jd.UploadedAt,
	}
}
