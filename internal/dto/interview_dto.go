package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/interviewai-go-api/internal/models"
)

// StartInterviewRequest begins a new practice session.
type StartInterviewRequest struct {
	ResumeID         *uint `json:"resume_id" validate:"omitempty,gt=0"`
	JobDescriptionID *uint `json:"job_description_id" validate:"omitempty,gt=0"`
	UserID           *uint `json:"user_id" validate:"omitempty,gt=0"`
	TimerMinutes     int   `json:"timer_minutes" validate:"omitempty,gt=0,lte=180"`
}

// SubmitAnswerRequest records a response to a question.
type SubmitAnswerRequest struct {
	QuestionID   uint   `json:"question_id" validate:"required,gt=0"`
	UserText     string `json:"user_text"`
	IsCoding     bool   `json:"is_coding"`
	Code         string `json:"code"`
	CodeLanguage string `json:"code_language"`
}

// QuestionResponse represents one question to API consumers.
type QuestionResponse struct {
	ID       uint            `json:"id"`
	Category string          `json:"category"`
	Text     string          `json:"text"`
	Extra    json.RawMessage `json:"extra,omitempty"`
	Ordinal  int             `json:"ordinal"`
}

// InterviewResponse represents an interview session to API consumers.
type InterviewResponse struct {
	ID               uint               `json:"id"`
	UserID           *uint              `json:"user_id"`
	ResumeID         *uint              `json:"resume_id"`
	JobDescriptionID *uint              `json:"job_description_id"`
	CreatedAt        time.Time          `json:"created_at"`
	StartedAt        *time.Time         `json:"started_at"`
	ExpiresAt        *time.Time         `json:"expires_at"`
	IsActive         bool               `json:"is_active"`
	TotalScore       *int               `json:"total_score"`
	Questions        []QuestionResponse `json:"questions"`
}

// AnswerResponse represents a stored answer and its score.
type AnswerResponse struct {
	ID           uint      `json:"id"`
	InterviewID  uint      `json:"interview_id"`
	QuestionID   *uint     `json:"question_id"`
	UserText     string    `json:"user_text"`
	IsCoding     bool      `json:"is_coding"`
	Code         string    `json:"code,omitempty"`
	CodeLanguage string    `json:"code_language,omitempty"`
	CodeResult   string    `json:"code_result,omitempty"`
	Score        *int      `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
}

// EndInterviewResponse carries the final aggregate score.
type EndInterviewResponse struct {
	InterviewID uint `json:"interview_id"`
	TotalScore  int  `json:"total_score"`
}

// NewQuestionResponse builds a response DTO from a model.
func NewQuestionResponse(question models.Question) QuestionResponse {
	response := QuestionResponse{
		ID:       question.ID,
		Category: question.Category,
		Text:     question.Text,
		Ordinal:  question.Ordinal,
	}

	if len(question.Extra) > 0 {
		response.Extra = json.RawMessage(question.Extra)
	}

	return response
}

// NewInterviewResponse builds a response DTO from a model.
func NewInterviewResponse(interview models.Interview) InterviewResponse {
	questions := make([]QuestionResponse, 0, len(interview.Questions))
	for _, question := range interview.Questions {
		questions = append(questions, NewQuestionResponse(question))
	}

	return InterviewResponse{
		ID:               interview.ID,
		UserID:           interview.UserID,
		ResumeID:         interview.ResumeID,
		JobDescriptionID: interview.JobDescriptionID,
		CreatedAt:        interview.CreatedAt,
		StartedAt:        interview.StartedAt,
		ExpiresAt:        interview.ExpiresAt,
		IsActive:         interview.IsActive,
		TotalScore:       interview.TotalScore,
		Questions:        questions,
	}
}

// NewAnswerResponse builds a response DTO from a model.
func NewAnswerResponse(answer models.Answer) AnswerResponse {
	return AnswerResponse{
		ID:           answer.ID,
		InterviewID:  answer.InterviewID,
		QuestionID:   answer.QuestionID,
		UserText:     answer.UserText,
		IsCoding:     answer.IsCoding,
		Code:         answer.Code,
		CodeLanguage: answer.CodeLanguage,
		CodeResult:   answer.CodeResult,
		Score:        answer.Score,
		CreatedAt:    answer.CreatedAt,
	}
}
