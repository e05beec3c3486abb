package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question categories drive both progression and scoring weight.
const (
	CategoryIntro      = "intro"
	CategoryResume     = "resume"
	CategoryBehavioral = "behavioral"
	CategoryCoding     = "coding"
)

// Transcript speakers.
const (
	SpeakerInterviewer = "interviewer"
	SpeakerCandidate   = "candidate"
)

// Interview represents one practice session.
type Interview struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	UserID           *uint        `json:"user_id"`
	ResumeID         *uint        `json:"resume_id"`
	JobDescriptionID *uint        `json:"job_description_id"`
	CreatedAt        time.Time    `json:"created_at"`
	StartedAt        *time.Time   `json:"started_at"`
	ExpiresAt        *time.Time   `json:"expires_at"`
	IsActive         bool         `gorm:"not null;default:false" json:"is_active"`
	TotalScore       *int         `json:"total_score"`
	Questions        []Question   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions"`
	Answers          []Answer     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"answers"`
	Transcripts      []Transcript `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Expired reports whether the interview is past its deadline. Expiry is a
// derived predicate; deactivation happens lazily when it is observed.
func (i Interview) Expired(now time.Time) bool {
	return i.IsActive && i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// Question is one prompt posed during an interview. Immutable after creation.
type Question struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	InterviewID uint           `gorm:"not null;index" json:"interview_id"`
	Category    string         `gorm:"size:32;not null" json:"category"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	Extra       datatypes.JSON `json:"extra"`
	Ordinal     int            `gorm:"not null" json:"ordinal"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Answer is a candidate's response to exactly one question.
type Answer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InterviewID  uint      `gorm:"not null;index" json:"interview_id"`
	QuestionID   *uint     `json:"question_id"`
	UserText     string    `gorm:"type:text" json:"user_text"`
	IsCoding     bool      `gorm:"not null;default:false" json:"is_coding"`
	Code         string    `gorm:"type:text" json:"code"`
	CodeLanguage string    `gorm:"size:32" json:"code_language"`
	CodeResult   string    `gorm:"type:text" json:"code_result"`
	Score        *int      `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
	Question     *Question `json:"question,omitempty"`
}

// Transcript records one spoken line of the session.
type Transcript struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InterviewID uint      `gorm:"not null;index" json:"interview_id"`
	Speaker     string    `gorm:"size:16;not null" json:"speaker"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}
