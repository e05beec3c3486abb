package dto

import "time"

// InterviewSummaryResponse is the per-interview score breakdown shown in the
// history list.
type InterviewSummaryResponse struct {
	ID              uint      `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	TechnicalScore  int       `json:"technical_score"`
	BehavioralScore int       `json:"behavioral_score"`
	CodingScore     int       `json:"coding_score"`
	OverallScore    int       `json:"overall_score"`
}

// InterviewDetailResponse extends the summary with improvement feedback.
type InterviewDetailResponse struct {
	InterviewSummaryResponse
	Feedback string `json:"feedback"`
}
