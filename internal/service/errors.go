package service

import "errors"

// Sentinel errors surfaced by the service layer. Handlers map these onto
// HTTP status codes.
var (
	ErrInterviewNotFound      = errors.New("interview not found")
	ErrInterviewInactive      = errors.New("interview not found or inactive")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrResumeNotFound         = errors.New("resume not found")
	ErrJobDescriptionNotFound = errors.New("job description not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)
