package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/interviewai-go-api/internal/dto"
	"github.com/noah-isme/interviewai-go-api/internal/events"
	"github.com/noah-isme/interviewai-go-api/internal/models"
	"github.com/noah-isme/interviewai-go-api/internal/repository"
)

// InterviewService drives the interview lifecycle: starting a session,
// serving the next question, recording and scoring answers, and closing the
// session with an aggregate score.
type InterviewService interface {
	Start(ctx context.Context, req dto.StartInterviewRequest) (models.Interview, models.Question, error)
	NextQuestion(ctx context.Context, interviewID uint) (models.Question, error)
	SubmitAnswer(ctx context.Context, interviewID uint, req dto.SubmitAnswerRequest) (models.Answer, error)
	End(ctx context.Context, interviewID uint) (int, error)
	Get(ctx context.Context, interviewID uint) (models.Interview, error)
}

// NewInterviewService wires the lifecycle with its planner, scorer and
// event publisher.
func NewInterviewService(
	interviews repository.InterviewRepository,
	resumes repository.ResumeRepository,
	planner *QuestionPlanner,
	scorer *AnswerScorer,
	publisher events.Publisher,
	defaultDuration time.Duration,
	logger zerolog.Logger,
) InterviewService {
	if defaultDuration <= 0 {
		defaultDuration = 30 * time.Minute
	}
	if publisher == nil {
		publisher = events.Noop()
	}

	return &interviewService{
		interviews:      interviews,
		resumes:         resumes,
		planner:         planner,
		scorer:          scorer,
		publisher:       publisher,
		defaultDuration: defaultDuration,
		sanitizer:       bluemonday.StrictPolicy(),
		now:             time.Now,
		logger:          logger.With().Str("component", "interview_service").Logger(),
	}
}

type interviewService struct {
	interviews      repository.InterviewRepository
	resumes         repository.ResumeRepository
	planner         *QuestionPlanner
	scorer          *AnswerScorer
	publisher       events.Publisher
	defaultDuration time.Duration
	sanitizer       *bluemonday.Policy
	now             func() time.Time
	logger          zerolog.Logger
}

// Start creates an active session with a running timer and asks the first
// question immediately.
func (s *interviewService) Start(ctx context.Context, req dto.StartInterviewRequest) (models.Interview, models.Question, error) {
	resumeText := ""
	if req.ResumeID != nil {
		resume, err := s.resumes.GetResume(ctx, *req.ResumeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Interview{}, models.Question{}, ErrResumeNotFound
			}
			return models.Interview{}, models.Question{}, err
		}
		resumeText = resume.RawText
	}

	jdText := ""
	if req.JobDescriptionID != nil {
		jd, err := s.resumes.GetJobDescription(ctx, *req.JobDescriptionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Interview{}, models.Question{}, ErrJobDescriptionNotFound
			}
			return models.Interview{}, models.Question{}, err
		}
		jdText = jd.JDText
	}

	duration := s.defaultDuration
	if req.TimerMinutes > 0 {
		duration = time.Duration(req.TimerMinutes) * time.Minute
	}

	now := s.now()
	expires := now.Add(duration)
	interview := models.Interview{
		UserID:           req.UserID,
		ResumeID:         req.ResumeID,
		JobDescriptionID: req.JobDescriptionID,
		StartedAt:        &now,
		ExpiresAt:        &expires,
		IsActive:         true,
	}
	if err := s.interviews.Create(ctx, &interview); err != nil {
		return models.Interview{}, models.Question{}, err
	}

	planned := s.planner.Next(ctx, resumeText, jdText, nil, 0)
	question, err := s.recordQuestion(ctx, interview.ID, planned, 1)
	if err != nil {
		return models.Interview{}, models.Question{}, err
	}

	s.publisher.Publish(events.InterviewStarted, map[string]interface{}{
		"interview_id": interview.ID,
		"user_id":      interview.UserID,
		"expires_at":   interview.ExpiresAt,
	})

	s.logger.Info().Uint("interview_id", interview.ID).Time("expires_at", expires).Msg("interview started")
	return interview, question, nil
}

// NextQuestion plans and persists the next question of an active session.
func (s *interviewService) NextQuestion(ctx context.Context, interviewID uint) (models.Question, error) {
	interview, err := s.activeInterview(ctx, interviewID)
	if err != nil {
		return models.Question{}, err
	}

	resumeText, jdText := s.loadContextTexts(ctx, interview)
	history, err := s.historyPairs(ctx, interview)
	if err != nil {
		return models.Question{}, err
	}

	step := len(interview.Questions)
	planned := s.planner.Next(ctx, resumeText, jdText, history, step)
	return s.recordQuestion(ctx, interview.ID, planned, step+1)
}

// SubmitAnswer stores the sanitized answer, scores it synchronously and
// appends the candidate's transcript line.
func (s *interviewService) SubmitAnswer(ctx context.Context, interviewID uint, req dto.SubmitAnswerRequest) (models.Answer, error) {
	interview, err := s.activeInterview(ctx, interviewID)
	if err != nil {
		return models.Answer{}, err
	}

	question, err := s.interviews.GetQuestion(ctx, interview.ID, req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Answer{}, ErrQuestionNotFound
		}
		return models.Answer{}, err
	}

	userText := s.sanitizer.Sanitize(req.UserText)

	answer := models.Answer{
		InterviewID:  interview.ID,
		QuestionID:   &question.ID,
		UserText:     userText,
		IsCoding:     req.IsCoding,
		Code:         req.Code,
		CodeLanguage: req.CodeLanguage,
	}

	var score int
	if req.IsCoding {
		var codeResult string
		score, codeResult = s.scorer.ScoreCode(ctx, req.CodeLanguage, req.Code)
		answer.CodeResult = codeResult
	} else {
		score = s.scorer.ScoreText(ctx, question.Text, userText, question.Category)
	}
	answer.Score = &score

	if err := s.interviews.CreateAnswer(ctx, &answer); err != nil {
		return models.Answer{}, err
	}

	transcriptText := userText
	if req.IsCoding && transcriptText == "" {
		transcriptText = req.Code
	}
	if transcriptText != "" {
		s.appendTranscript(ctx, interview.ID, models.SpeakerCandidate, transcriptText)
	}

	s.publisher.Publish(events.AnswerScored, map[string]interface{}{
		"interview_id": interview.ID,
		"question_id":  question.ID,
		"answer_id":    answer.ID,
		"category":     question.Category,
		"score":        score,
	})

	return answer, nil
}

// End deactivates the session and computes the weighted aggregate over the
// answers recorded so far. Ending an already-ended session recomputes and
// returns the same score.
func (s *interviewService) End(ctx context.Context, interviewID uint) (int, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInterviewNotFound
		}
		return 0, err
	}

	answers, err := s.interviews.ListAnswers(ctx, interview.ID)
	if err != nil {
		return 0, err
	}

	technical, behavioral, coding := GroupScoresByCategory(answers)
	total := AggregateScores(technical, behavioral, coding)

	interview.IsActive = false
	interview.TotalScore = &total
	if err := s.interviews.Update(ctx, &interview); err != nil {
		return 0, err
	}

	s.publisher.Publish(events.InterviewEnded, map[string]interface{}{
		"interview_id": interview.ID,
		"total_score":  total,
	})

	s.logger.Info().Uint("interview_id", interview.ID).Int("total_score", total).Msg("interview ended")
	return total, nil
}

// Get returns a session with its questions, applying lazy expiry first.
func (s *interviewService) Get(ctx context.Context, interviewID uint) (models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Interview{}, ErrInterviewNotFound
		}
		return models.Interview{}, err
	}

	if interview.Expired(s.now()) {
		interview.IsActive = false
		if err := s.interviews.Update(ctx, &interview); err != nil {
			return models.Interview{}, err
		}
	}

	return interview, nil
}

// activeInterview loads a session and enforces the active-and-unexpired
// precondition shared by question and answer operations. Expiry observed
// here deactivates the session before rejecting the call.
func (s *interviewService) activeInterview(ctx context.Context, interviewID uint) (models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Interview{}, ErrInterviewNotFound
		}
		return models.Interview{}, err
	}

	if interview.Expired(s.now()) {
		interview.IsActive = false
		if err := s.interviews.Update(ctx, &interview); err != nil {
			return models.Interview{}, err
		}
		s.logger.Info().Uint("interview_id", interview.ID).Msg("interview expired")
	}

	if !interview.IsActive {
		return models.Interview{}, ErrInterviewInactive
	}

	return interview, nil
}

func (s *interviewService) recordQuestion(ctx context.Context, interviewID uint, planned PlannedQuestion, ordinal int) (models.Question, error) {
	question := models.Question{
		InterviewID: interviewID,
		Category:    planned.Category,
		Text:        planned.Text,
		Ordinal:     ordinal,
	}

	if len(planned.Extra) > 0 {
		raw, err := json.Marshal(planned.Extra)
		if err == nil {
			question.Extra = datatypes.JSON(raw)
		}
	}

	if err := s.interviews.CreateQuestion(ctx, &question); err != nil {
		return models.Question{}, err
	}

	s.appendTranscript(ctx, interviewID, models.SpeakerInterviewer, question.Text)
	return question, nil
}

func (s *interviewService) appendTranscript(ctx context.Context, interviewID uint, speaker, text string) {
	transcript := models.Transcript{
		InterviewID: interviewID,
		Speaker:     speaker,
		Text:        text,
	}
	if err := s.interviews.CreateTranscript(ctx, &transcript); err != nil {
		s.logger.Warn().Err(err).Uint("interview_id", interviewID).Msg("failed to append transcript")
	}
}

// loadContextTexts fetches the resume and job description bodies for prompt
// building. Missing references degrade to empty text rather than failing the
// question.
func (s *interviewService) loadContextTexts(ctx context.Context, interview models.Interview) (string, string) {
	resumeText := ""
	if interview.ResumeID != nil {
		if resume, err := s.resumes.GetResume(ctx, *interview.ResumeID); err == nil {
			resumeText = resume.RawText
		}
	}

	jdText := ""
	if interview.JobDescriptionID != nil {
		if jd, err := s.resumes.GetJobDescription(ctx, *interview.JobDescriptionID); err == nil {
			jdText = jd.JDText
		}
	}

	return resumeText, jdText
}

// historyPairs joins questions with their latest answers in ordinal order.
func (s *interviewService) historyPairs(ctx context.Context, interview models.Interview) ([]HistoryPair, error) {
	answers, err := s.interviews.ListAnswers(ctx, interview.ID)
	if err != nil {
		return nil, err
	}

	answerByQuestion := make(map[uint]string, len(answers))
	for _, answer := range answers {
		if answer.QuestionID == nil {
			continue
		}
		text := answer.UserText
		if answer.IsCoding && text == "" {
			text = answer.Code
		}
		answerByQuestion[*answer.QuestionID] = text
	}

	pairs := make([]HistoryPair, 0, len(interview.Questions))
	for _, question := range interview.Questions {
		pairs = append(pairs, HistoryPair{
			Question: question.Text,
			Answer:   answerByQuestion[question.ID],
		})
	}
	return pairs, nil
}
