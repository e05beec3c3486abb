package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/interviewai-go-api/internal/dto"
	"github.com/noah-isme/interviewai-go-api/internal/repository"
)

// feedbackThreshold is the category average below which the detail view
// suggests improvement.
const feedbackThreshold = 5

// HistoryService reads back past interviews with per-category score
// breakdowns. Summaries are cached in Redis since they are immutable once an
// interview has ended.
type HistoryService interface {
	ListByUser(ctx context.Context, userID uint) ([]dto.InterviewSummaryResponse, error)
	LastByUser(ctx context.Context, userID uint) (dto.InterviewDetailResponse, error)
	Detail(ctx context.Context, interviewID uint) (dto.InterviewDetailResponse, error)
}

// NewHistoryService constructs the history reader. A nil redis client
// disables caching.
func NewHistoryService(interviews repository.InterviewRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) HistoryService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &historyService{
		interviews: interviews,
		cache:      cache,
		ttl:        ttl,
		logger:     logger.With().Str("component", "history_service").Logger(),
	}
}

type historyService struct {
	interviews repository.InterviewRepository
	cache      *redis.Client
	ttl        time.Duration
	logger     zerolog.Logger
}

func (s *historyService) ListByUser(ctx context.Context, userID uint) ([]dto.InterviewSummaryResponse, error) {
	cacheKey := fmt.Sprintf("iva:history:user:%d", userID)

	var cached []dto.InterviewSummaryResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	interviews, err := s.interviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.InterviewSummaryResponse, 0, len(interviews))
	for _, interview := range interviews {
		summary, err := s.summarize(ctx, interview.ID, interview.CreatedAt)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	s.cacheSet(ctx, cacheKey, summaries)
	return summaries, nil
}

func (s *historyService) LastByUser(ctx context.Context, userID uint) (dto.InterviewDetailResponse, error) {
	interview, err := s.interviews.LastByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewDetailResponse{}, ErrInterviewNotFound
		}
		return dto.InterviewDetailResponse{}, err
	}

	return s.Detail(ctx, interview.ID)
}

func (s *historyService) Detail(ctx context.Context, interviewID uint) (dto.InterviewDetailResponse, error) {
	cacheKey := fmt.Sprintf("iva:history:interview:%d", interviewID)

	var cached dto.InterviewDetailResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewDetailResponse{}, ErrInterviewNotFound
		}
		return dto.InterviewDetailResponse{}, err
	}

	summary, err := s.summarize(ctx, interview.ID, interview.CreatedAt)
	if err != nil {
		return dto.InterviewDetailResponse{}, err
	}

	detail := dto.InterviewDetailResponse{
		InterviewSummaryResponse: summary,
		Feedback:                 improvementFeedback(summary),
	}

	s.cacheSet(ctx, cacheKey, detail)
	return detail, nil
}

func (s *historyService) summarize(ctx context.Context, interviewID uint, createdAt time.Time) (dto.InterviewSummaryResponse, error) {
	answers, err := s.interviews.ListAnswers(ctx, interviewID)
	if err != nil {
		return dto.InterviewSummaryResponse{}, err
	}

	scores := SummarizeAnswers(answers)
	return dto.InterviewSummaryResponse{
		ID:              interviewID,
		CreatedAt:       createdAt,
		TechnicalScore:  scores.Technical,
		BehavioralScore: scores.Behavioral,
		CodingScore:     scores.Coding,
		OverallScore:    scores.Overall,
	}, nil
}

func (s *historyService) cacheGet(ctx context.Context, key string, target interface{}) bool {
	if s.cache == nil {
		return false
	}

	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Str("key", key).Msg("history cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("corrupt history cache entry")
		return false
	}
	return true
}

func (s *historyService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("history cache write failed")
	}
}

// improvementFeedback turns the score breakdown into short advice. Categories
// at or above the threshold are considered fine.
func improvementFeedback(summary dto.InterviewSummaryResponse) string {
	var weak []string
	if summary.TechnicalScore < feedbackThreshold {
		weak = append(weak, "technical depth: revisit the projects on your resume and practice explaining design decisions")
	}
	if summary.BehavioralScore < feedbackThreshold {
		weak = append(weak, "behavioral answers: structure responses with situation, action and outcome")
	}
	if summary.CodingScore < feedbackThreshold {
		weak = append(weak, "coding: drill common data-structure problems until solutions run cleanly")
	}

	if len(weak) == 0 {
		return "Strong performance across all categories. Keep practicing to stay sharp."
	}
	return "Focus areas: " + strings.Join(weak, "; ") + "."
}
