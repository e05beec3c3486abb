package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/interviewai-go-api/internal/models"
)

func seedFinishedInterview(t *testing.T, repo *memoryInterviewRepo, userID uint, scores map[string]int) uint {
	t.Helper()

	interview := models.Interview{UserID: &userID, IsActive: false}
	require.NoError(t, repo.Create(context.Background(), &interview))

	for category, value := range scores {
		question := models.Question{InterviewID: interview.ID, Category: category, Text: "q"}
		require.NoError(t, repo.CreateQuestion(context.Background(), &question))
		score := value
		answer := models.Answer{InterviewID: interview.ID, QuestionID: &question.ID, Score: &score}
		require.NoError(t, repo.CreateAnswer(context.Background(), &answer))
	}

	return interview.ID
}

func TestHistoryDetailScoresAndFeedback(t *testing.T) {
	repo := newMemoryInterviewRepo()
	interviewID := seedFinishedInterview(t, repo, 1, map[string]int{
		models.CategoryResume:     9,
		models.CategoryBehavioral: 3,
		models.CategoryCoding:     10,
	})

	svc := NewHistoryService(repo, nil, time.Minute, testLogger())

	detail, err := svc.Detail(context.Background(), interviewID)
	require.NoError(t, err)
	require.Equal(t, 9, detail.TechnicalScore)
	require.Equal(t, 3, detail.BehavioralScore)
	require.Equal(t, 10, detail.CodingScore)
	require.Equal(t, 7, detail.OverallScore)
	require.Contains(t, detail.Feedback, "behavioral")
	require.NotContains(t, detail.Feedback, "technical depth")
}

func TestHistoryDetailStrongPerformance(t *testing.T) {
	repo := newMemoryInterviewRepo()
	interviewID := seedFinishedInterview(t, repo, 1, map[string]int{
		models.CategoryResume:     8,
		models.CategoryBehavioral: 7,
		models.CategoryCoding:     10,
	})

	svc := NewHistoryService(repo, nil, time.Minute, testLogger())

	detail, err := svc.Detail(context.Background(), interviewID)
	require.NoError(t, err)
	require.Contains(t, detail.Feedback, "Strong performance")
}

func TestHistoryDetailNotFound(t *testing.T) {
	svc := NewHistoryService(newMemoryInterviewRepo(), nil, time.Minute, testLogger())

	_, err := svc.Detail(context.Background(), 77)
	require.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestHistoryListCaches(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	repo := newMemoryInterviewRepo()
	seedFinishedInterview(t, repo, 7, map[string]int{models.CategoryCoding: 10})

	svc := NewHistoryService(repo, redisClient, time.Minute, testLogger())

	first, err := svc.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// wipe the repo; the cached summary must survive
	repo.interviews = map[uint]models.Interview{}
	repo.answers = map[uint]models.Answer{}

	cached, err := svc.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, first[0].CodingScore, cached[0].CodingScore)
}

func TestHistoryLastByUser(t *testing.T) {
	repo := newMemoryInterviewRepo()
	svc := NewHistoryService(repo, nil, time.Minute, testLogger())

	_, err := svc.LastByUser(context.Background(), 5)
	require.ErrorIs(t, err, ErrInterviewNotFound)

	seedFinishedInterview(t, repo, 5, map[string]int{models.CategoryResume: 6})

	detail, err := svc.LastByUser(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 6, detail.TechnicalScore)
}
