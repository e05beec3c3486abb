package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/interviewai-go-api/internal/models"
)

func setupInterviewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Resume{},
		&models.JobDescription{},
		&models.Interview{},
		&models.Question{},
		&models.Answer{},
		&models.Transcript{},
	))
	return db
}

func TestInterviewRepositoryRoundTrip(t *testing.T) {
	db := setupInterviewTestDB(t)
	repo := NewInterviewRepository(db)

	now := time.Now()
	expires := now.Add(30 * time.Minute)
	interview := models.Interview{StartedAt: &now, ExpiresAt: &expires, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), &interview))
	require.NotZero(t, interview.ID)

	stored, err := repo.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	require.True(t, stored.IsActive)

	total := 8
	stored.IsActive = false
	stored.TotalScore = &total
	require.NoError(t, repo.Update(context.Background(), &stored))

	reloaded, err := repo.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	require.False(t, reloaded.IsActive)
	require.Equal(t, 8, *reloaded.TotalScore)
}

func TestInterviewRepositoryQuestionsOrderedByOrdinal(t *testing.T) {
	db := setupInterviewTestDB(t)
	repo := NewInterviewRepository(db)

	interview := models.Interview{IsActive: true}
	require.NoError(t, repo.Create(context.Background(), &interview))

	// insert out of order to prove ordering comes from the query
	for _, ordinal := range []int{3, 1, 2} {
		question := models.Question{InterviewID: interview.ID, Category: models.CategoryIntro, Text: "q", Ordinal: ordinal}
		require.NoError(t, repo.CreateQuestion(context.Background(), &question))
	}

	stored, err := repo.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	require.Len(t, stored.Questions, 3)
	for i, question := range stored.Questions {
		require.Equal(t, i+1, question.Ordinal)
	}

	count, err := repo.CountQuestions(context.Background(), interview.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
}

func TestInterviewRepositoryAnswersPreloadQuestion(t *testing.T) {
	db := setupInterviewTestDB(t)
	repo := NewInterviewRepository(db)

	interview := models.Interview{IsActive: true}
	require.NoError(t, repo.Create(context.Background(), &interview))

	question := models.Question{InterviewID: interview.ID, Category: models.CategoryCoding, Text: "reverse a string"}
	require.NoError(t, repo.CreateQuestion(context.Background(), &question))

	score := 10
	answer := models.Answer{InterviewID: interview.ID, QuestionID: &question.ID, IsCoding: true, Code: "print(s[::-1])", Score: &score}
	require.NoError(t, repo.CreateAnswer(context.Background(), &answer))

	answers, err := repo.ListAnswers(context.Background(), interview.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	require.NotNil(t, answers[0].Question)
	require.Equal(t, models.CategoryCoding, answers[0].Question.Category)
}

func TestInterviewRepositoryGetQuestionScopedToInterview(t *testing.T) {
	db := setupInterviewTestDB(t)
	repo := NewInterviewRepository(db)

	first := models.Interview{IsActive: true}
	second := models.Interview{IsActive: true}
	require.NoError(t, repo.Create(context.Background(), &first))
	require.NoError(t, repo.Create(context.Background(), &second))

	question := models.Question{InterviewID: first.ID, Category: models.CategoryIntro, Text: "q"}
	require.NoError(t, repo.CreateQuestion(context.Background(), &question))

	_, err := repo.GetQuestion(context.Background(), first.ID, question.ID)
	require.NoError(t, err)

	_, err = repo.GetQuestion(context.Background(), second.ID, question.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInterviewRepositoryLastByUser(t *testing.T) {
	db := setupInterviewTestDB(t)
	repo := NewInterviewRepository(db)

	userID := uint(3)
	_, err := repo.LastByUser(context.Background(), userID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	older := models.Interview{UserID: &userID, CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Interview{UserID: &userID, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(context.Background(), &older))
	require.NoError(t, repo.Create(context.Background(), &newer))

	last, err := repo.LastByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, newer.ID, last.ID)

	all, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, newer.ID, all[0].ID)
}
