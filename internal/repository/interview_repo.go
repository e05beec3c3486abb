package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/interviewai-go-api/internal/models"
)

// InterviewRepository exposes persistence helpers for interviews and their
// questions, answers and transcript lines.
type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	Update(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id uint) (models.Interview, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Interview, error)
	LastByUser(ctx context.Context, userID uint) (models.Interview, error)
	CountQuestions(ctx context.Context, interviewID uint) (int64, error)
	CreateQuestion(ctx context.Context, question *models.Question) error
	GetQuestion(ctx context.Context, interviewID, questionID uint) (models.Question, error)
	ListQuestions(ctx context.Context, interviewID uint) ([]models.Question, error)
	CreateAnswer(ctx context.Context, answer *models.Answer) error
	ListAnswers(ctx context.Context, interviewID uint) ([]models.Answer, error)
	CreateTranscript(ctx context.Context, transcript *models.Transcript) error
}

// NewInterviewRepository constructs an interview repository.
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

type interviewRepository struct {
	db *gorm.DB
}

func (r *interviewRepository) Create(ctx context.Context, interview *models.Interview) error {
	return r.db.WithContext(ctx).Create(interview).Error
}

func (r *interviewRepository) Update(ctx context.Context, interview *models.Interview) error {
	return r.db.WithContext(ctx).Save(interview).Error
}

func (r *interviewRepository) GetByID(ctx context.Context, id uint) (models.Interview, error) {
	var interview models.Interview
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal ASC") }).
		First(&interview, id).Error
	if err != nil {
		return models.Interview{}, err
	}
	return interview, nil
}

func (r *interviewRepository) ListByUser(ctx context.Context, userID uint) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&interviews).Error
	return interviews, err
}

func (r *interviewRepository) LastByUser(ctx context.Context, userID uint) (models.Interview, error) {
	var interview models.Interview
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&interview).Error
	if err != nil {
		return models.Interview{}, err
	}
	return interview, nil
}

func (r *interviewRepository) CountQuestions(ctx context.Context, interviewID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("interview_id = ?", interviewID).
		Count(&count).Error
	return count, err
}

func (r *interviewRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *interviewRepository) GetQuestion(ctx context.Context, interviewID, questionID uint) (models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Where("id = ? AND interview_id = ?", questionID, interviewID).
		First(&question).Error
	if err != nil {
		return models.Question{}, err
	}
	return question, nil
}

func (r *interviewRepository) ListQuestions(ctx context.Context, interviewID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("ordinal ASC").
		Find(&questions).Error
	return questions, err
}

func (r *interviewRepository) CreateAnswer(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *interviewRepository) ListAnswers(ctx context.Context, interviewID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.WithContext(ctx).
		Preload("Question").
		Where("interview_id = ?", interviewID).
		Order("created_at ASC").
		Find(&answers).Error
	return answers, err
}

func (r *interviewRepository) CreateTranscript(ctx context.Context, transcript *models.Transcript) error {
	return r.db.WithContext(ctx).Create(transcript).Error
}
