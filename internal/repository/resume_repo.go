package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/interviewai-go-api/internal/models"
)

// ResumeRepository exposes persistence helpers for resumes and job descriptions.
type ResumeRepository interface {
	CreateResume(ctx context.Context, resume *models.Resume) error
	GetResume(ctx context.Context, id uint) (models.Resume, error)
	CreateJobDescription(ctx context.Context, jd *models.JobDescription) error
	GetJobDescription(ctx context.Context, id uint) (models.JobDescription, error)
}

// NewResumeRepository constructs a resume repository.
func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

type resumeRepository struct {
	db *gorm.DB
}

func (r *resumeRepository) CreateResume(ctx context.Context, resume *models.Resume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

func (r *resumeRepository) GetResume(ctx context.Context, id uint) (models.Resume, error) {
	var resume models.Resume
	if err := r.db.WithContext(ctx).First(&resume, id).Error; err != nil {
		return models.Resume{}, err
	}
	return resume, nil
}

func (r *resumeRepository) CreateJobDescription(ctx context.Context, jd *models.JobDescription) error {
	return r.db.WithContext(ctx).Create(jd).Error
}

func (r *resumeRepository) GetJobDescription(ctx context.Context, id uint) (models.JobDescription, error) {
	var jd models.JobDescription
	if err := r.db.WithContext(ctx).First(&jd, id).Error; err != nil {
		return models.JobDescription{}, err
	}
	return jd, nil
}
