package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/interviewai-go-api/internal/models"
	"github.com/noah-isme/interviewai-go-api/internal/repository"
	"github.com/noah-isme/interviewai-go-api/pkg/cloudinary"
)

// ErrUnsupportedFileType rejects uploads whose content is not text-like.
var ErrUnsupportedFileType = errors.New("unsupported file type")

const maxResumeBytes = 2 << 20 // 2 MiB

// ResumeService ingests resumes and job descriptions used as interview
// context.
type ResumeService interface {
	UploadResume(ctx context.Context, filename string, file io.Reader, userID *uint) (models.Resume, error)
	GetResume(ctx context.Context, id uint) (models.Resume, error)
	CreateJobDescription(ctx context.Context, title, jdText string, userID *uint) (models.JobDescription, error)
	GetJobDescription(ctx context.Context, id uint) (models.JobDescription, error)
}

// NewResumeService constructs the resume ingester. The uploader is optional;
// without it only the extracted text is kept.
func NewResumeService(resumes repository.ResumeRepository, uploader *cloudinary.Uploader, logger zerolog.Logger) ResumeService {
	return &resumeService{
		resumes:  resumes,
		uploader: uploader,
		logger:   logger.With().Str("component", "resume_service").Logger(),
	}
}

type resumeService struct {
	resumes  repository.ResumeRepository
	uploader *cloudinary.Uploader
	logger   zerolog.Logger
}

// UploadResume sniffs the content type, extracts the text body and stores
// the record. The original file additionally goes to Cloudinary when an
// uploader is configured; a storage fault there does not fail the upload.
func (s *resumeService) UploadResume(ctx context.Context, filename string, file io.Reader, userID *uint) (models.Resume, error) {
	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes+1))
	if err != nil {
		return models.Resume{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxResumeBytes {
		return models.Resume{}, fmt.Errorf("resume exceeds %d bytes", maxResumeBytes)
	}

	detected := mimetype.Detect(data)
	if !isTextLike(detected) {
		s.logger.Warn().Str("mime", detected.String()).Str("filename", filename).Msg("rejected resume upload")
		return models.Resume{}, ErrUnsupportedFileType
	}

	rawText := strings.TrimSpace(string(data))
	if !utf8.ValidString(rawText) {
		return models.Resume{}, ErrUnsupportedFileType
	}

	resume := models.Resume{
		Filename: filename,
		RawText:  rawText,
		UserID:   userID,
	}

	if s.uploader != nil {
		url, err := s.uploader.Upload(ctx, filename, bytes.NewReader(data))
		if err != nil {
			s.logger.Warn().Err(err).Str("filename", filename).Msg("resume file storage failed, keeping text only")
		} else {
			resume.FileURL = url
		}
	}

	if err := s.resumes.CreateResume(ctx, &resume); err != nil {
		return models.Resume{}, err
	}

	s.logger.Info().Uint("resume_id", resume.ID).Str("mime", detected.String()).Msg("resume uploaded")
	return resume, nil
}

func (s *resumeService) GetResume(ctx context.Context, id uint) (models.Resume, error) {
	resume, err := s.resumes.GetResume(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Resume{}, ErrResumeNotFound
		}
		return models.Resume{}, err
	}
	return resume, nil
}

func (s *resumeService) CreateJobDescription(ctx context.Context, title, jdText string, userID *uint) (models.JobDescription, error) {
	jd := models.JobDescription{
		Title:  title,
		JDText: strings.TrimSpace(jdText),
		UserID: userID,
	}
	if err := s.resumes.CreateJobDescription(ctx, &jd); err != nil {
		return models.JobDescription{}, err
	}
	return jd, nil
}

func (s *resumeService) GetJobDescription(ctx context.Context, id uint) (models.JobDescription, error) {
	jd, err := s.resumes.GetJobDescription(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.JobDescription{}, ErrJobDescriptionNotFound
		}
		return models.JobDescription{}, err
	}
	return jd, nil
}

// isTextLike accepts plain text and its common subtypes (markdown, csv).
func isTextLike(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
