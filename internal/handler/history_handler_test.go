package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/interviewai-go-api/internal/dto"
	"github.com/noah-isme/interviewai-go-api/internal/handler"
	"github.com/noah-isme/interviewai-go-api/internal/service"
)

type mockHistoryService struct {
	summaries  []dto.InterviewSummaryResponse
	detail     dto.InterviewDetailResponse
	err        error
	lastUserID uint
}

func (m *mockHistoryService) ListByUser(_ context.Context, userID uint) ([]dto.InterviewSummaryResponse, error) {
	m.lastUserID = userID
	return m.summaries, m.err
}

func (m *mockHistoryService) LastByUser(_ context.Context, userID uint) (dto.InterviewDetailResponse, error) {
	m.lastUserID = userID
	return m.detail, m.err
}

func (m *mockHistoryService) Detail(_ context.Context, _ uint) (dto.InterviewDetailResponse, error) {
	return m.detail, m.err
}

func newHistoryTestApp(svc service.HistoryService, userID uint) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/history", func(c *fiber.Ctx) error {
		if userID > 0 {
			c.Locals("user_id", userID)
		}
		return c.Next()
	})
	handler.NewHistoryHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestHistoryHandlerList(t *testing.T) {
	svc := &mockHistoryService{summaries: []dto.InterviewSummaryResponse{
		{ID: 1, CreatedAt: time.Now(), TechnicalScore: 8, BehavioralScore: 6, CodingScore: 10, OverallScore: 8},
	}}
	app := newHistoryTestApp(svc, 42)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data []dto.InterviewSummaryResponse `json:"data"`
	}
	decodeBody(t, resp, &payload)
	require.Len(t, payload.Data, 1)
	require.Equal(t, 10, payload.Data[0].CodingScore)
	require.Equal(t, uint(42), svc.lastUserID)
}

func TestHistoryHandlerRequiresAuth(t *testing.T) {
	app := newHistoryTestApp(&mockHistoryService{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHistoryHandlerLastNotFound(t *testing.T) {
	app := newHistoryTestApp(&mockHistoryService{err: service.ErrInterviewNotFound}, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/last", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHistoryHandlerDetail(t *testing.T) {
	svc := &mockHistoryService{detail: dto.InterviewDetailResponse{
		InterviewSummaryResponse: dto.InterviewSummaryResponse{ID: 9, OverallScore: 7},
		Feedback:                 "Focus areas: coding.",
	}}
	app := newHistoryTestApp(svc, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/9", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data dto.InterviewDetailResponse `json:"data"`
	}
	decodeBody(t, resp, &payload)
	require.Equal(t, uint(9), payload.Data.ID)
	require.Contains(t, payload.Data.Feedback, "coding")
}
