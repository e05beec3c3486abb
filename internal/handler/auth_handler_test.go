package handler_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/interviewai-go-api/internal/dto"
	"github.com/noah-isme/interviewai-go-api/internal/handler"
	"github.com/noah-isme/interviewai-go-api/internal/models"
	"github.com/noah-isme/interviewai-go-api/internal/service"
)

type mockAuthService struct {
	response dto.AuthResponse
	err      error
}

func (m *mockAuthService) Signup(_ context.Context, _ dto.SignupRequest) (dto.AuthResponse, error) {
	return m.response, m.err
}

func (m *mockAuthService) Login(_ context.Context, _ dto.LoginRequest) (dto.AuthResponse, error) {
	return m.response, m.err
}

func (m *mockAuthService) GetUser(_ context.Context, _ uint) (models.User, error) {
	return models.User{}, m.err
}

func newAuthTestApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	validate := validator.New(validator.WithRequiredStructEnabled())
	group := app.Group("/api/v1/auth")
	handler.NewAuthHandler(svc, validate, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestAuthHandlerSignup(t *testing.T) {
	svc := &mockAuthService{response: dto.AuthResponse{
		Token:     "token-123",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      dto.UserResponse{ID: 1, Email: "jane@example.com"},
	}}
	app := newAuthTestApp(svc)

	resp := postJSON(t, app, "/api/v1/auth/signup", dto.SignupRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var payload struct {
		Data dto.AuthResponse `json:"data"`
	}
	decodeBody(t, resp, &payload)
	require.Equal(t, "token-123", payload.Data.Token)
}

func TestAuthHandlerSignupValidation(t *testing.T) {
	app := newAuthTestApp(&mockAuthService{})

	cases := []struct {
		name    string
		payload dto.SignupRequest
	}{
		{name: "bad email", payload: dto.SignupRequest{Email: "not-an-email", Password: "long-enough"}},
		{name: "short password", payload: dto.SignupRequest{Email: "a@b.c", Password: "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/v1/auth/signup", tc.payload)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAuthHandlerSignupConflict(t *testing.T) {
	app := newAuthTestApp(&mockAuthService{err: service.ErrEmailTaken})

	resp := postJSON(t, app, "/api/v1/auth/signup", dto.SignupRequest{Email: "a@b.c", Password: "long-enough"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAuthHandlerLoginRejected(t *testing.T) {
	app := newAuthTestApp(&mockAuthService{err: service.ErrInvalidCredentials})

	resp := postJSON(t, app, "/api/v1/auth/login", dto.LoginRequest{Email: "a@b.c", Password: "wrong"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
