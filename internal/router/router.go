package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/interviewai-go-api/internal/config"
	"github.com/noah-isme/interviewai-go-api/internal/handler"
	"github.com/noah-isme/interviewai-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler      *handler.AuthHandler
	ResumeHandler    *handler.ResumeHandler
	InterviewHandler *handler.InterviewHandler
	HistoryHandler   *handler.HistoryHandler
	FeedbackHandler  *handler.FeedbackHandler
	CodeHandler      *handler.CodeHandler
	JWTMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := app.Group("/api/v1/auth")
		deps.AuthHandler.Register(auth)
	}

	if deps.ResumeHandler != nil {
		resume := app.Group("/api/v1/resume")
		deps.ResumeHandler.Register(resume)

		job := app.Group("/api/v1/job")
		deps.ResumeHandler.RegisterJobRoutes(job)
	}

	if deps.InterviewHandler != nil {
		interview := app.Group("/api/v1/interview")
		deps.InterviewHandler.Register(interview)
	}

	if deps.HistoryHandler != nil {
		history := app.Group("/api/v1/history", jwtMiddleware)
		deps.HistoryHandler.Register(history)
	}

	if deps.FeedbackHandler != nil {
		feedback := app.Group("/api/v1/feedback")
		deps.FeedbackHandler.Register(feedback)
	}

	if deps.CodeHandler != nil {
		code := app.Group("/api/v1/code")
		deps.CodeHandler.Register(code)
	}
}
