package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const anthropicMessagesURL = "https://api.anthropic.com/v1/messages"

// AnthropicConfig defines configuration options for the Anthropic generator.
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	BaseURL   string
	Logger    zerolog.Logger
}

// AnthropicGenerator implements Generator against the Anthropic messages API.
type AnthropicGenerator struct {
	httpClient *http.Client
	cfg        AnthropicConfig
	tracer     trace.Tracer
	logger     zerolog.Logger
}

// NewAnthropicGenerator builds a new generator using the provided configuration.
func NewAnthropicGenerator(cfg AnthropicConfig) (*AnthropicGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "claude-3-5-haiku-latest"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = anthropicMessagesURL
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &AnthropicGenerator{
		httpClient: &http.Client{},
		cfg:        cfg,
		tracer:     otel.Tracer("github.com/noah-isme/interviewai-go-api/pkg/ai/anthropic"),
		logger:     logger,
	}, nil
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt to Anthropic and returns the concatenated text blocks.
func (g *AnthropicGenerator) Generate(parent context.Context, prompt string) (string, error) {
	ctx, span := g.tracer.Start(parent, "anthropic.generate", trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	payload, err := json.Marshal(anthropicRequest{
		Model:     g.cfg.Model,
		MaxTokens: g.cfg.MaxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal anthropic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build anthropic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.cfg.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	genDuration.WithLabelValues("anthropic", g.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		genFailures.WithLabelValues("anthropic", g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("anthropic generate: %w", err)
	}
	defer resp.Body.Close()

	var body anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		genFailures.WithLabelValues("anthropic", g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := resp.Status
		if body.Error != nil {
			message = body.Error.Message
		}
		err := fmt.Errorf("anthropic returned %d: %s", resp.StatusCode, message)
		genFailures.WithLabelValues("anthropic", g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	builder := strings.Builder{}
	for _, block := range body.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}

	result := strings.TrimSpace(builder.String())
	if result == "" {
		return "", fmt.Errorf("anthropic response contained no text blocks")
	}

	return result, nil
}
