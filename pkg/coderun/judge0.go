package coderun

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	judge0Duration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "iva",
		Subsystem: "judge0",
		Name:      "submission_duration_seconds",
		Help:      "Duration of Judge0 submission round trips",
	}, []string{"language"})

	judge0Failures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iva",
		Subsystem: "judge0",
		Name:      "submission_failures_total",
		Help:      "Number of Judge0 submissions that could not be completed",
	}, []string{"language"})
)

// Judge0 status identifiers, per the Judge0 API.
const (
	judge0StatusAccepted       = 3
	judge0StatusTimeLimit      = 5
	judge0StatusCompilationErr = 6
)

// judge0Languages maps language tags onto Judge0 language identifiers.
var judge0Languages = map[string]int{
	"c":          50,
	"cpp":        54,
	"go":         60,
	"java":       62,
	"javascript": 63,
	"python":     71,
}

// Judge0Config groups the remote execution service settings.
type Judge0Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Judge0Client runs code through a remote Judge0 instance.
type Judge0Client struct {
	httpClient *http.Client
	cfg        Judge0Config
	tracer     trace.Tracer
	logger     zerolog.Logger
}

// NewJudge0Client constructs a client for the configured Judge0 endpoint.
func NewJudge0Client(cfg Judge0Config) (*Judge0Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("judge0 base url is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &Judge0Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		tracer:     otel.Tracer("github.com/noah-isme/interviewai-go-api/pkg/coderun/judge0"),
		logger:     logger.With().Str("component", "judge0_client").Logger(),
	}, nil
}

type judge0Submission struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin"`
}

type judge0Result struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Time          string `json:"time"`
	Status        struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

// Run submits the source synchronously (wait=true) and maps the verdict.
func (c *Judge0Client) Run(parent context.Context, req RunRequest) (RunResult, error) {
	language := strings.ToLower(strings.TrimSpace(req.Language))
	languageID, ok := judge0Languages[language]
	if !ok {
		return RunResult{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, req.Language)
	}

	ctx, span := c.tracer.Start(parent, "judge0.run", trace.WithAttributes(
		attribute.String("language", language),
	))
	defer span.End()

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(judge0Submission{
		SourceCode: req.Source,
		LanguageID: languageID,
		Stdin:      req.Stdin,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("marshal judge0 submission: %w", err)
	}

	endpoint := fmt.Sprintf("%s/submissions?%s", strings.TrimRight(c.cfg.BaseURL, "/"), url.Values{
		"base64_encoded": {"false"},
		"wait":           {"true"},
	}.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return RunResult{}, fmt.Errorf("build judge0 request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("X-Auth-Token", c.cfg.APIKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)
	judge0Duration.WithLabelValues(language).Observe(duration.Seconds())
	if err != nil {
		judge0Failures.WithLabelValues(language).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RunResult{}, fmt.Errorf("judge0 submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("judge0 returned status %d", resp.StatusCode)
		judge0Failures.WithLabelValues(language).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RunResult{}, err
	}

	var body judge0Result
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		judge0Failures.WithLabelValues(language).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RunResult{}, fmt.Errorf("decode judge0 response: %w", err)
	}

	result := RunResult{
		Stdout:        body.Stdout,
		Stderr:        body.Stderr,
		CompileOutput: body.CompileOutput,
		Duration:      duration,
		TimedOut:      body.Status.ID == judge0StatusTimeLimit,
	}

	if body.Status.ID != judge0StatusAccepted {
		result.ExitCode = 1
	}

	return result, nil
}
