package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/interviewai-go-api/pkg/ai"
	"github.com/noah-isme/interviewai-go-api/pkg/coderun"
)

// AnswerScorer assigns a 0-10 score to one answer at submission time. Text
// answers go to the evaluation delegate with the length heuristic as the
// availability fallback; code answers are a binary pass/fail on execution.
type AnswerScorer struct {
	generator   ai.Generator
	runner      coderun.Runner
	aiTimeout   time.Duration
	execTimeout time.Duration
	logger      zerolog.Logger
}

// NewAnswerScorer constructs a scorer. Both delegates are optional; missing
// ones degrade to the heuristic (text) or a zero score (code).
func NewAnswerScorer(generator ai.Generator, runner coderun.Runner, aiTimeout, execTimeout time.Duration, logger zerolog.Logger) *AnswerScorer {
	if aiTimeout <= 0 {
		aiTimeout = 12 * time.Second
	}
	if execTimeout <= 0 {
		execTimeout = 10 * time.Second
	}

	return &AnswerScorer{
		generator:   generator,
		runner:      runner,
		aiTimeout:   aiTimeout,
		execTimeout: execTimeout,
		logger:      logger.With().Str("component", "answer_scorer").Logger(),
	}
}

// ScoreText evaluates a free-text answer. Never fails: delegate faults fall
// back to the heuristic and the result is always within [0, 10].
func (s *AnswerScorer) ScoreText(ctx context.Context, questionText, answerText, category string) int {
	if strings.TrimSpace(answerText) == "" {
		return 0
	}

	heuristic := HeuristicScore(answerText)
	if s.generator == nil {
		return heuristic
	}

	ctx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	prompt := buildEvaluationPrompt(questionText, answerText, category)
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("answer evaluation failed, using heuristic")
		return heuristic
	}

	score, err := parseEvaluationScore(raw)
	if err != nil {
		s.logger.Warn().Err(err).Msg("unusable evaluation output, using heuristic")
		return heuristic
	}

	return score
}

// ScoreCode runs the submission and maps the outcome to 10 (pass) or 0
// (anything else). The flattened execution output is returned for storage.
func (s *AnswerScorer) ScoreCode(ctx context.Context, language, source string) (int, string) {
	if s.runner == nil {
		s.logger.Warn().Msg("no code runner configured, scoring submission as failed")
		return 0, "code execution unavailable"
	}

	result, err := s.runner.Run(ctx, coderun.RunRequest{
		Language: language,
		Source:   source,
		Timeout:  s.execTimeout,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("language", language).Msg("code execution failed")
		output := result.Output()
		if output == "" {
			output = err.Error()
		}
		return 0, output
	}

	if result.Succeeded() {
		return MaxScore, result.Output()
	}
	return 0, result.Output()
}

func buildEvaluationPrompt(questionText, answerText, category string) string {
	builder := strings.Builder{}
	builder.WriteString("You are an expert interview evaluator. Evaluate the candidate's answer to the question.\n\n")
	fmt.Fprintf(&builder, "Question type: %s\n", category)
	fmt.Fprintf(&builder, "Question: %s\n", questionText)
	fmt.Fprintf(&builder, "Candidate Answer: %s\n\n", answerText)
	builder.WriteString("Respond in strict JSON with one integer score from 0 to 10:\n")
	builder.WriteString(`{"score": 0}`)
	return builder.String()
}

func parseEvaluationScore(raw string) (int, error) {
	candidate := strings.TrimSpace(raw)

	var payload struct {
		Score *int `json:"score"`
	}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		extracted, ok := extractJSONObject(candidate)
		if !ok {
			return 0, fmt.Errorf("no json object in evaluation response")
		}
		if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
			return 0, fmt.Errorf("parse extracted evaluation json: %w", err)
		}
	}

	if payload.Score == nil {
		return 0, fmt.Errorf("evaluation response missing score")
	}

	score := *payload.Score
	if score < 0 {
		score = 0
	}
	if score > MaxScore {
		score = MaxScore
	}
	return score, nil
}
