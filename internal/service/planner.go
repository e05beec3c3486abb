package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/noah-isme/interviewai-go-api/internal/models"
	"github.com/noah-isme/interviewai-go-api/pkg/ai"
)

// plannedQuestionSchema constrains what the generation delegate may return.
// Category is optional (it defaults to the requested target) but must be a
// known value when present.
const plannedQuestionSchema = `{
	"type": "object",
	"properties": {
		"category": {"type": "string", "enum": ["intro", "resume", "behavioral", "coding"]},
		"text": {"type": "string", "minLength": 1},
		"extra": {"type": "object"}
	},
	"required": ["text"]
}`

// PlannedQuestion is the planner's output: always usable, never an error.
type PlannedQuestion struct {
	Category string
	Text     string
	Extra    map[string]interface{}
}

// HistoryPair is one prior exchange handed to the delegate as context. Answer
// is empty when the question has not been answered yet.
type HistoryPair struct {
	Question string
	Answer   string
}

// QuestionPlanner decides the next question from interview progress and,
// when a generator is configured, asks it to phrase the question against the
// resume, job description and prior exchanges.
type QuestionPlanner struct {
	generator ai.Generator
	timeout   time.Duration
	schema    *jsonschema.Schema
	logger    zerolog.Logger
}

// NewQuestionPlanner constructs a planner. A nil generator means every
// question comes from the canonical fallback prompts.
func NewQuestionPlanner(generator ai.Generator, timeout time.Duration, logger zerolog.Logger) *QuestionPlanner {
	schema := jsonschema.MustCompileString("planned_question.json", plannedQuestionSchema)

	if timeout <= 0 {
		timeout = 12 * time.Second
	}

	return &QuestionPlanner{
		generator: generator,
		timeout:   timeout,
		schema:    schema,
		logger:    logger.With().Str("component", "question_planner").Logger(),
	}
}

// Next plans the question for the given step. The delegate may override the
// target category (for instance to ask a follow-up); delegate failures, bad
// JSON and timeouts all degrade to the deterministic fallback prompt.
func (p *QuestionPlanner) Next(ctx context.Context, resumeText, jdText string, history []HistoryPair, step int) PlannedQuestion {
	expected := CategoryForStep(step)

	if p.generator == nil {
		return fallbackQuestion(expected)
	}

	prompt := buildQuestionPrompt(resumeText, jdText, history, expected)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		p.logger.Warn().Err(err).Str("category", expected).Msg("question generation failed, using fallback")
		return fallbackQuestion(expected)
	}

	planned, err := p.decodePlannedQuestion(raw, expected)
	if err != nil {
		p.logger.Warn().Err(err).Str("category", expected).Msg("unusable generation output, using fallback")
		return fallbackQuestion(expected)
	}

	return planned
}

func (p *QuestionPlanner) decodePlannedQuestion(raw, expected string) (PlannedQuestion, error) {
	candidate := strings.TrimSpace(raw)

	var decoded interface{}
	if err := json.Unmarshal([]byte(candidate), &decoded); err != nil {
		// The delegate often wraps the object in prose or a code fence.
		extracted, ok := extractJSONObject(candidate)
		if !ok {
			return PlannedQuestion{}, fmt.Errorf("no json object in response")
		}
		if err := json.Unmarshal([]byte(extracted), &decoded); err != nil {
			return PlannedQuestion{}, fmt.Errorf("parse extracted json: %w", err)
		}
		candidate = extracted
	}

	if err := p.schema.Validate(decoded); err != nil {
		return PlannedQuestion{}, fmt.Errorf("validate planned question: %w", err)
	}

	var payload struct {
		Category string                 `json:"category"`
		Text     string                 `json:"text"`
		Extra    map[string]interface{} `json:"extra"`
	}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return PlannedQuestion{}, err
	}

	if payload.Category == "" {
		payload.Category = expected
	}

	return PlannedQuestion{
		Category: payload.Category,
		Text:     payload.Text,
		Extra:    payload.Extra,
	}, nil
}

func fallbackQuestion(category string) PlannedQuestion {
	text, ok := fallbackPrompts[category]
	if !ok {
		text = fallbackPrompts[models.CategoryIntro]
	}
	return PlannedQuestion{Category: category, Text: text}
}

func buildQuestionPrompt(resumeText, jdText string, history []HistoryPair, expected string) string {
	builder := strings.Builder{}
	builder.WriteString("You are a professional interviewer simulating a real interview.\n\n")
	builder.WriteString("Resume:\n")
	builder.WriteString(resumeText)
	builder.WriteString("\n\nJob Description:\n")
	builder.WriteString(jdText)
	builder.WriteString("\n\nPrevious Q&A so far:\n")
	if len(history) == 0 {
		builder.WriteString("None")
	}
	for i, pair := range history {
		fmt.Fprintf(&builder, "Q%d: %s\nA%d: %s\n", i, pair.Question, i, pair.Answer)
	}
	builder.WriteString("\n\nNow generate the NEXT question.\n\nRules:\n")
	builder.WriteString("- Stay natural, like an HR/technical interviewer.\n")
	builder.WriteString("- If the last answer was shallow, you may ask a follow-up.\n")
	builder.WriteString("- Otherwise, move forward to the next category.\n")
	fmt.Fprintf(&builder, "- Current target category: %s\n", expected)
	builder.WriteString("- Response must be a valid JSON object with keys:\n")
	builder.WriteString("  - category: one of [intro, resume, behavioral, coding]\n")
	builder.WriteString("  - text: the question\n")
	builder.WriteString("  - extra: optional metadata object\n")
	return builder.String()
}

// extractJSONObject returns the first balanced top-level {...} substring.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
