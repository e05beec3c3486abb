package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/interviewai-go-api/internal/models"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func TestPlannerUsesGeneratedQuestion(t *testing.T) {
	gen := &stubGenerator{response: `{"category": "resume", "text": "Walk me through your last project.", "extra": {"topic": "projects"}}`}
	planner := NewQuestionPlanner(gen, time.Second, testLogger())

	planned := planner.Next(context.Background(), "resume text", "jd text", nil, 1)
	require.Equal(t, models.CategoryResume, planned.Category)
	require.Equal(t, "Walk me through your last project.", planned.Text)
	require.Equal(t, "projects", planned.Extra["topic"])

	require.Contains(t, gen.lastPrompt, "resume text")
	require.Contains(t, gen.lastPrompt, "jd text")
	require.Contains(t, gen.lastPrompt, "Current target category: resume")
}

func TestPlannerExtractsWrappedJSON(t *testing.T) {
	gen := &stubGenerator{response: "Here you go:\n```json\n{\"text\": \"Why this role?\"}\n```"}
	planner := NewQuestionPlanner(gen, time.Second, testLogger())

	planned := planner.Next(context.Background(), "", "", nil, 3)
	require.Equal(t, "Why this role?", planned.Text)
	// category omitted by the delegate defaults to the target
	require.Equal(t, models.CategoryBehavioral, planned.Category)
}

func TestPlannerFallsBackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream down")}
	planner := NewQuestionPlanner(gen, time.Second, testLogger())

	planned := planner.Next(context.Background(), "", "", nil, 0)
	require.Equal(t, models.CategoryIntro, planned.Category)
	require.Equal(t, fallbackPrompts[models.CategoryIntro], planned.Text)
}

func TestPlannerFallsBackOnInvalidOutput(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{name: "not json", response: "I would ask about their background."},
		{name: "missing text", response: `{"category": "coding"}`},
		{name: "empty text", response: `{"text": ""}`},
		{name: "bad category", response: `{"category": "trivia", "text": "Quick quiz!"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			planner := NewQuestionPlanner(&stubGenerator{response: tc.response}, time.Second, testLogger())

			planned := planner.Next(context.Background(), "", "", nil, 5)
			require.Equal(t, models.CategoryCoding, planned.Category)
			require.Equal(t, fallbackPrompts[models.CategoryCoding], planned.Text)
		})
	}
}

func TestPlannerNilGenerator(t *testing.T) {
	planner := NewQuestionPlanner(nil, time.Second, testLogger())

	planned := planner.Next(context.Background(), "", "", nil, 1)
	require.Equal(t, models.CategoryResume, planned.Category)
	require.Equal(t, fallbackPrompts[models.CategoryResume], planned.Text)
}

func TestPlannerHistoryInPrompt(t *testing.T) {
	gen := &stubGenerator{response: `{"text": "Next one."}`}
	planner := NewQuestionPlanner(gen, time.Second, testLogger())

	history := []HistoryPair{
		{Question: "Tell me about yourself.", Answer: "I am a backend engineer."},
		{Question: "Describe a project.", Answer: ""},
	}
	planner.Next(context.Background(), "", "", history, 2)

	require.Contains(t, gen.lastPrompt, "Tell me about yourself.")
	require.Contains(t, gen.lastPrompt, "I am a backend engineer.")
	require.Contains(t, gen.lastPrompt, "Describe a project.")
}

func TestExtractJSONObject(t *testing.T) {
	extracted, ok := extractJSONObject(`prefix {"a": {"b": "}"}} suffix`)
	require.True(t, ok)
	require.Equal(t, `{"a": {"b": "}"}}`, extracted)

	_, ok = extractJSONObject("no object here")
	require.False(t, ok)

	_, ok = extractJSONObject(`{"unbalanced": `)
	require.False(t, ok)
}
