package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/interviewai-go-api/pkg/coderun"
)

type stubRunner struct {
	result  coderun.RunResult
	err     error
	lastReq coderun.RunRequest
}

func (r *stubRunner) Run(_ context.Context, req coderun.RunRequest) (coderun.RunResult, error) {
	r.lastReq = req
	return r.result, r.err
}

func TestScoreTextUsesEvaluator(t *testing.T) {
	gen := &stubGenerator{response: `{"score": 8}`}
	scorer := NewAnswerScorer(gen, nil, time.Second, time.Second, testLogger())

	score := scorer.ScoreText(context.Background(), "Tell me about yourself.", "I build APIs.", "intro")
	require.Equal(t, 8, score)
	require.Contains(t, gen.lastPrompt, "Tell me about yourself.")
	require.Contains(t, gen.lastPrompt, "I build APIs.")
}

func TestScoreTextClampsEvaluatorOutput(t *testing.T) {
	cases := []struct {
		name     string
		response string
		expected int
	}{
		{name: "above max", response: `{"score": 97}`, expected: 10},
		{name: "negative", response: `{"score": -2}`, expected: 0},
		{name: "wrapped in prose", response: "Verdict: {\"score\": 6}", expected: 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer := NewAnswerScorer(&stubGenerator{response: tc.response}, nil, time.Second, time.Second, testLogger())
			score := scorer.ScoreText(context.Background(), "q", "some reasonable answer", "resume")
			require.Equal(t, tc.expected, score)
		})
	}
}

func TestScoreTextFallsBackToHeuristic(t *testing.T) {
	answer := "this answer has exactly ten words in it right here okay sure more words to push it past twenty words total now"

	cases := []struct {
		name string
		gen  *stubGenerator
	}{
		{name: "generator error", gen: &stubGenerator{err: errors.New("down")}},
		{name: "no score field", gen: &stubGenerator{response: `{"verdict": "fine"}`}},
		{name: "not json", gen: &stubGenerator{response: "a solid 7 out of 10"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer := NewAnswerScorer(tc.gen, nil, time.Second, time.Second, testLogger())
			score := scorer.ScoreText(context.Background(), "q", answer, "behavioral")
			require.Equal(t, HeuristicScore(answer), score)
		})
	}
}

func TestScoreTextEmptyAnswer(t *testing.T) {
	scorer := NewAnswerScorer(&stubGenerator{response: `{"score": 9}`}, nil, time.Second, time.Second, testLogger())
	require.Equal(t, 0, scorer.ScoreText(context.Background(), "q", "   ", "intro"))
}

func TestScoreTextNilGenerator(t *testing.T) {
	scorer := NewAnswerScorer(nil, nil, time.Second, time.Second, testLogger())
	require.Equal(t, 1, scorer.ScoreText(context.Background(), "q", "short answer", "intro"))
}

func TestScoreCodePass(t *testing.T) {
	runner := &stubRunner{result: coderun.RunResult{Stdout: "42\n", ExitCode: 0}}
	scorer := NewAnswerScorer(nil, runner, time.Second, 5*time.Second, testLogger())

	score, output := scorer.ScoreCode(context.Background(), "python", "print(42)")
	require.Equal(t, MaxScore, score)
	require.Equal(t, "42", output)
	require.Equal(t, "python", runner.lastReq.Language)
	require.Equal(t, 5*time.Second, runner.lastReq.Timeout)
}

func TestScoreCodeFailure(t *testing.T) {
	cases := []struct {
		name   string
		result coderun.RunResult
	}{
		{name: "nonzero exit", result: coderun.RunResult{Stderr: "Traceback", ExitCode: 1}},
		{name: "timeout", result: coderun.RunResult{TimedOut: true}},
		{name: "compile error", result: coderun.RunResult{CompileOutput: "syntax error"}},
		{name: "empty stdout", result: coderun.RunResult{ExitCode: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer := NewAnswerScorer(nil, &stubRunner{result: tc.result}, time.Second, time.Second, testLogger())
			score, _ := scorer.ScoreCode(context.Background(), "python", "bad code")
			require.Equal(t, 0, score)
		})
	}
}

func TestScoreCodeRunnerError(t *testing.T) {
	scorer := NewAnswerScorer(nil, &stubRunner{err: errors.New("docker unavailable")}, time.Second, time.Second, testLogger())

	score, output := scorer.ScoreCode(context.Background(), "python", "print(1)")
	require.Equal(t, 0, score)
	require.NotEmpty(t, output)
}

func TestScoreCodeNoRunner(t *testing.T) {
	scorer := NewAnswerScorer(nil, nil, time.Second, time.Second, testLogger())

	score, output := scorer.ScoreCode(context.Background(), "python", "print(1)")
	require.Equal(t, 0, score)
	require.Equal(t, "code execution unavailable", output)
}
