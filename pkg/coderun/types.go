package coderun

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrUnsupportedLanguage indicates the requested language has no runner mapping.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Runner executes untrusted candidate code and reports the outcome.
type Runner interface {
	Run(ctx context.Context, req RunRequest) (RunResult, error)
}

// RunRequest describes one code execution.
type RunRequest struct {
	Language string
	Source   string
	Stdin    string
	Timeout  time.Duration
}

// RunResult summarises the outcome of a code execution.
type RunResult struct {
	Stdout        string
	Stderr        string
	CompileOutput string
	ExitCode      int
	Duration      time.Duration
	TimedOut      bool
}

// Succeeded reports whether the execution counts as a pass: the program
// compiled, exited cleanly, wrote something to stdout and nothing to stderr.
func (r RunResult) Succeeded() bool {
	if r.TimedOut || r.ExitCode != 0 {
		return false
	}
	if r.CompileOutput != "" || strings.TrimSpace(r.Stderr) != "" {
		return false
	}
	return strings.TrimSpace(r.Stdout) != ""
}

// Output flattens the result into a single transcript-friendly string.
func (r RunResult) Output() string {
	parts := make([]string, 0, 3)
	if r.CompileOutput != "" {
		parts = append(parts, r.CompileOutput)
	}
	if r.Stdout != "" {
		parts = append(parts, r.Stdout)
	}
	if r.Stderr != "" {
		parts = append(parts, r.Stderr)
	}
	if r.TimedOut {
		parts = append(parts, "execution timed out")
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
