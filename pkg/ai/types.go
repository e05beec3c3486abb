package ai

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generator describes an LLM capable of turning a prompt into text. All
// interview-specific prompting lives in the callers; adapters stay thin.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	genDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "iva",
		Subsystem: "ai",
		Name:      "generation_duration_seconds",
		Help:      "Duration of LLM generation requests",
	}, []string{"provider", "model"})

	genFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iva",
		Subsystem: "ai",
		Name:      "generation_failures_total",
		Help:      "Number of LLM generation failures",
	}, []string{"provider", "model"})
)
