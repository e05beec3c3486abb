package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Interview lifecycle event names, published as subject suffixes.
const (
	InterviewStarted = "interview.started"
	AnswerScored     = "interview.answer.scored"
	InterviewEnded   = "interview.ended"
)

const defaultSubjectPrefix = "interviewai"

// Publisher emits lifecycle events for downstream consumers (analytics,
// notifications). Publishing is fire-and-forget: a broker fault never fails
// the request that triggered the event.
type Publisher interface {
	Publish(event string, payload interface{})
}

// NewNATSPublisher connects to the broker and returns a publisher bound to it.
func NewNATSPublisher(url string, logger zerolog.Logger) (Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("interviewai-api"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	return &natsPublisher{
		conn:   conn,
		prefix: defaultSubjectPrefix,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}, nil
}

type natsPublisher struct {
	conn   *nats.Conn
	prefix string
	logger zerolog.Logger
}

type envelope struct {
	Event      string      `json:"event"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

func (p *natsPublisher) Publish(event string, payload interface{}) {
	data, err := json.Marshal(envelope{
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		p.logger.Error().Err(err).Str("event", event).Msg("failed to marshal event payload")
		return
	}

	subject := fmt.Sprintf("%s.%s", p.prefix, event)
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}

// Noop returns a publisher that drops every event. Used when no broker is
// configured.
func Noop() Publisher {
	return noopPublisher{}
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}
