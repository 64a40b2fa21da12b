// Package events publishes domain events to Kafka-compatible brokers.
// Publishing is best effort: callers log failures and move on, so a broker
// outage never blocks recruiter or candidate requests.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// TopicEvents is the topic all hiring events land on; the Kind field
// discriminates consumers.
const TopicEvents = "hiring-events"

// Producer wraps a Kafka producer and implements domain.EventPublisher.
type Producer struct {
	client *kgo.Client
}

// NewProducer connects to the given brokers. The topic is expected to exist
// or auto-creation to be enabled broker-side.
func NewProducer(brokers []string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no seed brokers provided")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequestRetries(5),
		kgo.ProducerBatchMaxBytes(1000000),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	slog.Info("event producer created", slog.Any("brokers", brokers))
	return &Producer{client: client}, nil
}

type eventPayload struct {
	Kind         string    `json:"kind"`
	OrgID        string    `json:"org_id"`
	CandidateID  string    `json:"candidate_id,omitempty"`
	TestID       string    `json:"test_id,omitempty"`
	InviteID     string    `json:"invite_id,omitempty"`
	SubmissionID string    `json:"submission_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publish produces one record keyed by org so per-org ordering holds.
func (p *Producer) Publish(ctx domain.Context, ev domain.Event) error {
	b, err := json.Marshal(eventPayload{
		Kind:         ev.Kind,
		OrgID:        ev.OrgID,
		CandidateID:  ev.CandidateID,
		TestID:       ev.TestID,
		InviteID:     ev.InviteID,
		SubmissionID: ev.SubmissionID,
		OccurredAt:   ev.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	record := &kgo.Record{
		Topic: TopicEvents,
		Key:   []byte(ev.OrgID),
		Value: b,
		Headers: []kgo.RecordHeader{
			{Key: "kind", Value: []byte(ev.Kind)},
		},
	}
	res := p.client.ProduceSync(ctx, record)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("produce event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying client.
func (p *Producer) Close() error {
	if p.client != nil {
		p.client.Close()
	}
	return nil
}

// NopPublisher drops all events; used when no brokers are configured and in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(domain.Context, domain.Event) error { return nil }
