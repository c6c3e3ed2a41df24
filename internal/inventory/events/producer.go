// Package events publishes job lifecycle events to Kafka. Delivery is
// best-effort from the engine's perspective: a committed job is never rolled
// back because its event failed to send; failed sends are retried with
// exponential backoff and dropped with a log entry once retries are spent.
package events

import (
	"context"
	"encoding/json"

	"github.com/cenkalti/backoff/v4"
	"github.com/resinworks/jobstock/internal/inventory/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	JobCreated           EventType = "job_created"
	JobMaterialsReplaced EventType = "job_materials_replaced"
	JobStatusChanged     EventType = "job_status_changed"
)

type Event struct {
	Type EventType
	Job  *models.Job
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer     KafkaWriter
	events     chan Event
	logger     *zap.Logger
	closeChan  chan struct{}
	maxRetries uint64
}

func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
	}

	err = conn.CreateTopics(topicConfigs...)
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}
	p := &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			Topic:    topic,
		},
		events:     make(chan Event, 1000),
		logger:     logger.Named("job_events"),
		closeChan:  make(chan struct{}),
		maxRetries: 5,
	}

	go p.eventLoop()
	return p, nil
}

// Produce enqueues an event without blocking the caller. A full queue drops
// the event with a warning rather than stalling a request.
func (p *Producer) Produce(eventType EventType, job *models.Job) {
	select {
	case p.events <- Event{Type: eventType, Job: job}:
	default:
		p.logger.Warn("event queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("job_id", job.ID.String()),
		)
	}
}

func (p *Producer) eventLoop() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("failed to serialize event",
			zap.Error(err),
			zap.String("job_id", event.Job.ID.String()),
		)
		return
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.maxRetries)
	err = backoff.Retry(func() error {
		return p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(event.Job.ID.String()),
			Value: value,
		})
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		p.logger.Error("failed to produce event, giving up",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("job_id", event.Job.ID.String()),
		)
	}
}

func (p *Producer) Close() {
	close(p.closeChan)
	if err := p.writer.Close(); err != nil {
		p.logger.Error("failed to close kafka writer", zap.Error(err))
	}
}
