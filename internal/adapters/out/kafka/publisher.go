// Package kafka publishes order domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ordering/adapters/kafka")

const (
	// HeaderEventName carries kernel.DomainEvent.EventName on every message.
	HeaderEventName = "event-name"
	// HeaderOccurredAt carries the event time in RFC 3339 with nanoseconds.
	HeaderOccurredAt = "occurred-at"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher writes each event as a JSON message keyed by its aggregate ID, so all events
// of one order land on the same partition in the order they were recorded.
type Publisher struct {
	writer *kafka.Writer
	topic  string
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingDestinationName(p.topic),
			attribute.Int("messaging.batch.message_count", len(events)),
		),
	)
	defer span.End()

	propagator := otel.GetTextMapPropagator()
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := toMessage(event)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		propagator.Inject(ctx, headerCarrier{msg: &msg})
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("write %d events to %s: %w", len(msgs), p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(event kernel.DomainEvent) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s: %w", event.EventName(), err)
	}

	return kafka.Message{
		Key:   []byte(event.AggregateID()),
		Value: data,
		Headers: []kafka.Header{
			{Key: HeaderEventName, Value: []byte(event.EventName())},
			{Key: HeaderOccurredAt, Value: []byte(event.OccurredAt().UTC().Format(time.RFC3339Nano))},
		},
		Time: event.OccurredAt(),
	}, nil
}
