package repository

import (
	"context"
	"fmt"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/domain/repository"
	pkgkafka "PriceCast/pkg/kafka"
)

// KafkaRecordPublisher emits validated records to a Kafka topic, one message
// per record, keyed by timestamp for stable partitioning.
type KafkaRecordPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaRecordPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaRecordPublisher{producer: producer, topic: topic}
}

func (p *KafkaRecordPublisher) PublishBatch(ctx context.Context, records []models.PricingRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(records))
	for _, r := range records {
		msgs = append(msgs, pkgkafka.Message{
			Key:   []byte(fmt.Sprintf("%d", r.Timestamp.UnixNano())),
			Value: r,
		})
	}
	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish records: %w", err)
	}
	return nil
}

func (p *KafkaRecordPublisher) Close() error {
	return p.producer.Close()
}
