package kafka

import (
	"Murmur/internal/api/config"
	"Murmur/internal/model"
	"Murmur/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// PostEventProducer 以帖子 ID 为 key 同步投递帖子事件，同一帖子的事件落在同一分区
type PostEventProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPostEventProducer 连接 broker
func NewPostEventProducer(cfg config.KafkaConfig) (*PostEventProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers not configured")
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	log.Info("Kafka producer connected", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return NewPostEventProducerWith(producer, cfg.Topic), nil
}

func NewPostEventProducerWith(producer sarama.SyncProducer, topic string) *PostEventProducer {
	return &PostEventProducer{producer: producer, topic: topic}
}

func (p *PostEventProducer) Publish(ctx context.Context, event *model.PostEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal post event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PostID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}
	if traceID := logger.TraceIDFrom(ctx); traceID != "" {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte(logger.TraceIDKey), Value: []byte(traceID)})
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send post event: %w", err)
	}
	log.DebugContext(ctx, "post event sent", "type", event.Type, "partition", partition, "offset", offset)
	return nil
}

func (p *PostEventProducer) Close() error {
	return p.producer.Close()
}
