package events

import (
	"Murmur/internal/api/config"
	"Murmur/internal/model"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/kafka"
	"Murmur/internal/pkg/nats"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"strings"
)

// Publisher 帖子事件发布器，Close 在进程退出时调用
type Publisher interface {
	Publish(ctx context.Context, event *model.PostEvent) error
	io.Closer
}

// Noop 不投递任何事件
type Noop struct{}

func (Noop) Publish(context.Context, *model.PostEvent) error { return nil }

func (Noop) Close() error { return nil }

// NewPublisher 按 events.driver 选择投递方式
func NewPublisher(cfg *config.Config) (Publisher, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Events.Driver))
	switch driver {
	case "", consts.EventsDriverNone:
		log.Info("post events disabled")
		return Noop{}, nil
	case consts.EventsDriverKafka:
		producer, err := kafka.NewPostEventProducer(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		return producer, nil
	case consts.EventsDriverNats:
		publisher, err := nats.Connect(cfg.Nats)
		if err != nil {
			return nil, err
		}
		return publisher, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Events.Driver)
	}
}
