package nats

import (
	"Murmur/internal/api/config"
	"Murmur/internal/model"
	"Murmur/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

// TraceHeader 透传请求链路 ID
const TraceHeader = "X-Trace-ID"

type msgPublisher interface {
	PublishMsg(msg *nats.Msg) error
}

// PostEventPublisher 按 <prefix>.<type> 主题发布帖子事件
type PostEventPublisher struct {
	conn   msgPublisher
	prefix string
	closer func()
}

// Connect 连接 NATS，断线后自动重连
func Connect(cfg config.NatsConfig) (*PostEventPublisher, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("murmur"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", "err", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	log.Info("NATS connected", "url", cfg.URL)

	p := NewPostEventPublisher(nc, cfg.SubjectPrefix)
	p.closer = func() {
		if err := nc.Drain(); err != nil {
			log.Warn("NATS drain failed", "err", err)
		}
	}
	return p, nil
}

func NewPostEventPublisher(conn msgPublisher, prefix string) *PostEventPublisher {
	if prefix == "" {
		prefix = "post"
	}
	return &PostEventPublisher{conn: conn, prefix: prefix}
}

// Subject 事件主题，例如 post.created
func (p *PostEventPublisher) Subject(eventType string) string {
	return p.prefix + "." + eventType
}

func (p *PostEventPublisher) Publish(ctx context.Context, event *model.PostEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal post event: %w", err)
	}

	msg := &nats.Msg{
		Subject: p.Subject(event.Type),
		Data:    data,
		Header:  nats.Header{},
	}
	if traceID := logger.TraceIDFrom(ctx); traceID != "" {
		msg.Header.Set(TraceHeader, traceID)
	}

	if err = p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}
	log.DebugContext(ctx, "post event published", "subject", msg.Subject, "post_id", event.PostID)
	return nil
}

func (p *PostEventPublisher) Close() error {
	if p.closer != nil {
		p.closer()
	}
	return nil
}
