package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Murmur/internal/model"
	"Murmur/internal/pkg/logger"
)

type recordingConn struct {
	msgs []*nats.Msg
	err  error
}

func (c *recordingConn) PublishMsg(msg *nats.Msg) error {
	c.msgs = append(c.msgs, msg)
	return c.err
}

func TestPublishSubjectAndPayload(t *testing.T) {
	conn := &recordingConn{}
	p := NewPostEventPublisher(conn, "post")

	ctx := logger.WithTraceID(context.Background(), "trace-9")
	require.NoError(t, p.Publish(ctx, &model.PostEvent{Type: model.PostEventCreated, PostID: "p1", Content: "hi"}))

	require.Len(t, conn.msgs, 1)
	msg := conn.msgs[0]
	assert.Equal(t, "post.created", msg.Subject)
	assert.Equal(t, "trace-9", msg.Header.Get(TraceHeader))

	var evt model.PostEvent
	require.NoError(t, json.Unmarshal(msg.Data, &evt))
	assert.Equal(t, "p1", evt.PostID)
	assert.Equal(t, "hi", evt.Content)
}

func TestPublishError(t *testing.T) {
	conn := &recordingConn{err: nats.ErrConnectionClosed}
	p := NewPostEventPublisher(conn, "")

	err := p.Publish(context.Background(), &model.PostEvent{Type: model.PostEventDeleted, PostID: "p1"})
	assert.True(t, errors.Is(err, nats.ErrConnectionClosed))
	assert.Equal(t, "post.deleted", conn.msgs[0].Subject)
}
