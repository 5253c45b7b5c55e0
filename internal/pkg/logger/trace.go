package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey gin.Context 与日志字段中使用的键
const TraceIDKey = "trace_id"

type traceCtxKey struct{}

// WithTraceID 将 traceID 写入 ctx
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceCtxKey{}, traceID)
}

// TraceIDFrom 读取 ctx 中的 traceID，不存在时返回空串
func TraceIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceCtxKey{}).(string)
	return id
}

// ContextHandler 包装器，用于从 ctx 中提取 trace_id
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if traceID := TraceIDFrom(ctx); traceID != "" {
		r.AddAttrs(log.String(TraceIDKey, traceID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}
