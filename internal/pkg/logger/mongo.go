package logger

import (
	"context"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

const mongoCmdLimit = 1000

// 握手与心跳命令不记录
var mongoQuietCommands = map[string]struct{}{
	"hello":        {},
	"isMaster":     {},
	"ping":         {},
	"saslStart":    {},
	"saslContinue": {},
	"endSessions":  {},
}

func NewMongoMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			if _, quiet := mongoQuietCommands[evt.CommandName]; quiet {
				return
			}
			log.InfoContext(ctx, "MongoDB Started",
				log.String("command", evt.CommandName),
				log.String("database", evt.DatabaseName),
				log.String("request_id", strconv.FormatInt(evt.RequestID, 10)),
				log.String("cmd_detail", redactCommand(evt.Command.String())),
			)
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			if _, quiet := mongoQuietCommands[evt.CommandName]; quiet {
				return
			}
			fields := []any{
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.String("request_id", strconv.FormatInt(evt.RequestID, 10)),
			}

			if evt.Duration > 200*time.Millisecond {
				log.WarnContext(ctx, "MongoDB Slow", fields...)
			} else {
				log.DebugContext(ctx, "MongoDB Success", fields...)
			}
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "MongoDB Error",
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.String("request_id", strconv.FormatInt(evt.RequestID, 10)),
				log.Any("err", evt.Failure),
			)
		},
	}
}

// redactCommand 用户文档带有密码哈希，整条命令不落日志
func redactCommand(cmd string) string {
	if strings.Contains(cmd, `"password"`) {
		return "[REDACTED]"
	}
	if len(cmd) > mongoCmdLimit {
		return cmd[:mongoCmdLimit] + "...[truncated]"
	}
	return cmd
}
