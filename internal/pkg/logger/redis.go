package logger

import (
	"context"
	"errors"
	log "log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisLoggerHook struct{}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{}
}

// DialHook 记录建立连接失败
func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

// ProcessHook 只记录错误与慢命令，参数中可能含令牌签名，不输出
func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		fields := []any{
			log.String("command", cmd.Name()),
			log.Int("argc", len(cmd.Args())),
			log.Duration("latency", elapsed),
		}

		switch {
		case err != nil && !errors.Is(err, redis.Nil):
			log.ErrorContext(ctx, "Redis Error", append(fields, log.Any("err", err))...)
		case elapsed > 100*time.Millisecond:
			log.WarnContext(ctx, "Redis Slow", fields...)
		}

		return err
	}
}

// ProcessPipelineHook 记录管道执行失败
func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil {
			log.ErrorContext(ctx, "Redis Pipeline Error",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err))
		}
		return err
	}
}
