package logger

import (
	"Murmur/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"time"
)

var LogWriter io.Writer = os.Stdout

// InitLogger 初始化 slog，配置了 logstash 地址时同时上报远端
func InitLogger(cfg config.LogstashConfig) {
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})

	var finalHandler log.Handler = hStdout

	if cfg.Address != "" {
		conn, err := net.DialTimeout("tcp", cfg.Address, 3*time.Second)
		if err == nil {
			hRemote := log.NewJSONHandler(conn, &log.HandlerOptions{Level: log.LevelInfo}).
				WithAttrs([]log.Attr{
					log.String("target_index", cfg.Index),
					log.String("log_token", cfg.Token),
				})

			filterRemote := &RemoteFilterHandler{next: hRemote}

			finalHandler = &TeeHandler{
				handlers: []log.Handler{hStdout, filterRemote},
			}

			LogWriter = io.MultiWriter(os.Stdout, conn)
		} else {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		}
	}

	logger := log.New(&ContextHandler{finalHandler})
	log.SetDefault(logger)
}
