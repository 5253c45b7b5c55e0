package cron

import (
	"fmt"
	log "log/slog"
)

// InitCron 注册全部任务后启动调度
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}
	mgr.Start()
	log.Info("Cron jobs scheduled", "entries", mgr.Entries(), "temp_cleanup_spec", mgr.cleanupSpec)
	return nil
}
