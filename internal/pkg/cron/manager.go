package cron

import (
	"Murmur/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	cleanupSpec    string
	tempCleanupJob *job.TempUploadCleanupJob
}

func NewCronManager(cleanupSpec string, tempCleanupJob *job.TempUploadCleanupJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		cleanupSpec:    cleanupSpec,
		tempCleanupJob: tempCleanupJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.cleanupSpec, s.tempCleanupJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron engine stopping")
	<-s.engine.Stop().Done()
}
