package job

import (
	"errors"
	log "log/slog"
	"os"
	"path/filepath"
	"time"
)

// TempUploadCleanupJob 清理请求异常中断后遗留在临时目录中的上传文件
type TempUploadCleanupJob struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

func NewTempUploadCleanupJob(dir string, maxAge time.Duration) *TempUploadCleanupJob {
	return &TempUploadCleanupJob{
		dir:    dir,
		maxAge: maxAge,
		now:    time.Now,
	}
}

func (s *TempUploadCleanupJob) Run() {
	removed, err := s.Sweep()
	if err != nil {
		log.Error("temp upload cleanup failed", "dir", s.dir, "err", err)
		return
	}
	if removed > 0 {
		log.Info("temp upload cleanup finished", "dir", s.dir, "removed", removed)
	}
}

// Sweep 删除修改时间早于 maxAge 的普通文件，返回删除数量
func (s *TempUploadCleanupJob) Sweep() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn("failed to remove stale upload", "path", path, "err", err)
			continue
		}
		removed++
	}
	return removed, nil
}
