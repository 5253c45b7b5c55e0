package handler

import (
	"Murmur/internal/service"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TempUploader 将 multipart 文件缓存到本地临时目录，交给媒体存储上传
type TempUploader struct {
	dir      string
	maxBytes int64
}

func NewTempUploader(dir string, maxBytes int64) *TempUploader {
	return &TempUploader{dir: dir, maxBytes: maxBytes}
}

// Save 未上传文件时返回空串
func (u *TempUploader) Save(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", service.ErrMediaUpload, err)
	}
	if u.maxBytes > 0 && file.Size > u.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", service.ErrMediaUpload, u.maxBytes)
	}

	if err = os.MkdirAll(u.dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(u.dir, uuid.NewString()+strings.ToLower(path.Ext(file.Filename)))
	if err = c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}

	log.DebugContext(c.Request.Context(), "upload buffered", "field", field, "path", dst, "size", file.Size)
	return dst, nil
}

// Discard 请求结束时兜底删除，媒体存储已删除的文件直接忽略
func (u *TempUploader) Discard(c *gin.Context, localPath string) {
	if localPath == "" {
		return
	}
	if err := os.Remove(localPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WarnContext(c.Request.Context(), "failed to discard temp upload", "path", localPath, "err", err)
	}
}
