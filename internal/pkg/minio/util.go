package minio

import (
	"Murmur/internal/model"
	"Murmur/internal/pkg/util"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

var (
	ErrUpload = errors.New("media upload failed")
	ErrDelete = errors.New("media delete failed")
)

// objectClient *minio.Client 中用到的部分
type objectClient interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Store 媒体存储适配器
type Store struct {
	client            objectClient
	bucket            string
	publicBase        string
	maxImageDimension int
}

func NewStore(client objectClient, bucket, publicBase string, maxImageDimension int) *Store {
	return &Store{
		client:            client,
		bucket:            bucket,
		publicBase:        strings.TrimRight(publicBase, "/"),
		maxImageDimension: maxImageDimension,
	}
}

// Upload 上传本地文件，未提供文件时返回 (nil, nil)。
// 只要给了路径，无论成功失败本地文件都会在返回前删除。
func (s *Store) Upload(ctx context.Context, localPath string) (*model.MediaAsset, error) {
	if localPath == "" {
		return nil, nil
	}
	defer removeLocal(ctx, localPath)

	contentType, ext, err := util.DetectMediaType(localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	if s.maxImageDimension > 0 && util.IsResizableImage(contentType) {
		resized, err := util.ShrinkImage(localPath, s.maxImageDimension)
		if err != nil {
			log.WarnContext(ctx, "image downscale skipped", "path", localPath, "err", err)
		} else if resized {
			log.InfoContext(ctx, "image downscaled before upload", "path", localPath, "max", s.maxImageDimension)
		}
	}

	if fileExt := filepath.Ext(localPath); fileExt != "" {
		ext = strings.ToLower(fileExt)
	}
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	_, err = s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "object", objectName, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return &model.MediaAsset{
		URL:         s.PublicURL(objectName),
		ReferenceID: objectName,
	}, nil
}

// Delete 按 ReferenceID 删除远端对象
func (s *Store) Delete(ctx context.Context, referenceID string) error {
	if referenceID == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, referenceID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDelete, referenceID, err)
	}
	return nil
}

// PublicURL 获取对象的公共访问URL
func (s *Store) PublicURL(objectName string) string {
	return s.publicBase + "/" + objectName
}

func removeLocal(ctx context.Context, localPath string) {
	if err := os.Remove(localPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.ErrorContext(ctx, "failed to delete local file", "path", localPath, "err", err)
	}
}
