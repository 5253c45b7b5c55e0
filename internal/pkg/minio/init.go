package minio

import (
	"Murmur/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// 匿名只读策略，帖子图片通过公开 URL 访问
const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// Init 创建 MinIO 客户端并确保存储桶存在
func Init(cfg config.MinIOConfig, mediaCfg config.MediaConfig) (*Store, error) {
	endpoint := cfg.InternalEndpoint
	useSSL := cfg.InternalUseSSL
	if endpoint == "" {
		endpoint = cfg.ExternalEndpoint
		useSSL = cfg.ExternalUseSSL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = ensureBucket(ctx, client, cfg.Bucket); err != nil {
		return nil, err
	}

	external := cfg.ExternalEndpoint
	if external == "" {
		external = endpoint
	}
	scheme := "http"
	if cfg.ExternalUseSSL {
		scheme = "https"
	}
	publicBase := fmt.Sprintf("%s://%s/%s", scheme, external, cfg.Bucket)

	return NewStore(client, cfg.Bucket, publicBase, mediaCfg.MaxImageDimension), nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if exists {
		return nil
	}

	if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	if err = client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
		return fmt.Errorf("set bucket policy %s: %w", bucket, err)
	}
	log.Info("MinIO bucket created", "bucket", bucket)
	return nil
}
