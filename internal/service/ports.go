package service

import (
	"Murmur/internal/model"
	"context"
	"time"
)

// MediaStore 外部媒体存储，Upload 在未提供文件时返回 (nil, nil)
type MediaStore interface {
	Upload(ctx context.Context, localPath string) (*model.MediaAsset, error)
	Delete(ctx context.Context, referenceID string) error
}

// EventPublisher 帖子状态变更通知
type EventPublisher interface {
	Publish(ctx context.Context, event *model.PostEvent) error
}

// TokenRevocationStore 注销令牌名单
type TokenRevocationStore interface {
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
	IsRevoked(ctx context.Context, signature string) (bool, error)
}
