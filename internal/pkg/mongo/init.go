package mongo

import (
	"Murmur/internal/api/config"
	"Murmur/internal/model"
	"Murmur/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo 建立连接并返回 Database 引用，同时初始化索引
func InitMongo(cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.Database)
	if err = EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}

	log.Info("MongoDB initialized successfully", "db", cfg.Database)
	return db, nil
}

// EnsureIndexes 帖子按时间倒序与作者查询，用户邮箱与用户名唯一
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(model.Post{}.CollectionName()).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create post indexes: %w", err)
	}

	_, err = db.Collection(model.User{}.CollectionName()).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userName", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

// Close 断开连接
func Close(ctx context.Context, db *mongo.Database) {
	if db == nil {
		return
	}
	if err := db.Client().Disconnect(ctx); err != nil {
		log.Error("MongoDB disconnect failed", "err", err)
	}
}
