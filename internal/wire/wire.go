package wire

import (
	"Murmur/internal/api"
	"Murmur/internal/api/config"
	"Murmur/internal/api/handler"
	"Murmur/internal/api/middleware"
	"Murmur/internal/job"
	"Murmur/internal/pkg/cron"
	"Murmur/internal/pkg/redis"
	"Murmur/internal/pkg/security"
	"Murmur/internal/repository"
	"Murmur/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *mongo.Database
	CronMgr *cron.Manager
}

// BuildApplication 手动依赖注入，所有客户端由调用方创建后传入
func BuildApplication(
	db *mongo.Database,
	rdb *redisv9.Client,
	media service.MediaStore,
	publisher service.EventPublisher,
	cfg *config.Config,
) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepo(db)
	userRepo := repository.NewUserRepo(db)

	tokenExpiry := time.Duration(cfg.JWT.ExpiryHour) * time.Hour
	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, tokenExpiry)
	revoked := redis.NewTokenStore(rdb)

	postService := service.NewPostService(postRepo, media, publisher)
	userService := service.NewUserService(userRepo, media, tokens, revoked)
	identityResolver := service.NewIdentityResolver(tokens, revoked, userRepo)

	maxUpload := cfg.Upload.MaxSizeMB << 20
	uploads := handler.NewTempUploader(cfg.Upload.TempDir, maxUpload)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService, uploads, tokenExpiry),
		PostHandler:       handler.NewPostHandler(postService, uploads),
		PostActionHandler: handler.NewPostActionHandler(postService),
		Auth:              middleware.AuthMiddleware(identityResolver),
	}

	router := api.SetupRouter(handlers, api.RouterOptions{
		LogIndex:     cfg.Logstash.Index,
		MaxBodyBytes: maxUpload + 1<<20,
	})

	cleanupJob := job.NewTempUploadCleanupJob(cfg.Upload.TempDir, time.Duration(cfg.Upload.MaxAgeMinutes)*time.Minute)
	cronMgr := cron.NewCronManager(cfg.Cron.TempCleanupSpec, cleanupJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
