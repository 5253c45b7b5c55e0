package api

import (
	"Murmur/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	PostHandler       *handler.PostHandler
	PostActionHandler *handler.PostActionHandler
	// Auth 鉴权中间件
	Auth gin.HandlerFunc
}

// RouterOptions 路由层配置
type RouterOptions struct {
	LogIndex     string
	MaxBodyBytes int64
}
