package api

import (
	"Murmur/internal/api/middleware"
	"Murmur/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, opts RouterOptions) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	logger.SetupGin(r, opts.LogIndex)
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.BodyLimitMiddleware(opts.MaxBodyBytes))
	r.Use(middleware.AuditMiddleware())

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "pong",
				"data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(group.Auth)
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/profile", group.UserHandler.GetProfile)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/stats/authors", group.PostHandler.GetPostCountsByAuthor)
			postGroup.GET("/author/:user_id", group.PostHandler.GetPostsByAuthor)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)

			authGroup := postGroup.Group("")
			authGroup.Use(group.Auth)
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.GET("/self", group.PostHandler.GetPostSelf)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.POST("/:post_id/like", group.PostActionHandler.ToggleLike)
				authGroup.POST("/:post_id/comments", group.PostActionHandler.AddComment)
			}
		}
	}

	return r
}
