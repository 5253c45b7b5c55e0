package middleware

import (
	"Murmur/internal/model"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/response"
	"Murmur/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

const credentialKey = "credential"

// AuthMiddleware 解析 token cookie 或 Bearer 头，将调用者身份注入 Context
func AuthMiddleware(resolver service.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := Credential(c)
		if credential == "" {
			response.Error(c, service.ErrUnauthorized)
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), credential)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(consts.IdentityKey, identity)
		c.Set(credentialKey, credential)
		c.Next()
	}
}

// Credential cookie 优先，其次 Authorization: Bearer
func Credential(c *gin.Context) string {
	if token, err := c.Cookie(consts.TokenCookie); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// CurrentIdentity 已认证的调用者，未经过 AuthMiddleware 时为 nil
func CurrentIdentity(c *gin.Context) *model.Identity {
	v, ok := c.Get(consts.IdentityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*model.Identity)
	return identity
}

// CurrentCredential 本次请求使用的令牌
func CurrentCredential(c *gin.Context) string {
	return c.GetString(credentialKey)
}
