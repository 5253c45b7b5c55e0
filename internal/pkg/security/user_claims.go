package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims 令牌中只携带用户 ID
type UserClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}
