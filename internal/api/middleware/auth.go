package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Akhil-Baki/ai-study-pilot/pkg/jwt"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/response"
)

// Context keys shared with handler.MustGetUserID
const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
	ctxClaims   = "claims"
)

// TokenBlacklist revoked-token lookup, backed by Redis in production
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth validates the Authorization: Bearer <token> access token.
// blacklist may be nil, in which case revocation is not checked.
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != jwt.TokenTypeAccess {
			response.Unauthorized(c, 10002, "wrong token type")
			c.Abort()
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Set(ctxClaims, claims)

		c.Next()
	}
}
