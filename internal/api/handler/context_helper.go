package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Akhil-Baki/ai-study-pilot/pkg/jwt"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/response"
)

// Context keys populated by middleware.JWTAuth
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxClaims   = "claims"
)

// MustGetUserID extracts the authenticated user id.
// Writes a 401 and returns false when the JWT middleware did not run; callers return immediately.
func MustGetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return 0, false
	}
	id, ok := v.(int64)
	if !ok || id <= 0 {
		response.Unauthorized(c, 10002, "unauthenticated")
		return 0, false
	}
	return id, true
}

// GetClaims access token claims of the current request, nil when absent
func GetClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get(CtxClaims)
	if !exists {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// ParseIDParam reads a positive integer path parameter; writes a 400 on failure
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "invalid "+name)
		return 0, false
	}
	return id, true
}
