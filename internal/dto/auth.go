package dto

// ── auth DTO ──

// RegisterRequest account registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest logout; the refresh token is revoked too when supplied
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
