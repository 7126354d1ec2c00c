// File: internal/dto/admin.go
package dto

import "time"

// swagger:model dto.AdminTokenRequest
type AdminTokenRequest struct {
	Password string `form:"password" validate:"required" example:"Secret123!"`
}

// swagger:model dto.AdminTokenResponse
type AdminTokenResponse struct {
	AccessToken string    `json:"access_token" example:"eyJhbGciOi..."`
	TokenType   string    `json:"token_type" example:"Bearer"`
	ExpiresAt   time.Time `json:"expires_at" example:"2025-05-09T15:04:05Z"`
}

// swagger:model dto.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"shutting down"`
}

// swagger:model dto.PurgeResponse
type PurgeResponse struct {
	Purged int64 `json:"purged" example:"3"`
}
