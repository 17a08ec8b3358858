package dto

import "time"

// RegisterRequest 註冊請求，不接受管理員旗標
// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required" example:"Ann"`
	Email    string `json:"email" form:"email" validate:"required,email" example:"ann@example.com"`
	Password string `json:"password" form:"password" validate:"required" example:"s3cret"`
}

// LoginRequest 登入請求
// swagger:model dto.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" example:"ann@example.com"`
	Password string `json:"password" form:"password" validate:"required" example:"s3cret"`
}

// AuthResponse is returned by register and login.
// swagger:model dto.AuthResponse
type AuthResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserCountResponse 使用者總數
// swagger:model dto.UserCountResponse
type UserCountResponse struct {
	TotalUsers int64 `json:"totalUsers" example:"42"`
}
