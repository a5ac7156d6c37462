package dto

import (
	"time"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
)

type UserResponse struct {
	UserID       string    `json:"userID"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AuthProvider string    `json:"authProvider"`
	LastLoginAt  time.Time `json:"lastLoginAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Email:        user.Email,
		Name:         user.Name,
		AuthProvider: string(user.AuthProvider),
		LastLoginAt:  user.LastLoginAt,
	}
}
