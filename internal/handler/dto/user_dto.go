package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	"github.com/yourusername/interviewprep-api/internal/service"
)

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse - публичные данные пользователя
type UserResponse struct {
	ID              uuid.UUID `json:"_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	ProfileImageURL string    `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewUserResponse создает DTO пользователя
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
	}
}

// AuthResponse - пользователь и его токен
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// NewAuthResponse создает DTO результата регистрации или входа
func NewAuthResponse(res *service.AuthResult) *AuthResponse {
	return &AuthResponse{User: NewUserResponse(res.User), Token: res.Token}
}
