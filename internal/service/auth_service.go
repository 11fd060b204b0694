package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	"github.com/yourusername/interviewprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
)

// MinPasswordLength - минимальная длина пароля
const MinPasswordLength = 6

const msgInvalidCredentials = "Invalid email or password"

// TokenIssuer выпускает access-токены
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
}

// RegisterInput содержит данные для регистрации
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ProfileImageURL string
}

// AuthResult - пользователь и выданный ему токен
type AuthResult struct {
	User  *entity.User
	Token string
}

// AuthService предоставляет методы регистрации и входа
type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	log      *logger.Logger
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создает пользователя и выдает токен
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, apperrors.New(apperrors.ErrMissingField, "Name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.New(apperrors.ErrValidation, "Invalid email address")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Password must be at least %d characters", MinPasswordLength)
	}

	user := &entity.User{
		Name:            name,
		Email:           email,
		Password:        in.Password, // хешируется в BeforeSave
		ProfileImageURL: strings.TrimSpace(in.ProfileImageURL),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.New(apperrors.ErrConflict, "User already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.Info("[AuthService] user registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login проверяет учетные данные. Неизвестный email и неверный пароль
// дают одинаковую ошибку.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.New(apperrors.ErrMissingField, "Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrUnauthorized, msgInvalidCredentials)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if !user.CheckPassword(password) {
		s.log.Debug("[AuthService] password mismatch", "user_id", user.ID)
		return nil, apperrors.New(apperrors.ErrUnauthorized, msgInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Profile возвращает пользователя по ID
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}
