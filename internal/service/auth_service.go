package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
	"github.com/yourusername/curioscope-api/internal/domain/repository"
	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
	"github.com/yourusername/curioscope-api/internal/session"
	"github.com/yourusername/curioscope-api/pkg/auth"
)

// AuthService предоставляет методы для работы с аутентификацией и пользователями
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	sessions   *session.Store
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessions *session.Store) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session.Store is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
	}, nil
}

// Register регистрирует нового пользователя.
// Имя пользователя регистрозависимое; занятое имя — apperrors.ErrAlreadyExists.
func (s *AuthService) Register(username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}

	user := &entity.User{
		Username: username,
		Password: password, // хешируется в entity.User.BeforeSave
	}

	// Уникальность проверяет индекс БД: TOCTOU-гонки здесь нет
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrAlreadyExists, username)
		}
		log.Printf("[AuthService] Ошибка при создании пользователя %q: %v", username, err)
		return nil, err
	}

	return user, nil
}

// Login проверяет учетные данные и возвращает пользователя и access-токен.
// Неизвестное имя и неверный пароль дают одинаковую ошибку ErrUnauthorized.
func (s *AuthService) Login(username, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Printf("[AuthService] Ошибка при генерации токена для пользователя %d: %v", user.ID, err)
		return nil, "", err
	}

	// Вход всегда начинает сессию с чистого Idle
	s.sessions.Delete(user.ID)
	s.sessions.GetOrCreate(user.ID, user.Username)

	return user, token, nil
}

// Logout удаляет сессию пользователя вместе со всем ее состоянием
func (s *AuthService) Logout(userID uint) {
	s.sessions.Delete(userID)
}

// TokenTTL возвращает срок жизни выдаваемых access-токенов
func (s *AuthService) TokenTTL() time.Duration {
	return s.jwtService.TokenTTL()
}
