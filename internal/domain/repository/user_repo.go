package repository

import (
	"github.com/yourusername/curioscope-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с хранилищем пользователей
type UserRepository interface {
	// Create создает нового пользователя.
	// Возвращает apperrors.ErrAlreadyExists при нарушении уникальности username.
	Create(user *entity.User) error

	// GetByID возвращает пользователя по ID
	GetByID(id uint) (*entity.User, error)

	// GetByUsername возвращает пользователя по имени пользователя
	GetByUsername(username string) (*entity.User, error)
}
