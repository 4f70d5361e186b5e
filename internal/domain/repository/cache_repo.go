package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем (Redis).
// Используется для кеширования верхушки лидерборда между запросами на чтение.
type CacheRepository interface {
	// Delete удаляет значение по ключу
	Delete(key string) error

	// GetJSON получает значение и десериализует его в target.
	// Возвращает apperrors.ErrNotFound, если ключа нет.
	GetJSON(key string, target interface{}) error

	// SetJSON сериализует значение в JSON и сохраняет с временем жизни
	SetJSON(key string, value interface{}, expiration time.Duration) error
}
