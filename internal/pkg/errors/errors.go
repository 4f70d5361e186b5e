package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, неверные учетные данные).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists используется при попытке создать запись, нарушающую уникальность
	// (например, регистрация с занятым именем пользователя).
	ErrAlreadyExists = errors.New("record already exists")

	// ErrConflict используется для конфликтов состояния сессии
	// (например, запуск сканирования, когда оно уже идет, или повторная отправка отзыва).
	ErrConflict = errors.New("resource state conflict")

	// ErrUnavailable используется, когда внешний ресурс недоступен (камера не открылась).
	ErrUnavailable = errors.New("resource unavailable")

	// ErrBadModelOutput используется, когда генеративная модель вернула данные,
	// которые не удалось разобрать по ожидаемой схеме.
	ErrBadModelOutput = errors.New("malformed model output")
)
