package entity

import (
	"time"
)

// Feedback представляет отзыв пользователя о сессии.
// Оценка ограничена диапазоном 1–10 на уровне хендлера, хранилище не проверяет ее.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null;index" json:"username"`
	Rating    int       `gorm:"not null" json:"rating"`
	Feedback  string    `gorm:"type:text;not null;default:''" json:"feedback"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

// TableName определяет имя таблицы для GORM
func (Feedback) TableName() string {
	return "feedback"
}
