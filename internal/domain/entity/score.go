package entity

import (
	"time"
)

// Score представляет одну запись лидерборда — результат одной отправки квиза.
// Журнал append-only: записи никогда не обновляются и не удаляются.
type Score struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null;index" json:"username"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

// TableName определяет имя таблицы для GORM
func (Score) TableName() string {
	return "leaderboard"
}
