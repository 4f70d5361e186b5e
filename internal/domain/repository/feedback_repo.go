package repository

import (
	"github.com/yourusername/curioscope-api/internal/domain/entity"
)

// FeedbackRepository определяет методы для работы с журналом отзывов.
// Журнал append-only; единственность отзыва на сессию обеспечивает состояние сессии,
// а не хранилище.
type FeedbackRepository interface {
	// Save добавляет одну запись отзыва
	Save(feedback *entity.Feedback) error
}
