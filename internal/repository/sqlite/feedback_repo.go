package sqlite

import (
	"gorm.io/gorm"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
)

// FeedbackRepo реализует repository.FeedbackRepository
type FeedbackRepo struct {
	db *gorm.DB
}

// NewFeedbackRepo создает новый репозиторий отзывов
func NewFeedbackRepo(db *gorm.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Save добавляет одну запись отзыва
func (r *FeedbackRepo) Save(feedback *entity.Feedback) error {
	return r.db.Create(feedback).Error
}
