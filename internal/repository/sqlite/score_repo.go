package sqlite

import (
	"gorm.io/gorm"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
)

// ScoreRepo реализует repository.ScoreRepository
type ScoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo создает новый репозиторий результатов
func NewScoreRepo(db *gorm.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// Save добавляет одну запись результата
func (r *ScoreRepo) Save(score *entity.Score) error {
	return r.db.Create(score).Error
}

// Top возвращает первые limit записей, отсортированные по очкам по убыванию.
// Равные очки упорядочиваются по timestamp ASC — более ранний результат выше.
// Пустой слайс — валидный результат, ErrRecordNotFound здесь не проверяется.
func (r *ScoreRepo) Top(limit int) ([]entity.Score, error) {
	var scores []entity.Score
	err := r.db.
		Order("score DESC, timestamp ASC").
		Limit(limit).
		Find(&scores).Error
	return scores, err
}
