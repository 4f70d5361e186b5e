package repository

import (
	"github.com/yourusername/curioscope-api/internal/domain/entity"
)

// ScoreRepository определяет методы для работы с журналом результатов (лидербордом).
// Журнал append-only: операций обновления и удаления нет.
type ScoreRepository interface {
	// Save добавляет одну запись результата
	Save(score *entity.Score) error

	// Top возвращает первые limit записей, отсортированные по очкам по убыванию;
	// при равных очках раньше идет более ранняя запись (timestamp ASC)
	Top(limit int) ([]entity.Score, error)
}
