package service

import (
	"context"
	"fmt"
	"log"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
	"github.com/yourusername/curioscope-api/internal/insight"
	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
	"github.com/yourusername/curioscope-api/internal/session"
)

// InsightService запрашивает у генеративной модели материалы по обнаруженным объектам
type InsightService struct {
	generator insight.Generator
}

func NewInsightService(generator insight.Generator) *InsightService {
	return &InsightService{generator: generator}
}

// Generate строит промпт по объектам сессии и разбирает ответ модели.
// Для пустого набора объектов генератор не вызывается. Повторный вызов
// после успешной генерации возвращает уже сохраненные материалы: модель
// опрашивается не более одного раза на окно детекции.
func (s *InsightService) Generate(ctx context.Context, sess *session.Session) (*entity.Insight, error) {
	if existing := sess.Insight(); existing != nil {
		return existing, nil
	}

	objects := sess.DetectedObjects()
	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: no detected objects to analyze", apperrors.ErrConflict)
	}

	prompt := insight.BuildPrompt(objects)
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[InsightService] Запрос к модели не удался: %v", err)
		return nil, fmt.Errorf("%w: generation request failed: %v", apperrors.ErrBadModelOutput, err)
	}

	parsed, err := insight.Parse(raw)
	if err != nil {
		// Сессия остается в ожидании: пользователь может повторить запрос
		log.Printf("[InsightService] Ответ модели не разобран: %v", err)
		return nil, err
	}

	if err := sess.SetInsight(parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// Current возвращает материалы текущей сессии, если они уже сгенерированы
func (s *InsightService) Current(sess *session.Session) (*entity.Insight, error) {
	ins := sess.Insight()
	if ins == nil {
		return nil, fmt.Errorf("%w: insights are not ready", apperrors.ErrNotFound)
	}
	return ins, nil
}
