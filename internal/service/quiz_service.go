package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
	"github.com/yourusername/curioscope-api/internal/domain/repository"
	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
	"github.com/yourusername/curioscope-api/internal/session"
)

// QuizService проверяет ответы на квиз и записывает результат в таблицу лидеров
type QuizService struct {
	scoreRepo repository.ScoreRepository
	cacheRepo repository.CacheRepository
}

func NewQuizService(scoreRepo repository.ScoreRepository, cacheRepo repository.CacheRepository) *QuizService {
	return &QuizService{
		scoreRepo: scoreRepo,
		cacheRepo: cacheRepo,
	}
}

// SelectAnswer сохраняет выбранный вариант для вопроса в сессии
func (s *QuizService) SelectAnswer(sess *session.Session, questionIndex int, option string) error {
	return sess.SelectAnswer(questionIndex, option)
}

// Submit оценивает текущие ответы сессии и добавляет строку в таблицу лидеров.
// Повторная отправка оценивается заново и добавляет новую строку: таблица
// хранит историю результатов, а не лучший результат пользователя.
func (s *QuizService) Submit(sess *session.Session) (score, total int, err error) {
	ins := sess.Insight()
	if ins == nil {
		return 0, 0, fmt.Errorf("%w: no quiz to submit", apperrors.ErrConflict)
	}

	// Проверка состояния идет до записи: отклоненная отправка не должна
	// оставлять строку в таблице лидеров. Во время активного окна детекции
	// ответ прошлого прогона еще хранится в сессии, однако отправка запрещена.
	if err := sess.MarkQuizSubmitted(); err != nil {
		return 0, 0, err
	}

	answers := sess.Answers()
	total = len(ins.Quiz)
	for i, q := range ins.Quiz {
		if q.IsCorrect(answers[i]) {
			score++
		}
	}

	entry := &entity.Score{
		Username:  sess.Username,
		Score:     score,
		Timestamp: time.Now(),
	}
	// Сбой записи оставляет сессию в QuizSubmitted; повторная отправка
	// разрешена из этого состояния, так что клиент может просто повторить
	if err := s.scoreRepo.Save(entry); err != nil {
		return 0, 0, err
	}

	if err := s.cacheRepo.Delete(leaderboardCacheKey); err != nil {
		// Кэш доживет до TTL; результат уже записан
		log.Printf("[QuizService] Не удалось сбросить кэш таблицы лидеров: %v", err)
	}
	return score, total, nil
}
