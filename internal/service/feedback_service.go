package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
	"github.com/yourusername/curioscope-api/internal/domain/repository"
	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
	"github.com/yourusername/curioscope-api/internal/session"
)

// FeedbackService принимает отзывы пользователей и уведомляет о низких оценках
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	emailService EmailService
	alertTo      string
	lowRatingMax int
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, emailService EmailService, alertTo string, lowRatingMax int) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		emailService: emailService,
		alertTo:      alertTo,
		lowRatingMax: lowRatingMax,
	}
}

// Submit сохраняет отзыв и взводит флаг в сессии.
// Повторный отзыв в той же сессии возвращает apperrors.ErrConflict;
// флаг переживает сброс сессии, но не выход из аккаунта.
func (s *FeedbackService) Submit(ctx context.Context, sess *session.Session, rating int, comment string) error {
	if rating < 1 || rating > 10 {
		return fmt.Errorf("%w: rating must be between 1 and 10", apperrors.ErrValidation)
	}
	if sess.FeedbackSubmitted() {
		return fmt.Errorf("%w: feedback already submitted in this session", apperrors.ErrConflict)
	}

	entry := &entity.Feedback{
		Username:  sess.Username,
		Rating:    rating,
		Feedback:  comment,
		Timestamp: time.Now(),
	}
	if err := s.feedbackRepo.Save(entry); err != nil {
		return err
	}

	if err := sess.MarkFeedbackSubmitted(); err != nil {
		return err
	}

	if rating <= s.lowRatingMax && s.emailService != nil && s.alertTo != "" {
		// Уведомление не влияет на результат запроса
		if err := s.emailService.SendLowRatingAlert(ctx, s.alertTo, sess.Username, rating, comment); err != nil {
			log.Printf("[FeedbackService] Не удалось отправить уведомление о низкой оценке: %v", err)
		}
	}
	return nil
}
