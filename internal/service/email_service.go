package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// EmailService определяет интерфейс для отправки служебных писем
type EmailService interface {
	// SendLowRatingAlert отправляет уведомление о низкой оценке в обратной связи
	SendLowRatingAlert(ctx context.Context, toEmail, username string, rating int, comment string) error
}

// NoopEmailService используется, когда отправка почты выключена в конфигурации
type NoopEmailService struct{}

func NewNoopEmailService() *NoopEmailService {
	return &NoopEmailService{}
}

func (s *NoopEmailService) SendLowRatingAlert(_ context.Context, toEmail, username string, rating int, _ string) error {
	log.Printf("[EmailService] Отправка почты отключена: пропущено уведомление для %s (пользователь %s, оценка %d)", toEmail, username, rating)
	return nil
}

// ResendEmailService отправляет письма через Resend API
type ResendEmailService struct {
	client *resend.Client
	from   string
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailService) SendLowRatingAlert(ctx context.Context, toEmail, username string, rating int, comment string) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Low feedback rating: %d/10", rating),
		Text:    fmt.Sprintf("User %s rated the session %d/10.\n\n%s", username, rating, comment),
		Html:    fmt.Sprintf("<p>User <strong>%s</strong> rated the session <strong>%d/10</strong>.</p><blockquote>%s</blockquote>", username, rating, comment),
	}

	options := &resend.SendEmailOptions{}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary()) {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
