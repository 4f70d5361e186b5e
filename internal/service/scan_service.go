package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/yourusername/curioscope-api/internal/detection"
	"github.com/yourusername/curioscope-api/internal/session"
)

// ScanRunner выполняет одно окно детекции и возвращает накопленные метки.
// onLabel вызывается при каждом новом обнаруженном объекте.
type ScanRunner interface {
	Run(ctx context.Context, onLabel func(label string)) ([]string, error)
}

// ScanService управляет запуском окна детекции для сессий пользователей
type ScanService struct {
	runner ScanRunner

	mu        sync.Mutex
	listeners map[uint]map[chan string]struct{}
}

func NewScanService(runner ScanRunner) *ScanService {
	return &ScanService{
		runner:    runner,
		listeners: make(map[uint]map[chan string]struct{}),
	}
}

// ScanResult описывает итог завершенного окна детекции
type ScanResult struct {
	// RunID — идентификатор окна для сопоставления с логами
	RunID   string
	Objects []string
	// Warning непустой, если окно прервалось до истечения таймера
	Warning string
}

// Scan запускает окно детекции для сессии и блокируется до его конца.
// Повторный вызов во время активного окна возвращает apperrors.ErrConflict.
func (s *ScanService) Scan(ctx context.Context, sess *session.Session) (*ScanResult, error) {
	if err := sess.BeginScan(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	userID := sess.UserID
	log.Printf("[ScanService] Окно %s: запуск для пользователя %d", runID, userID)

	labels, runErr := s.runner.Run(ctx, func(label string) {
		s.publish(userID, label)
	})
	defer s.closeListeners(userID)

	if runErr != nil && !errors.Is(runErr, detection.ErrFrameReadFailed) {
		// Камера недоступна или детектор сломался: сессия возвращается
		// в состояние до запуска
		sess.AbortScan()
		return nil, runErr
	}

	sess.CompleteScan(labels)
	log.Printf("[ScanService] Окно %s: обнаружены объекты %v", runID, labels)

	result := &ScanResult{RunID: runID, Objects: labels}
	if runErr != nil {
		result.Warning = "camera frame read failed; detection stopped early"
	}
	if len(labels) == 0 && result.Warning == "" {
		result.Warning = "no objects detected"
	}
	return result, nil
}

// Subscribe возвращает канал с метками объектов текущего окна детекции.
// Канал закрывается по завершении окна.
func (s *ScanService) Subscribe(userID uint) chan string {
	ch := make(chan string, 16)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners[userID] == nil {
		s.listeners[userID] = make(map[chan string]struct{})
	}
	s.listeners[userID][ch] = struct{}{}
	return ch
}

// Unsubscribe отключает подписчика; безопасно вызывать после закрытия канала
func (s *ScanService) Unsubscribe(userID uint, ch chan string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs, ok := s.listeners[userID]
	if !ok {
		return
	}
	if _, ok := subs[ch]; ok {
		delete(subs, ch)
		close(ch)
	}
	if len(subs) == 0 {
		delete(s.listeners, userID)
	}
}

func (s *ScanService) publish(userID uint, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.listeners[userID] {
		select {
		case ch <- label:
		default:
			// Медленный подписчик не должен тормозить окно детекции
		}
	}
}

func (s *ScanService) closeListeners(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.listeners[userID] {
		close(ch)
	}
	delete(s.listeners, userID)
}
