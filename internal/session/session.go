package session

import (
	"fmt"
	"sync"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
)

// State — состояние сессии пользователя.
// Переходы выполняются только явными методами Session; любые другие запрещены.
type State string

const (
	// StateIdle — пользователь вошел, сканирование не запускалось или было сброшено
	StateIdle State = "idle"
	// StateDetecting — идет окно детекции, повторный запуск запрещен
	StateDetecting State = "detecting"
	// StateAwaitingInsights — есть непустой набор объектов, ответа модели еще нет
	StateAwaitingInsights State = "awaiting_insights"
	// StateInsightsReady — ответ модели разобран, квиз доступен
	StateInsightsReady State = "insights_ready"
	// StateQuizSubmitted — квиз отправлен хотя бы один раз
	StateQuizSubmitted State = "quiz_submitted"
)

// Theme — выбранная тема оформления
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Session хранит изменяемое состояние одного пользователя между запросами.
// Все поля защищены мьютексом: состояние живет дольше одного запроса,
// а gin обрабатывает запросы одного пользователя из разных горутин.
type Session struct {
	mu sync.Mutex

	UserID   uint
	Username string

	state             State
	prevState         State
	detectedObjects   []string
	insight           *entity.Insight
	quizAnswers       map[int]string
	feedbackSubmitted bool
	theme             Theme
}

// New создает сессию в состоянии Idle со светлой темой
func New(userID uint, username string) *Session {
	return &Session{
		UserID:      userID,
		Username:    username,
		state:       StateIdle,
		theme:       ThemeLight,
		quizAnswers: map[int]string{},
	}
}

// State возвращает текущее состояние
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Theme возвращает текущую тему
func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleTheme переключает тему и возвращает новую.
// Тема ортогональна машине состояний и доступна всегда.
func (s *Session) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeLight {
		s.theme = ThemeDark
	} else {
		s.theme = ThemeLight
	}
	return s.theme
}

// DetectedObjects возвращает копию набора обнаруженных объектов
func (s *Session) DetectedObjects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.detectedObjects))
	copy(out, s.detectedObjects)
	return out
}

// Insight возвращает текущий ответ модели (nil, если его нет)
func (s *Session) Insight() *entity.Insight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insight
}

// FeedbackSubmitted возвращает флаг «отзыв уже отправлен в этой сессии»
func (s *Session) FeedbackSubmitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedbackSubmitted
}

// BeginScan переводит сессию в Detecting.
// Запрещен, только если сканирование уже идет: повторный запуск из Idle,
// InsightsReady или QuizSubmitted начинает новый цикл и перезапишет старые данные.
func (s *Session) BeginScan() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDetecting {
		return fmt.Errorf("%w: detection window is already running", apperrors.ErrConflict)
	}
	s.prevState = s.state
	s.state = StateDetecting
	return nil
}

// AbortScan откатывает неудачный запуск (камера не открылась) в прежнее состояние.
// Прежние объекты и ответ модели остаются нетронутыми.
func (s *Session) AbortScan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDetecting {
		s.state = s.prevState
	}
}

// CompleteScan фиксирует итог окна детекции.
// Непустой набор переводит в AwaitingInsights и стирает прежний ответ модели;
// пустой возвращает в Idle, прежние данные также стираются (новый цикл начался).
func (s *Session) CompleteScan(objects []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDetecting {
		return
	}
	s.detectedObjects = objects
	s.insight = nil
	s.quizAnswers = map[int]string{}
	if len(objects) == 0 {
		s.state = StateIdle
		return
	}
	s.state = StateAwaitingInsights
}

// SetInsight сохраняет разобранный ответ модели и инициализирует карту ответов.
// Допустим только из AwaitingInsights: генератор вызывается ровно один раз на скан.
func (s *Session) SetInsight(insight *entity.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingInsights {
		return fmt.Errorf("%w: no scan awaiting insights", apperrors.ErrConflict)
	}
	s.insight = insight
	s.quizAnswers = make(map[int]string, len(insight.Quiz))
	s.state = StateInsightsReady
	return nil
}

// SelectAnswer запоминает выбранный вариант для вопроса.
// Разрешен после получения ответа модели, в том числе после отправки квиза
// (каждая следующая отправка заново оценивает текущие ответы).
func (s *Session) SelectAnswer(index int, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInsightsReady && s.state != StateQuizSubmitted {
		return fmt.Errorf("%w: quiz is not available in state %q", apperrors.ErrConflict, s.state)
	}
	if s.insight == nil || index < 0 || index >= len(s.insight.Quiz) {
		return fmt.Errorf("%w: question index %d out of range", apperrors.ErrValidation, index)
	}
	if !s.insight.Quiz[index].IsValidOption(option) {
		return fmt.Errorf("%w: option is not one of the question's choices", apperrors.ErrValidation)
	}
	s.quizAnswers[index] = option
	return nil
}

// Answers возвращает копию карты ответов
func (s *Session) Answers() map[int]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]string, len(s.quizAnswers))
	for k, v := range s.quizAnswers {
		out[k] = v
	}
	return out
}

// MarkQuizSubmitted переводит сессию в QuizSubmitted.
// Повторная отправка разрешена и оставляет состояние тем же.
func (s *Session) MarkQuizSubmitted() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInsightsReady && s.state != StateQuizSubmitted {
		return fmt.Errorf("%w: quiz cannot be submitted in state %q", apperrors.ErrConflict, s.state)
	}
	s.state = StateQuizSubmitted
	return nil
}

// MarkFeedbackSubmitted взводит флаг отзыва.
// Возвращает ErrConflict при повторной попытке в той же сессии.
func (s *Session) MarkFeedbackSubmitted() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feedbackSubmitted {
		return fmt.Errorf("%w: feedback already submitted in this session", apperrors.ErrConflict)
	}
	s.feedbackSubmitted = true
	return nil
}

// Reset очищает набор объектов, ответ модели и ответы квиза и возвращает в Idle.
// Тема и флаг отзыва сохраняются; записи в БД сброс не трогает.
// Флаг отзыва сохраняется намеренно: сброс начинает новый цикл сканирования,
// но не новую сессию.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detectedObjects = nil
	s.insight = nil
	s.quizAnswers = map[int]string{}
	s.state = StateIdle
}

// Snapshot — неизменяемый срез сессии для выдачи клиенту
type Snapshot struct {
	Username          string   `json:"username"`
	State             State    `json:"state"`
	Theme             Theme    `json:"theme"`
	DetectedObjects   []string `json:"detected_objects"`
	HasInsights       bool     `json:"has_insights"`
	FeedbackSubmitted bool     `json:"feedback_submitted"`
}

// Snapshot возвращает срез текущего состояния
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	objects := make([]string, len(s.detectedObjects))
	copy(objects, s.detectedObjects)
	return Snapshot{
		Username:          s.Username,
		State:             s.state,
		Theme:             s.theme,
		DetectedObjects:   objects,
		HasInsights:       s.insight != nil,
		FeedbackSubmitted: s.feedbackSubmitted,
	}
}
