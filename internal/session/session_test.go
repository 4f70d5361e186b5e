package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
)

func sampleInsight() *entity.Insight {
	return &entity.Insight{
		DetailedExplanation: "Чашка и книга — предметы повседневного обихода.",
		Quiz: []entity.QuizQuestion{
			{
				Question:      "Для чего используется чашка?",
				Options:       map[string]string{"A": "Для питья", "B": "Для письма", "C": "Для сна", "D": "Для бега"},
				CorrectAnswer: "A",
			},
			{
				Question:      "Что обычно делают с книгой?",
				Options:       map[string]string{"A": "Едят", "B": "Читают", "C": "Пьют", "D": "Стирают"},
				CorrectAnswer: "B",
			},
		},
		YouTubeLinks: []string{"https://youtube.com/watch?v=abc"},
	}
}

func TestSession_ScanLifecycle(t *testing.T) {
	// Arrange
	sess := New(1, "alice")
	require.Equal(t, StateIdle, sess.State())

	// Act: запуск и завершение сканирования с непустым набором
	require.NoError(t, sess.BeginScan())
	assert.Equal(t, StateDetecting, sess.State())

	sess.CompleteScan([]string{"cup", "book"})

	// Assert
	assert.Equal(t, StateAwaitingInsights, sess.State())
	assert.Equal(t, []string{"cup", "book"}, sess.DetectedObjects())
}

func TestSession_BeginScan_WhileDetecting(t *testing.T) {
	sess := New(1, "alice")
	require.NoError(t, sess.BeginScan())

	// Повторный запуск во время окна детекции запрещен
	err := sess.BeginScan()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSession_CompleteScan_EmptySetReturnsToIdle(t *testing.T) {
	sess := New(1, "alice")
	require.NoError(t, sess.BeginScan())

	sess.CompleteScan(nil)

	assert.Equal(t, StateIdle, sess.State(), "пустой набор объектов должен вернуть сессию в Idle")
	assert.Empty(t, sess.DetectedObjects())
}

func TestSession_AbortScan_RestoresPreviousState(t *testing.T) {
	// Дошли до InsightsReady, потом камера не открылась при новом запуске
	sess := New(1, "alice")
	require.NoError(t, sess.BeginScan())
	sess.CompleteScan([]string{"cup"})
	require.NoError(t, sess.SetInsight(sampleInsight()))
	require.Equal(t, StateInsightsReady, sess.State())

	require.NoError(t, sess.BeginScan())
	sess.AbortScan()

	// Прежние данные не потеряны
	assert.Equal(t, StateInsightsReady, sess.State())
	assert.NotNil(t, sess.Insight())
	assert.Equal(t, []string{"cup"}, sess.DetectedObjects())
}

func TestSession_SetInsight_RequiresAwaitingState(t *testing.T) {
	sess := New(1, "alice")

	err := sess.SetInsight(sampleInsight())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict, "без сканирования ответ модели принимать нельзя")
}

func TestSession_NewScanOverwritesPreviousRun(t *testing.T) {
	sess := New(1, "alice")
	require.NoError(t, sess.BeginScan())
	sess.CompleteScan([]string{"cup"})
	require.NoError(t, sess.SetInsight(sampleInsight()))
	require.NoError(t, sess.SelectAnswer(0, "Для питья"))

	// Новый скан стирает прежний ответ модели и ответы квиза
	require.NoError(t, sess.BeginScan())
	sess.CompleteScan([]string{"chair"})

	assert.Equal(t, StateAwaitingInsights, sess.State())
	assert.Nil(t, sess.Insight())
	assert.Empty(t, sess.Answers())
	assert.Equal(t, []string{"chair"}, sess.DetectedObjects())
}

func TestSession_SelectAnswer_Validation(t *testing.T) {
	sess := New(1, "alice")
	require.NoError(t, sess.BeginScan())
	sess.CompleteScan([]string{"cup"})
	require.NoError(t, sess.SetInsight(sampleInsight()))

	// Валидный выбор
	require.NoError(t, sess.SelectAnswer(0, "Для питья"))
	assert.Equal(t, map[int]string{0: "Для питья"}, sess.Answers())

	// Индекс вне диапазона
	err := sess.SelectAnswer(5, "Для питья")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Текст вне вариантов вопроса
	err = sess.SelectAnswer(0, "Нет такого варианта")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSession_QuizResubmissionAllowed(t *testing.T) {
	sess := New(1, "alice")
	require.NoError(t, sess.BeginScan())
	sess.CompleteScan([]string{"cup"})
	require.NoError(t, sess.SetInsight(sampleInsight()))

	require.NoError(t, sess.MarkQuizSubmitted())
	assert.Equal(t, StateQuizSubmitted, sess.State())

	// Ответы можно менять и отправлять заново
	require.NoError(t, sess.SelectAnswer(1, "Читают"))
	require.NoError(t, sess.MarkQuizSubmitted())
	assert.Equal(t, StateQuizSubmitted, sess.State())
}

func TestSession_Reset(t *testing.T) {
	sess := New(1, "alice")
	require.NoError(t, sess.BeginScan())
	sess.CompleteScan([]string{"cup", "book"})
	require.NoError(t, sess.SetInsight(sampleInsight()))
	require.NoError(t, sess.SelectAnswer(0, "Для питья"))
	require.NoError(t, sess.MarkFeedbackSubmitted())
	sess.ToggleTheme()

	// Act
	sess.Reset()

	// Assert: объекты, ответ модели и ответы квиза очищены
	assert.Equal(t, StateIdle, sess.State())
	assert.Empty(t, sess.DetectedObjects())
	assert.Nil(t, sess.Insight())
	assert.Empty(t, sess.Answers())

	// Тема и флаг отзыва переживают сброс
	assert.Equal(t, ThemeDark, sess.Theme())
	assert.True(t, sess.FeedbackSubmitted())
}

func TestSession_FeedbackSubmittedOncePerSession(t *testing.T) {
	sess := New(1, "alice")

	require.NoError(t, sess.MarkFeedbackSubmitted())

	err := sess.MarkFeedbackSubmitted()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSession_ToggleTheme(t *testing.T) {
	sess := New(1, "alice")
	assert.Equal(t, ThemeLight, sess.Theme())

	assert.Equal(t, ThemeDark, sess.ToggleTheme())
	assert.Equal(t, ThemeLight, sess.ToggleTheme())
}

func TestStore_IsolationAndLogout(t *testing.T) {
	store := NewStore()

	alice := store.GetOrCreate(1, "alice")
	bob := store.GetOrCreate(2, "bob")
	require.NotSame(t, alice, bob)

	// Повторное обращение возвращает ту же сессию
	again := store.GetOrCreate(1, "alice")
	assert.Same(t, alice, again)

	// Выход удаляет сессию; следующий вход начинает с чистого состояния
	alice.ToggleTheme()
	store.Delete(1)
	_, ok := store.Get(1)
	assert.False(t, ok)

	fresh := store.GetOrCreate(1, "alice")
	assert.Equal(t, ThemeLight, fresh.Theme())
	assert.Equal(t, StateIdle, fresh.State())
}
