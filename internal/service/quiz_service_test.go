package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
	"github.com/yourusername/curioscope-api/internal/session"
)

// ============================================================================
// Моки для тестирования QuizService и LeaderboardService
// ============================================================================

// MockScoreRepository реализует repository.ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Save(score *entity.Score) error {
	args := m.Called(score)
	return args.Error(0)
}

func (m *MockScoreRepository) Top(limit int) ([]entity.Score, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Score), args.Error(1)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, target interface{}) error {
	args := m.Called(key, target)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

// newQuizSession создает сессию с разобранным ответом модели на четыре вопроса
func newQuizSession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New(1, "alice")
	require.NoError(t, sess.BeginScan())
	sess.CompleteScan([]string{"cup", "book"})

	ins := &entity.Insight{
		DetailedExplanation: "about cups and books",
		Quiz: []entity.QuizQuestion{
			{Question: "Q1", Options: map[string]string{"A": "one", "B": "two"}, CorrectAnswer: "A"},
			{Question: "Q2", Options: map[string]string{"A": "one", "B": "two"}, CorrectAnswer: "B"},
			{Question: "Q3", Options: map[string]string{"A": "one", "B": "two"}, CorrectAnswer: "A"},
			{Question: "Q4", Options: map[string]string{"A": "one", "B": "two"}, CorrectAnswer: "B"},
		},
	}
	require.NoError(t, sess.SetInsight(ins))
	return sess
}

// ============================================================================
// Тесты для QuizService
// ============================================================================

func TestQuizService_Submit_CountsCorrectAnswers(t *testing.T) {
	// Arrange
	mockScoreRepo := new(MockScoreRepository)
	mockCache := new(MockCacheRepository)
	mockScoreRepo.On("Save", mock.AnythingOfType("*entity.Score")).Return(nil)
	mockCache.On("Delete", leaderboardCacheKey).Return(nil)

	quizService := NewQuizService(mockScoreRepo, mockCache)
	sess := newQuizSession(t)

	// Три верных ответа из четырех; на Q4 ответа нет
	require.NoError(t, quizService.SelectAnswer(sess, 0, "A"))
	require.NoError(t, quizService.SelectAnswer(sess, 1, "B"))
	require.NoError(t, quizService.SelectAnswer(sess, 2, "B"))

	// Act
	score, total, err := quizService.Submit(sess)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, score, "Верны только ответы на Q1 и Q2")
	assert.Equal(t, 4, total)
	assert.Equal(t, session.StateQuizSubmitted, sess.State())

	saved := mockScoreRepo.Calls[0].Arguments.Get(0).(*entity.Score)
	assert.Equal(t, "alice", saved.Username)
	assert.Equal(t, 2, saved.Score)
	mockScoreRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestQuizService_Submit_ResubmissionAddsNewRow(t *testing.T) {
	mockScoreRepo := new(MockScoreRepository)
	mockCache := new(MockCacheRepository)
	mockScoreRepo.On("Save", mock.AnythingOfType("*entity.Score")).Return(nil)
	mockCache.On("Delete", leaderboardCacheKey).Return(nil)

	quizService := NewQuizService(mockScoreRepo, mockCache)
	sess := newQuizSession(t)

	_, _, err := quizService.Submit(sess)
	require.NoError(t, err)

	// Пользователь поправил ответы и отправил снова
	require.NoError(t, quizService.SelectAnswer(sess, 0, "A"))
	score, _, err := quizService.Submit(sess)
	require.NoError(t, err)

	assert.Equal(t, 1, score)
	mockScoreRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestQuizService_Submit_ThreeOfFourCorrect(t *testing.T) {
	mockScoreRepo := new(MockScoreRepository)
	mockCache := new(MockCacheRepository)
	mockScoreRepo.On("Save", mock.AnythingOfType("*entity.Score")).Return(nil)
	mockCache.On("Delete", leaderboardCacheKey).Return(nil)

	quizService := NewQuizService(mockScoreRepo, mockCache)
	sess := newQuizSession(t)

	require.NoError(t, quizService.SelectAnswer(sess, 0, "A"))
	require.NoError(t, quizService.SelectAnswer(sess, 1, "B"))
	require.NoError(t, quizService.SelectAnswer(sess, 2, "A"))
	require.NoError(t, quizService.SelectAnswer(sess, 3, "A"))

	score, total, err := quizService.Submit(sess)

	require.NoError(t, err)
	assert.Equal(t, 3, score, "Три верных ответа из четырех")
	assert.Equal(t, 4, total)
}

func TestQuizService_Submit_DuringScanWritesNothing(t *testing.T) {
	mockScoreRepo := new(MockScoreRepository)
	mockCache := new(MockCacheRepository)

	quizService := NewQuizService(mockScoreRepo, mockCache)
	sess := newQuizSession(t)

	// Новое окно детекции стартовало; ответ прошлого прогона еще в сессии
	require.NoError(t, sess.BeginScan())

	_, _, err := quizService.Submit(sess)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	// Отклоненная отправка не должна оставлять следов в БД и кэше
	mockScoreRepo.AssertNotCalled(t, "Save")
	mockCache.AssertNotCalled(t, "Delete")
}

func TestQuizService_Submit_NoQuiz(t *testing.T) {
	quizService := NewQuizService(new(MockScoreRepository), new(MockCacheRepository))
	sess := session.New(1, "alice")

	_, _, err := quizService.Submit(sess)
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Без квиза отправка невозможна")
}

func TestQuizService_Submit_CacheFailureIsNotFatal(t *testing.T) {
	mockScoreRepo := new(MockScoreRepository)
	mockCache := new(MockCacheRepository)
	mockScoreRepo.On("Save", mock.AnythingOfType("*entity.Score")).Return(nil)
	mockCache.On("Delete", leaderboardCacheKey).Return(assert.AnError)

	quizService := NewQuizService(mockScoreRepo, mockCache)
	sess := newQuizSession(t)

	_, _, err := quizService.Submit(sess)
	require.NoError(t, err, "Ошибка сброса кэша не должна ломать отправку")
	assert.Equal(t, session.StateQuizSubmitted, sess.State())
}

func TestQuizService_SelectAnswer_InvalidOption(t *testing.T) {
	quizService := NewQuizService(new(MockScoreRepository), new(MockCacheRepository))
	sess := newQuizSession(t)

	err := quizService.SelectAnswer(sess, 0, "Z")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = quizService.SelectAnswer(sess, 99, "A")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
