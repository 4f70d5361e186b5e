package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
	"github.com/yourusername/curioscope-api/internal/session"
)

// MockGenerator реализует insight.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

const validModelOutput = `{
	"detailed_explanation": "Cups hold liquids, books hold words.",
	"combined_usage": "Read a book with a cup of tea.",
	"step_by_step_activity": [{"objects": ["cup", "book"], "steps": ["pour", "read"]}],
	"quiz": [
		{"question": "Q1", "options": {"A": "one", "B": "two"}, "correct_answer": "A"},
		{"question": "Q2", "options": {"A": "one", "B": "two"}, "correct_answer": "B"},
		{"question": "Q3", "options": {"A": "one", "B": "two"}, "correct_answer": "A"},
		{"question": "Q4", "options": {"A": "one", "B": "two"}, "correct_answer": "B"}
	],
	"youtube_links": ["https://youtube.com/watch?v=a", "https://youtube.com/watch?v=b", "https://youtube.com/watch?v=c"]
}`

func newAwaitingSession(t *testing.T, objects []string) *session.Session {
	t.Helper()
	sess := session.New(1, "alice")
	require.NoError(t, sess.BeginScan())
	sess.CompleteScan(objects)
	return sess
}

func TestInsightService_Generate_Success(t *testing.T) {
	// Arrange
	mockGen := new(MockGenerator)
	mockGen.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return(validModelOutput, nil)

	svc := NewInsightService(mockGen)
	sess := newAwaitingSession(t, []string{"cup", "book"})

	// Act
	ins, err := svc.Generate(context.Background(), sess)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, ins)
	assert.Len(t, ins.Quiz, 4)
	assert.Equal(t, session.StateInsightsReady, sess.State())

	// Промпт содержит объекты сессии
	prompt := mockGen.Calls[0].Arguments.String(1)
	assert.Contains(t, prompt, "cup, book")
	mockGen.AssertExpectations(t)
}

func TestInsightService_Generate_EmptyObjectsSkipsGenerator(t *testing.T) {
	mockGen := new(MockGenerator)
	svc := NewInsightService(mockGen)
	sess := session.New(1, "alice")

	_, err := svc.Generate(context.Background(), sess)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	// Модель не вызывается при пустом наборе объектов
	mockGen.AssertNotCalled(t, "Generate")
}

func TestInsightService_Generate_MalformedOutputKeepsState(t *testing.T) {
	mockGen := new(MockGenerator)
	mockGen.On("Generate", mock.Anything, mock.Anything).Return("this is not json", nil)

	svc := NewInsightService(mockGen)
	sess := newAwaitingSession(t, []string{"cup"})

	_, err := svc.Generate(context.Background(), sess)

	assert.ErrorIs(t, err, apperrors.ErrBadModelOutput)
	// Сессия остается в ожидании и запрос можно повторить
	assert.Equal(t, session.StateAwaitingInsights, sess.State())
	assert.Nil(t, sess.Insight())
}

func TestInsightService_Generate_RequestFailure(t *testing.T) {
	mockGen := new(MockGenerator)
	mockGen.On("Generate", mock.Anything, mock.Anything).Return("", assert.AnError)

	svc := NewInsightService(mockGen)
	sess := newAwaitingSession(t, []string{"cup"})

	_, err := svc.Generate(context.Background(), sess)

	assert.ErrorIs(t, err, apperrors.ErrBadModelOutput)
	assert.Equal(t, session.StateAwaitingInsights, sess.State())
}

func TestInsightService_Generate_Idempotent(t *testing.T) {
	mockGen := new(MockGenerator)
	mockGen.On("Generate", mock.Anything, mock.Anything).Return(validModelOutput, nil).Once()

	svc := NewInsightService(mockGen)
	sess := newAwaitingSession(t, []string{"cup"})

	first, err := svc.Generate(context.Background(), sess)
	require.NoError(t, err)

	// Повтор не обращается к модели и отдает те же материалы
	second, err := svc.Generate(context.Background(), sess)
	require.NoError(t, err)
	assert.Same(t, first, second)
	mockGen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestInsightService_Current(t *testing.T) {
	svc := NewInsightService(new(MockGenerator))
	sess := session.New(1, "alice")

	_, err := svc.Current(sess)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
