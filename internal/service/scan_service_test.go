package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/curioscope-api/internal/detection"
	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
	"github.com/yourusername/curioscope-api/internal/session"
)

// fakeScanRunner отдает заранее заданные метки и ошибку
type fakeScanRunner struct {
	labels []string
	err    error
}

func (f *fakeScanRunner) Run(_ context.Context, onLabel func(string)) ([]string, error) {
	for _, l := range f.labels {
		if onLabel != nil {
			onLabel(l)
		}
	}
	return f.labels, f.err
}

func TestScanService_Scan_Success(t *testing.T) {
	// Arrange
	svc := NewScanService(&fakeScanRunner{labels: []string{"cup", "book"}})
	sess := session.New(1, "alice")

	// Act
	result, err := svc.Scan(context.Background(), sess)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"cup", "book"}, result.Objects)
	assert.Empty(t, result.Warning)
	assert.Equal(t, session.StateAwaitingInsights, sess.State())
	assert.Equal(t, []string{"cup", "book"}, sess.DetectedObjects())
}

func TestScanService_Scan_EmptyResult(t *testing.T) {
	svc := NewScanService(&fakeScanRunner{labels: []string{}})
	sess := session.New(1, "alice")

	result, err := svc.Scan(context.Background(), sess)

	require.NoError(t, err)
	assert.Empty(t, result.Objects)
	assert.NotEmpty(t, result.Warning, "Пустое окно должно сопровождаться предупреждением")
	assert.Equal(t, session.StateIdle, sess.State())
}

func TestScanService_Scan_ConcurrentScanConflict(t *testing.T) {
	svc := NewScanService(&fakeScanRunner{})
	sess := session.New(1, "alice")
	require.NoError(t, sess.BeginScan())

	_, err := svc.Scan(context.Background(), sess)

	assert.ErrorIs(t, err, apperrors.ErrConflict, "Во время активного окна повторный запуск запрещен")
}

func TestScanService_Scan_CameraUnavailableRestoresState(t *testing.T) {
	runErr := fmt.Errorf("%w: cannot open camera device 0", apperrors.ErrUnavailable)
	svc := NewScanService(&fakeScanRunner{err: runErr})
	sess := session.New(1, "alice")

	_, err := svc.Scan(context.Background(), sess)

	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Equal(t, session.StateIdle, sess.State(), "Неудачный запуск возвращает прежнее состояние")
}

func TestScanService_Scan_FrameReadFailureKeepsPartialResult(t *testing.T) {
	svc := NewScanService(&fakeScanRunner{
		labels: []string{"cup"},
		err:    fmt.Errorf("%w: device stopped responding", detection.ErrFrameReadFailed),
	})
	sess := session.New(1, "alice")

	result, err := svc.Scan(context.Background(), sess)

	// Частичный набор сохраняется, ошибка превращается в предупреждение
	require.NoError(t, err)
	assert.Equal(t, []string{"cup"}, result.Objects)
	assert.NotEmpty(t, result.Warning)
	assert.Equal(t, session.StateAwaitingInsights, sess.State())
}

func TestScanService_SubscribeReceivesLabels(t *testing.T) {
	svc := NewScanService(&fakeScanRunner{labels: []string{"cup", "book"}})
	sess := session.New(42, "alice")

	ch := svc.Subscribe(42)
	_, err := svc.Scan(context.Background(), sess)
	require.NoError(t, err)

	var got []string
	for label := range ch {
		got = append(got, label)
	}
	assert.Equal(t, []string{"cup", "book"}, got, "Подписчик получает метки и закрытие канала")
}

func TestScanService_UnsubscribeIsSafeAfterScan(t *testing.T) {
	svc := NewScanService(&fakeScanRunner{labels: []string{"cup"}})
	sess := session.New(42, "alice")

	ch := svc.Subscribe(42)
	_, err := svc.Scan(context.Background(), sess)
	require.NoError(t, err)

	// Канал уже закрыт завершением окна; повторное закрытие не должно паниковать
	svc.Unsubscribe(42, ch)
}
