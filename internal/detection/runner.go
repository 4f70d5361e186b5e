package detection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"
)

// ErrFrameReadFailed возвращается при сбое чтения кадра посреди окна.
// Накопленные к этому моменту метки сохраняются и возвращаются вместе с ошибкой.
var ErrFrameReadFailed = errors.New("frame capture failed")

// Runner прогоняет детектор по кадрам источника в течение окна конфигурации
type Runner struct {
	cfg Config
}

// NewRunner создает Runner с заданной конфигурацией
func NewRunner(cfg Config) *Runner {
	return &Runner{cfg: cfg}
}

// Run читает кадры из src до истечения окна, прогоняет каждый через det и
// накапливает различные метки. onLabel (может быть nil) вызывается для каждой
// новой метки по мере накопления.
//
// Сбой чтения кадра прерывает окно досрочно: возвращаются накопленные метки
// и ErrFrameReadFailed. Отмена контекста также прерывает окно досрочно, но без ошибки.
func (r *Runner) Run(ctx context.Context, src FrameSource, det Detector, onLabel func(label string)) ([]string, error) {
	acc := NewAccumulator(r.cfg)

	frame := gocv.NewMat()
	defer frame.Close()

	start := time.Now()
	for time.Since(start) < r.cfg.Window {
		select {
		case <-ctx.Done():
			return acc.Labels(), nil
		default:
		}

		if ok := src.Read(&frame); !ok {
			return acc.Labels(), ErrFrameReadFailed
		}
		if frame.Empty() {
			continue
		}

		detections, err := det.Detect(&frame)
		if err != nil {
			return acc.Labels(), fmt.Errorf("detector failed: %w", err)
		}
		acc.Add(detections, onLabel)
	}

	return acc.Labels(), nil
}

// CameraRunner связывает веб-камеру, детектор и Runner в одну операцию сканирования.
// Устройство открывается на время одного прогона и закрывается сразу после него.
type CameraRunner struct {
	deviceID int
	detector Detector
	runner   *Runner
}

// NewCameraRunner создает CameraRunner для указанного устройства
func NewCameraRunner(deviceID int, detector Detector, cfg Config) *CameraRunner {
	return &CameraRunner{
		deviceID: deviceID,
		detector: detector,
		runner:   NewRunner(cfg),
	}
}

// Run открывает камеру, прогоняет окно детекции и закрывает устройство.
// Недоступная камера транслируется в apperrors.ErrUnavailable до начала окна.
func (c *CameraRunner) Run(ctx context.Context, onLabel func(label string)) ([]string, error) {
	camera, err := OpenCamera(c.deviceID)
	if err != nil {
		return nil, err
	}
	defer camera.Close()

	return c.runner.Run(ctx, camera, c.detector, onLabel)
}
