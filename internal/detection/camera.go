package detection

import (
	"fmt"

	"gocv.io/x/gocv"

	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
)

// Camera реализует FrameSource поверх веб-камеры
type Camera struct {
	capture *gocv.VideoCapture
}

// OpenCamera открывает устройство захвата по его номеру.
// Возвращает apperrors.ErrUnavailable, если устройство не открылось:
// для вызывающего это повод прервать операцию до начала окна.
func OpenCamera(deviceID int) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open camera device %d: %v", apperrors.ErrUnavailable, deviceID, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: camera device %d is not opened", apperrors.ErrUnavailable, deviceID)
	}
	return &Camera{capture: capture}, nil
}

// Read читает следующий кадр
func (c *Camera) Read(frame *gocv.Mat) bool {
	return c.capture.Read(frame)
}

// Close освобождает устройство
func (c *Camera) Close() error {
	return c.capture.Close()
}
