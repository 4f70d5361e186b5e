package detection

import (
	"image"
	"time"

	"gocv.io/x/gocv"
)

// Detection — один найденный объект на кадре
type Detection struct {
	Label      string
	Confidence float64
	Box        image.Rectangle
}

// Detector определяет интерфейс для реализаций детекции объектов.
// Модель непрозрачна: кадр на входе, список (метка, уверенность, рамка) на выходе.
type Detector interface {
	// Detect анализирует кадр и возвращает найденные объекты.
	// Пустой слайс — валидный результат (на кадре ничего нет).
	Detect(frame *gocv.Mat) ([]Detection, error)

	// Close освобождает ресурсы детектора
	Close() error
}

// FrameSource отдает кадры на время одного окна сканирования
type FrameSource interface {
	// Read читает следующий кадр в mat. false означает сбой чтения.
	Read(frame *gocv.Mat) bool

	// Close освобождает устройство
	Close() error
}

// Config содержит параметры окна детекции
type Config struct {
	// Window — длительность окна сканирования по настенным часам
	Window time.Duration

	// ConfidenceThreshold — строго нижняя граница уверенности:
	// ровно пороговое значение НЕ засчитывается
	ConfidenceThreshold float64

	// ExcludedClasses — метки, которые никогда не попадают в результат
	ExcludedClasses map[string]struct{}
}

// DefaultConfig возвращает конфигурацию с принятыми значениями:
// окно 10 секунд, порог 0.5, исключены классы, относящиеся к человеку.
func DefaultConfig() Config {
	excluded := []string{
		"person", "face", "human face", "man", "woman",
		"boy", "girl", "hand", "foot", "eye", "mouth", "leg",
	}
	set := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		set[name] = struct{}{}
	}
	return Config{
		Window:              10 * time.Second,
		ConfidenceThreshold: 0.5,
		ExcludedClasses:     set,
	}
}
