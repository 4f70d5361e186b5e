package detection

import (
	"strings"
)

// NormalizeLabel приводит метку к канонической форме: нижний регистр, без краевых пробелов
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Accumulator собирает множество различных меток за одно окно сканирования.
// Дубликаты схлопываются; порядок — порядок первого появления.
type Accumulator struct {
	cfg   Config
	seen  map[string]struct{}
	order []string
}

// NewAccumulator создает пустой аккумулятор с заданной конфигурацией
func NewAccumulator(cfg Config) *Accumulator {
	return &Accumulator{
		cfg:  cfg,
		seen: make(map[string]struct{}),
	}
}

// Add применяет фильтры к результатам одного кадра и добавляет новые метки.
// onNew (может быть nil) вызывается для каждой метки, встреченной впервые.
func (a *Accumulator) Add(detections []Detection, onNew func(label string)) {
	for _, det := range detections {
		label := NormalizeLabel(det.Label)
		if label == "" {
			continue
		}
		// Порог строгий: уверенность ровно на границе не засчитывается
		if det.Confidence <= a.cfg.ConfidenceThreshold {
			continue
		}
		if _, excluded := a.cfg.ExcludedClasses[label]; excluded {
			continue
		}
		if _, ok := a.seen[label]; ok {
			continue
		}
		a.seen[label] = struct{}{}
		a.order = append(a.order, label)
		if onNew != nil {
			onNew(label)
		}
	}
}

// Labels возвращает накопленные метки в порядке первого появления
func (a *Accumulator) Labels() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}
