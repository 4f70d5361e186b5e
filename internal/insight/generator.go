package insight

import (
	"context"
)

// Generator определяет границу генеративной модели:
// один промпт на входе, один текстовый ответ на выходе. Модель непрозрачна.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
