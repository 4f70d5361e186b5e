package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
)

// StripCodeFence убирает возможную markdown-обертку вокруг JSON.
// Модели часто оборачивают ответ в ```json ... ``` даже при явной просьбе этого не делать.
func StripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Отрезаем первую строку целиком: ``` или ```json
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimPrefix(text, "```"))
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Parse разбирает сырой текст модели по фиксированной пятипольной схеме.
// Любая проблема — невалидный JSON или пустой ответ — транслируется
// в apperrors.ErrBadModelOutput; частично заполненный ответ допустим.
func Parse(raw string) (*entity.Insight, error) {
	text := StripCodeFence(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: model returned empty text", apperrors.ErrBadModelOutput)
	}

	var insight entity.Insight
	if err := json.Unmarshal([]byte(text), &insight); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBadModelOutput, err)
	}
	if insight.IsEmpty() {
		return nil, fmt.Errorf("%w: model returned an empty response", apperrors.ErrBadModelOutput)
	}
	return &insight, nil
}
