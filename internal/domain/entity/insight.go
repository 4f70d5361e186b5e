package entity

// Insight представляет разобранный ответ генеративной модели для одного сканирования.
// Схема фиксированная: пять полей, имена совпадают с JSON, который запрашивает промпт.
type Insight struct {
	DetailedExplanation string         `json:"detailed_explanation"`
	CombinedUsage       string         `json:"combined_usage"`
	Activities          []Activity     `json:"step_by_step_activity"`
	Quiz                []QuizQuestion `json:"quiz"`
	YouTubeLinks        []string       `json:"youtube_links"`
}

// IsEmpty возвращает true, если модель не вернула ни одного содержательного поля
func (i *Insight) IsEmpty() bool {
	return i.DetailedExplanation == "" && i.CombinedUsage == "" &&
		len(i.Activities) == 0 && len(i.Quiz) == 0 && len(i.YouTubeLinks) == 0
}

// Activity представляет одну пошаговую активность с обнаруженными объектами
type Activity struct {
	Objects []string `json:"objects"`
	Steps   []string `json:"steps"`
}

// QuizQuestion представляет один вопрос с вариантами ответа.
// Варианты ключуются буквами ("A".."D"), CorrectAnswer хранит букву правильного варианта.
type QuizQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
}

// CorrectOptionText возвращает текст правильного варианта
func (q *QuizQuestion) CorrectOptionText() string {
	return q.Options[q.CorrectAnswer]
}

// IsCorrect проверяет, совпадает ли выбранный текст с правильным вариантом.
// Пустой ответ (вопрос пропущен) всегда неверен.
func (q *QuizQuestion) IsCorrect(answer string) bool {
	return answer != "" && answer == q.CorrectOptionText()
}

// IsValidOption проверяет, что переданный текст — один из вариантов вопроса
func (q *QuizQuestion) IsValidOption(answer string) bool {
	for _, text := range q.Options {
		if text == answer {
			return true
		}
	}
	return false
}
