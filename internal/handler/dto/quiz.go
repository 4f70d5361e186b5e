package dto

// AnswerRequest — выбор варианта ответа на один вопрос квиза
type AnswerRequest struct {
	QuestionIndex int    `json:"question_index" binding:"min=0"`
	Option        string `json:"option" binding:"required"`
}

// QuizResultResponse — итог проверки квиза
type QuizResultResponse struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// QuizQuestionResponse — вопрос квиза без правильного ответа
type QuizQuestionResponse struct {
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

// FeedbackRequest — отзыв пользователя о сессии
type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=10"`
	Comment string `json:"comment"`
}
