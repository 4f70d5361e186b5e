package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/curioscope-api/internal/handler/dto"
	"github.com/yourusername/curioscope-api/internal/middleware"
	"github.com/yourusername/curioscope-api/internal/service"
)

// QuizHandler обрабатывает ответы на квиз и его отправку
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик квиза
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Answer сохраняет выбранный вариант для одного вопроса
// POST /api/quiz/answer
func (h *QuizHandler) Answer(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}

	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quizService.SelectAnswer(sess, req.QuestionIndex, req.Option); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Answer recorded"})
}

// Submit оценивает ответы и записывает результат в таблицу лидеров
// POST /api/quiz/submit
func (h *QuizHandler) Submit(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}

	score, total, err := h.quizService.Submit(sess)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuizResultResponse{Score: score, Total: total})
}
