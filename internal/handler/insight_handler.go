package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/curioscope-api/internal/domain/entity"
	"github.com/yourusername/curioscope-api/internal/handler/dto"
	"github.com/yourusername/curioscope-api/internal/handler/helper"
	"github.com/yourusername/curioscope-api/internal/middleware"
	"github.com/yourusername/curioscope-api/internal/service"
)

// InsightHandler обрабатывает запросы генерации и чтения материалов по объектам
type InsightHandler struct {
	insightService *service.InsightService
}

// NewInsightHandler создает новый обработчик материалов
func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// Generate запрашивает у модели материалы по обнаруженным объектам
// POST /api/insights
func (h *InsightHandler) Generate(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}

	ins, err := h.insightService.Generate(c.Request.Context(), sess)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(ins))
}

// Get возвращает уже сгенерированные материалы сессии
// GET /api/insights
func (h *InsightHandler) Get(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}

	ins, err := h.insightService.Current(sess)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(ins))
}

// toResponse собирает ответ клиенту: правильные ответы квиза не раскрываются,
// ссылки на видео отдаются в embed-форме
func (h *InsightHandler) toResponse(ins *entity.Insight) gin.H {
	quiz := make([]dto.QuizQuestionResponse, 0, len(ins.Quiz))
	for _, q := range ins.Quiz {
		quiz = append(quiz, dto.QuizQuestionResponse{
			Question: q.Question,
			Options:  q.Options,
		})
	}

	videos := make([]string, 0, len(ins.YouTubeLinks))
	for _, link := range ins.YouTubeLinks {
		videos = append(videos, helper.YouTubeEmbedURL(link))
	}

	return gin.H{
		"detailed_explanation":  ins.DetailedExplanation,
		"combined_usage":        ins.CombinedUsage,
		"step_by_step_activity": ins.Activities,
		"quiz":                  quiz,
		"youtube_links":         videos,
	}
}
