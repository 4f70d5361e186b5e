package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/curioscope-api/internal/handler/dto"
	"github.com/yourusername/curioscope-api/internal/middleware"
	"github.com/yourusername/curioscope-api/internal/service"
)

// FeedbackHandler принимает отзывы пользователей
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

// NewFeedbackHandler создает новый обработчик отзывов
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit сохраняет отзыв пользователя о сессии
// POST /api/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}

	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.feedbackService.Submit(c.Request.Context(), sess, req.Rating, req.Comment); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback saved"})
}
