package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/curioscope-api/internal/middleware"
)

// SessionHandler отдает и изменяет состояние сессии пользователя
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Get возвращает снимок текущей сессии
// GET /api/session
func (h *SessionHandler) Get(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// Reset очищает рабочее состояние сессии, сохраняя тему и флаг отзыва
// POST /api/session/reset
func (h *SessionHandler) Reset(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}
	sess.Reset()
	c.JSON(http.StatusOK, sess.Snapshot())
}

// ToggleTheme переключает тему оформления light/dark
// POST /api/session/theme
func (h *SessionHandler) ToggleTheme(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}
	theme := sess.ToggleTheme()
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}
