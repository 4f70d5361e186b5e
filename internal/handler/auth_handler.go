package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/curioscope-api/internal/handler/dto"
	"github.com/yourusername/curioscope-api/internal/service"
)

// AuthHandler обрабатывает запросы регистрации и входа
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register обрабатывает запрос на регистрацию
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		UserID:   user.ID,
		Username: user.Username,
	})
}

// Login обрабатывает запрос на вход
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		UserID:      user.ID,
		Username:    user.Username,
		AccessToken: token,
		ExpiresIn:   int64(h.authService.TokenTTL().Seconds()),
	})
}

// Logout удаляет сессию пользователя со всем ее состоянием
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetUint("user_id")
	h.authService.Logout(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
