package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/curioscope-api/internal/middleware"
	"github.com/yourusername/curioscope-api/internal/service"
	"github.com/yourusername/curioscope-api/pkg/auth"
)

// ScanHandler запускает окно детекции и транслирует его ход по WebSocket
type ScanHandler struct {
	scanService *service.ScanService
	jwtService  *auth.JWTService
}

// NewScanHandler создает новый обработчик сканирования
func NewScanHandler(scanService *service.ScanService, jwtService *auth.JWTService) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		jwtService:  jwtService,
	}
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin пустой у небраузерных клиентов; браузерные ходят
		// с того же хоста, что и API
		return true
	},
}

// Scan запускает окно детекции и блокируется до его завершения
// POST /api/scan
func (h *ScanHandler) Scan(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}

	result, err := h.scanService.Scan(c.Request.Context(), sess)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := gin.H{
		"run_id":  result.RunID,
		"objects": result.Objects,
		"state":   sess.State(),
	}
	if result.Warning != "" {
		resp["warning"] = result.Warning
	}
	c.JSON(http.StatusOK, resp)
}

// Progress транслирует метки обнаруживаемых объектов по мере их появления.
// Токен передается в query-параметре: браузерный WebSocket не умеет заголовки
// GET /api/scan/progress?token=...
func (h *ScanHandler) Progress(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token parameter"})
		return
	}

	claims, err := h.jwtService.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ScanHandler] Ошибка апгрейда соединения: %v", err)
		return
	}
	defer conn.Close()

	ch := h.scanService.Subscribe(claims.UserID)
	defer h.scanService.Unsubscribe(claims.UserID, ch)

	// Читающая горутина нужна только для обнаружения разрыва: клиент может
	// отключиться, так и не запустив сканирование, и без чтения обработчик
	// повис бы на канале навсегда
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case label, ok := <-ch:
			if !ok {
				// Канал закрыт: окно детекции завершено
				_ = conn.WriteJSON(gin.H{"done": true})
				return
			}
			if err := conn.WriteJSON(gin.H{"object": label}); err != nil {
				log.Printf("[ScanHandler] Ошибка записи в WebSocket для пользователя %d: %v", claims.UserID, err)
				return
			}
		case <-disconnected:
			return
		}
	}
}
