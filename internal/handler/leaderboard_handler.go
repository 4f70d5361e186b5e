package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/curioscope-api/internal/handler/dto"
	"github.com/yourusername/curioscope-api/internal/service"
)

// LeaderboardHandler отдает таблицу лидеров
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler создает новый обработчик таблицы лидеров
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Get возвращает верхушку таблицы лидеров
// GET /api/leaderboard?limit=10
func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultLeaderboardLimit)))

	entries, err := h.leaderboardService.Top(limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LeaderboardResponse{Entries: entries})
}

// Export выгружает таблицу лидеров в файл Excel
// GET /api/leaderboard/export
func (h *LeaderboardHandler) Export(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultLeaderboardLimit)))

	f, err := h.leaderboardService.ExportXLSX(limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("leaderboard_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка записи файла экспорта: %v", err)
	}
}
