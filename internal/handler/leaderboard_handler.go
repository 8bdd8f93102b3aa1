package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
	"github.com/yourusername/vocab-api/internal/service"
)

// LeaderboardHandler обрабатывает запросы рейтинга студентов
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler создает новый обработчик лидерборда
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// timeFilterQuery читает окно рейтинга из query-параметров.
// Канонический параметр — time_filter; filter принимается для
// совместимости со старыми клиентами.
func timeFilterQuery(c *gin.Context) string {
	if v := c.Query("time_filter"); v != "" {
		return v
	}
	return c.Query("filter")
}

// GetLeaderboard возвращает топ студентов.
// Query-параметры: time_filter (all|week|month, по умолчанию all), limit (по умолчанию 10).
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultLeaderboardLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit", "error_type": "validation_error"})
		return
	}

	resp, err := h.leaderboardService.GetLeaderboard(timeFilterQuery(c), limit)
	if err != nil {
		h.handleLeaderboardError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetAdminLeaderboard возвращает расширенный рейтинг для админ-панели
func (h *LeaderboardHandler) GetAdminLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.AdminLeaderboardLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit", "error_type": "validation_error"})
		return
	}

	resp, err := h.leaderboardService.GetLeaderboard(timeFilterQuery(c), limit)
	if err != nil {
		h.handleLeaderboardError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportLeaderboard выгружает рейтинг в файл XLSX (админ-панель)
func (h *LeaderboardHandler) ExportLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.AdminLeaderboardLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit", "error_type": "validation_error"})
		return
	}

	resp, err := h.leaderboardService.GetLeaderboard(timeFilterQuery(c), limit)
	if err != nil {
		h.handleLeaderboardError(c, err)
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[LeaderboardHandler] Ошибка закрытия файла экспорта: %v", err)
		}
	}()

	sheet := "Leaderboard"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Rank", "User ID", "Full Name", "Points", "Games Played"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, entry := range resp.Entries {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.Rank)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.Points)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), entry.GamesPlayed)
	}

	filename := fmt.Sprintf("leaderboard_%s_%s.xlsx", resp.TimeFilter, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка записи файла экспорта: %v", err)
	}
}

// handleLeaderboardError преобразует ошибки сервиса в HTTP-ответы
func (h *LeaderboardHandler) handleLeaderboardError(c *gin.Context, err error) {
	log.Printf("[LeaderboardHandler] Ошибка: %v", err)

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера", "error_type": "internal_server_error"})
	}
}
