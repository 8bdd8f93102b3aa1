package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/vocab-api/internal/handler/dto"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
	"github.com/yourusername/vocab-api/internal/service"
)

// GameHandler обрабатывает запросы игровых сессий и статистики
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler создает новый обработчик игровых сессий
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// SubmitSession принимает завершенную игровую сессию.
// Заголовок Idempotency-Key (необязательный) защищает от двойной записи
// при повторной отправке после таймаута клиента.
func (h *GameHandler) SubmitSession(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req dto.SubmitSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	session, err := h.gameService.SubmitGameSession(service.SubmitSessionInput{
		UserID:            userID,
		GameType:          req.GameType,
		Score:             req.Score,
		MaxScore:          req.MaxScore,
		QuestionsAnswered: req.QuestionsAnswered,
		CorrectAnswers:    req.CorrectAnswers,
		DurationSeconds:   req.DurationSeconds,
		DifficultyLevel:   req.DifficultyLevel,
		IdempotencyKey:    c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// GetMySessions возвращает историю сессий текущего пользователя
func (h *GameHandler) GetMySessions(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	sessions, total, err := h.gameService.GetUserSessions(userID, page, pageSize)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Items:    sessions,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetMyStats возвращает сводную статистику текущего пользователя
func (h *GameHandler) GetMyStats(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	stats, err := h.gameService.GetUserStats(userID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetUserStats возвращает статистику произвольного пользователя (учитель/администратор)
func (h *GameHandler) GetUserStats(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "error_type": "validation_error"})
		return
	}

	stats, err := h.gameService.GetUserStats(uint(targetID))
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// handleGameError преобразует ошибки сервиса в HTTP-ответы
func (h *GameHandler) handleGameError(c *gin.Context, err error) {
	log.Printf("[GameHandler] Ошибка: %v", err)

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "error_type": "validation_error"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Сессия уже была записана", "error_type": "duplicate_submission"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден", "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Сервис временно недоступен", "error_type": "unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера", "error_type": "internal_server_error"})
	}
}
