package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	"github.com/yourusername/vocab-api/internal/handler/dto"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
	"github.com/yourusername/vocab-api/internal/service"
)

// WordHandler обрабатывает запросы словаря и заявок на слова
type WordHandler struct {
	wordService *service.WordService
}

// NewWordHandler создает новый обработчик словаря
func NewWordHandler(wordService *service.WordService) *WordHandler {
	return &WordHandler{wordService: wordService}
}

// GetRandomWords возвращает случайную выборку одобренных слов для игры.
// Query-параметры: difficulty (easy|medium|hard), count (по умолчанию 10).
func (h *WordHandler) GetRandomWords(c *gin.Context) {
	difficulty := c.DefaultQuery("difficulty", entity.DifficultyEasy)
	count, err := strconv.Atoi(c.DefaultQuery("count", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid count", "error_type": "validation_error"})
		return
	}

	words, err := h.wordService.GetRandomWords(difficulty, count)
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"words": words,
		"count": len(words),
	})
}

// GetWord возвращает слово по ID
func (h *WordHandler) GetWord(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid word ID", "error_type": "validation_error"})
		return
	}

	word, err := h.wordService.GetWordByID(uint(id))
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"word": word})
}

// ListWords возвращает слова с фильтрацией (админ-панель).
// Query-параметры: approved (true|false), difficulty, page, page_size.
func (h *WordHandler) ListWords(c *gin.Context) {
	var filter repository.WordFilter
	if raw := c.Query("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid approved flag", "error_type": "validation_error"})
			return
		}
		filter.Approved = &approved
	}
	filter.Difficulty = c.Query("difficulty")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	words, total, err := h.wordService.ListWords(filter, page, pageSize)
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Items:    words,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// CreateWord добавляет слово напрямую (администратор)
func (h *WordHandler) CreateWord(c *gin.Context) {
	adminID := c.MustGet("user_id").(uint)

	var req dto.CreateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	word, err := h.wordService.CreateWord(&entity.Word{
		Word:             req.Word,
		MeaningTa:        req.MeaningTa,
		MeaningEn:        req.MeaningEn,
		Domain:           req.Domain,
		Period:           req.Period,
		ModernEquivalent: req.ModernEquivalent,
		Notes:            req.Notes,
		Difficulty:       req.Difficulty,
		CreatedBy:        adminID,
	})
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"word": word})
}

// UpdateWord обновляет поля слова (администратор)
func (h *WordHandler) UpdateWord(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid word ID", "error_type": "validation_error"})
		return
	}

	var req dto.UpdateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	word, err := h.wordService.GetWordByID(uint(id))
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	if req.MeaningTa != "" {
		word.MeaningTa = req.MeaningTa
	}
	if req.MeaningEn != "" {
		word.MeaningEn = req.MeaningEn
	}
	if req.Domain != "" {
		word.Domain = req.Domain
	}
	if req.Period != "" {
		word.Period = req.Period
	}
	if req.ModernEquivalent != "" {
		word.ModernEquivalent = req.ModernEquivalent
	}
	if req.Notes != "" {
		word.Notes = req.Notes
	}
	if req.Difficulty != "" {
		word.Difficulty = req.Difficulty
	}
	if req.Approved != nil {
		word.Approved = *req.Approved
	}

	if err := h.wordService.UpdateWord(word); err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"word": word})
}

// SuggestWord регистрирует заявку учителя на добавление слова
func (h *WordHandler) SuggestWord(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req dto.SuggestWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	request, err := h.wordService.CreateWordRequest(&entity.WordRequest{
		Word:        req.Word,
		MeaningTa:   req.MeaningTa,
		MeaningEn:   req.MeaningEn,
		Domain:      req.Domain,
		Period:      req.Period,
		Notes:       req.Notes,
		Difficulty:  req.Difficulty,
		TeacherID:  userID,
	})
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": request})
}

// ListWordRequests возвращает заявки: администратор видит все, учитель — свои
func (h *WordHandler) ListWordRequests(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	role := c.MustGet("role").(string)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	requests, total, err := h.wordService.ListWordRequests(userID, role, c.Query("status"), page, pageSize)
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Items:    requests,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// ReviewWordRequest принимает решение администратора по заявке
func (h *WordHandler) ReviewWordRequest(c *gin.Context) {
	adminID := c.MustGet("user_id").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID", "error_type": "validation_error"})
		return
	}

	var req dto.ReviewWordRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	request, err := h.wordService.ReviewWordRequest(uint(id), adminID, req.Approve, req.AdminResponse)
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// handleWordError преобразует ошибки сервиса в HTTP-ответы
func (h *WordHandler) handleWordError(c *gin.Context, err error) {
	log.Printf("[WordHandler] Ошибка: %v", err)

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ресурс не найден", "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера", "error_type": "internal_server_error"})
	}
}
