package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// MaxRandomWords — верхняя граница размера случайной выборки за один запрос
const MaxRandomWords = 50

// WordService предоставляет методы для работы со словарем и заявками на слова
type WordService struct {
	wordRepo    repository.WordRepository
	requestRepo repository.WordRequestRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	db          *gorm.DB
}

// NewWordService создает новый сервис словаря
func NewWordService(
	wordRepo repository.WordRepository,
	requestRepo repository.WordRequestRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	db *gorm.DB,
) *WordService {
	return &WordService{
		wordRepo:    wordRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		db:          db,
	}
}

// GetRandomWords возвращает случайную выборку одобренных слов заданной
// сложности. Если одобренных слов меньше, чем запрошено, возвращаются все
// имеющиеся — это не ошибка.
func (s *WordService) GetRandomWords(difficulty string, count int) ([]entity.Word, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", apperrors.ErrValidation)
	}
	if count > MaxRandomWords {
		count = MaxRandomWords
	}
	if !entity.IsValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty '%s'", apperrors.ErrValidation, difficulty)
	}

	return s.wordRepo.GetRandomApproved(difficulty, count)
}

// GetWordByID возвращает слово по его ID
func (s *WordService) GetWordByID(id uint) (*entity.Word, error) {
	return s.wordRepo.GetByID(id)
}

// ListWords возвращает слова с фильтрацией и пагинацией (админ-панель)
func (s *WordService) ListWords(filter repository.WordFilter, page, pageSize int) ([]entity.Word, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20 // Значение по умолчанию
	} else if pageSize > 100 {
		pageSize = 100 // Максимальный лимит
	}

	offset := (page - 1) * pageSize
	return s.wordRepo.List(filter, pageSize, offset)
}

// CreateWord добавляет слово напрямую (администратор); слово сразу одобрено
func (s *WordService) CreateWord(word *entity.Word) (*entity.Word, error) {
	word.Word = strings.TrimSpace(word.Word)
	if word.Word == "" || word.MeaningTa == "" {
		return nil, fmt.Errorf("%w: word and meaning_ta are required", apperrors.ErrValidation)
	}
	if !entity.IsValidDifficulty(word.Difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty '%s'", apperrors.ErrValidation, word.Difficulty)
	}
	word.Approved = true

	if err := s.wordRepo.Create(word); err != nil {
		return nil, err
	}

	log.Printf("[WordService] Слово '%s' добавлено администратором #%d", word.Word, word.CreatedBy)
	return word, nil
}

// UpdateWord обновляет поля слова (администратор)
func (s *WordService) UpdateWord(word *entity.Word) error {
	if !entity.IsValidDifficulty(word.Difficulty) {
		return fmt.Errorf("%w: unknown difficulty '%s'", apperrors.ErrValidation, word.Difficulty)
	}
	return s.wordRepo.Update(word)
}

// CreateWordRequest регистрирует заявку учителя на добавление слова
func (s *WordService) CreateWordRequest(req *entity.WordRequest) (*entity.WordRequest, error) {
	req.Word = strings.TrimSpace(req.Word)
	if req.Word == "" || req.MeaningTa == "" {
		return nil, fmt.Errorf("%w: word and meaning_ta are required", apperrors.ErrValidation)
	}
	if req.Difficulty == "" {
		req.Difficulty = entity.DifficultyMedium
	}
	if !entity.IsValidDifficulty(req.Difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty '%s'", apperrors.ErrValidation, req.Difficulty)
	}
	req.Status = entity.WordRequestPending

	// Слово, уже присутствующее в словаре, не принимается к рассмотрению
	if _, err := s.wordRepo.GetByWord(req.Word); err == nil {
		return nil, fmt.Errorf("%w: word '%s' already exists", apperrors.ErrConflict, req.Word)
	}

	if err := s.requestRepo.Create(req); err != nil {
		return nil, err
	}

	log.Printf("[WordService] Заявка #%d на слово '%s' создана пользователем #%d", req.ID, req.Word, req.TeacherID)
	return req, nil
}

// ListWordRequests возвращает заявки: администратор видит все, учитель — свои
func (s *WordService) ListWordRequests(requesterID uint, requesterRole, status string, page, pageSize int) ([]entity.WordRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}

	teacherID := requesterID
	if requesterRole == entity.RoleAdmin {
		teacherID = 0 // Без фильтра по автору
	}

	offset := (page - 1) * pageSize
	return s.requestRepo.List(teacherID, status, pageSize, offset)
}

// ReviewWordRequest одобряет или отклоняет заявку. Одобрение атомарно
// создает слово и закрывает заявку одной транзакцией; повторное
// рассмотрение уже закрытой заявки запрещено.
func (s *WordService) ReviewWordRequest(requestID, adminID uint, approve bool, adminResponse string) (*entity.WordRequest, error) {
	req, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req.IsReviewed() {
		return nil, fmt.Errorf("%w: request #%d is already %s", apperrors.ErrConflict, requestID, req.Status)
	}

	now := time.Now()
	req.AdminResponse = adminResponse
	req.ReviewedAt = &now
	req.ReviewedBy = &adminID
	if approve {
		req.Status = entity.WordRequestApproved
	} else {
		req.Status = entity.WordRequestRejected
	}

	// --- Начало транзакции ---
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during ReviewWordRequest transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		log.Printf("Error starting transaction in ReviewWordRequest: %v", tx.Error)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, tx.Error)
	}

	if approve {
		word := req.ToWord()
		if err := tx.Create(word).Error; err != nil {
			tx.Rollback()
			log.Printf("Error creating word from request #%d in transaction: %v", requestID, err)
			return nil, fmt.Errorf("failed to create word: %w", err)
		}
	}

	if err := tx.Save(req).Error; err != nil {
		tx.Rollback()
		log.Printf("Error updating word request #%d in transaction: %v", requestID, err)
		return nil, fmt.Errorf("failed to update word request: %w", err)
	}

	// --- Коммит транзакции ---
	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction in ReviewWordRequest: %v", err)
		return nil, err
	}

	log.Printf("[WordService] Заявка #%d рассмотрена администратором #%d: %s", requestID, adminID, req.Status)

	// Уведомление автора — best-effort, ошибка не откатывает рассмотрение
	if author, err := s.userRepo.GetByID(req.TeacherID); err == nil {
		if err := s.emailSvc.SendWordRequestReviewed(author.Email, req.Word, req.Status, adminResponse); err != nil {
			log.Printf("[WordService] Не удалось уведомить автора заявки #%d: %v", requestID, err)
		}
	}

	return req, nil
}
