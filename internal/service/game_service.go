package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	"github.com/yourusername/vocab-api/internal/handler/dto"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// idempotencyKeyTTL — окно, в течение которого повтор отправки с тем же
// Idempotency-Key считается дубликатом
const idempotencyKeyTTL = 24 * time.Hour

// GameService предоставляет методы для отправки игровых сессий и статистики
type GameService struct {
	sessionRepo     repository.GameSessionRepository
	userRepo        repository.UserRepository
	achievementRepo repository.AchievementRepository
	cacheRepo       repository.CacheRepository
	db              *gorm.DB
}

// NewGameService создает новый игровой сервис
func NewGameService(
	sessionRepo repository.GameSessionRepository,
	userRepo repository.UserRepository,
	achievementRepo repository.AchievementRepository,
	cacheRepo repository.CacheRepository,
	db *gorm.DB,
) *GameService {
	return &GameService{
		sessionRepo:     sessionRepo,
		userRepo:        userRepo,
		achievementRepo: achievementRepo,
		cacheRepo:       cacheRepo,
		db:              db,
	}
}

// SubmitSessionInput содержит данные завершенной игры от клиента
type SubmitSessionInput struct {
	UserID            uint
	GameType          string
	Score             int
	MaxScore          int
	QuestionsAnswered int
	CorrectAnswers    int
	DurationSeconds   int
	DifficultyLevel   string

	// IdempotencyKey — необязательный ключ дедупликации повторной отправки
	// (таймаут клиента не позволяет отличить "не записано" от "записано, ответ потерян")
	IdempotencyKey string
}

// SubmitGameSession сохраняет сессию и применяет дельту очков и прогресс уровня
// к пользователю одной транзакцией. Обновление пользователя выражено атомарными
// SQL-инкрементами: при любом числе параллельных отправок для одного пользователя
// итоговые очки равны сумме всех дельт (никаких read-modify-write).
func (s *GameService) SubmitGameSession(input SubmitSessionInput) (*entity.GameSession, error) {
	session := &entity.GameSession{
		UserID:            input.UserID,
		GameType:          input.GameType,
		Score:             input.Score,
		MaxScore:          input.MaxScore,
		QuestionsAnswered: input.QuestionsAnswered,
		CorrectAnswers:    input.CorrectAnswers,
		DurationSeconds:   input.DurationSeconds,
		DifficultyLevel:   input.DifficultyLevel,
		CompletedAt:       time.Now(),
	}

	// Невалидный payload отклоняется до любых записей (all-or-nothing)
	if err := session.Validate(); err != nil {
		return nil, err
	}

	// Пользователь должен существовать
	if _, err := s.userRepo.GetByID(input.UserID); err != nil {
		return nil, err
	}

	// Дедупликация повторной отправки через Redis SETNX.
	// При недоступном Redis пропускаем проверку (fail-open), но логируем.
	// Захваченный ключ снимается при откате транзакции: иначе повтор после
	// сбоя хранилища получал бы Conflict, а сессия терялась бы навсегда.
	claimedKey := ""
	if input.IdempotencyKey != "" && s.cacheRepo != nil {
		key := fmt.Sprintf("session:idem:%d:%s", input.UserID, input.IdempotencyKey)
		set, err := s.cacheRepo.SetNX(key, 1, idempotencyKeyTTL)
		if err != nil {
			log.Printf("[GameService] Ошибка Redis при проверке идемпотентности (key %s): %v. Продолжаем без дедупликации.", key, err)
		} else if !set {
			return nil, fmt.Errorf("%w: duplicate session submission", apperrors.ErrConflict)
		} else {
			claimedKey = key
		}
	}

	// --- Начало транзакции ---
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			s.releaseIdempotencyKey(claimedKey)
			log.Printf("PANIC recovered during SubmitGameSession transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		s.releaseIdempotencyKey(claimedKey)
		log.Printf("Error starting transaction in SubmitGameSession: %v", tx.Error)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, tx.Error)
	}

	// Сохраняем неизменяемую запись сессии (внутри транзакции)
	if err := tx.Create(session).Error; err != nil {
		tx.Rollback()
		s.releaseIdempotencyKey(claimedKey)
		log.Printf("Error saving game session in transaction: %v", err)
		return nil, fmt.Errorf("failed to save game session: %w", err)
	}

	// Атомарно применяем очки и прогресс уровня одним UPDATE.
	// Целочисленная арифметика обрабатывает несколько переходов уровня за раз:
	// level += (progress + correct) / threshold, progress = (progress + correct) % threshold.
	var newPoints int64
	var newLevel, newProgress int
	row := tx.Raw(`
		UPDATE users
		SET points = points + ?,
		    level = level + (level_progress + ?) / ?,
		    level_progress = (level_progress + ?) % ?,
		    updated_at = NOW()
		WHERE id = ?
		RETURNING points, level, level_progress`,
		session.Score,
		session.CorrectAnswers, entity.LevelUpThreshold,
		session.CorrectAnswers, entity.LevelUpThreshold,
		input.UserID,
	).Row()
	if err := row.Scan(&newPoints, &newLevel, &newProgress); err != nil {
		tx.Rollback()
		s.releaseIdempotencyKey(claimedKey)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		log.Printf("Error applying score to user %d in transaction: %v", input.UserID, err)
		return nil, fmt.Errorf("failed to apply score: %w", err)
	}

	// Разблокируем достижение за каждый набранный уровень (внутри транзакции)
	for _, level := range gainedLevels(session.CorrectAnswers, newLevel, newProgress) {
		achievement := &entity.Achievement{
			UserID:     input.UserID,
			Title:      fmt.Sprintf("Reached Level %d", level),
			Category:   entity.AchievementCategoryLearning,
			UnlockedAt: time.Now(),
		}
		if err := tx.Create(achievement).Error; err != nil {
			tx.Rollback()
			s.releaseIdempotencyKey(claimedKey)
			log.Printf("Error unlocking achievement for user %d in transaction: %v", input.UserID, err)
			return nil, fmt.Errorf("failed to unlock achievement: %w", err)
		}
	}

	// --- Коммит транзакции ---
	// При ошибке коммита ключ НЕ снимается: исход неоднозначен (коммит мог
	// пройти на сервере), и снятие открыло бы дорогу двойной записи.
	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction in SubmitGameSession: %v", err)
		return nil, err
	}

	log.Printf("[GameService] Сессия #%d (%s) сохранена для пользователя #%d: +%d очков, уровень %d",
		session.ID, session.GameType, input.UserID, session.Score, newLevel)
	return session, nil
}

// releaseIdempotencyKey снимает ключ дедупликации после отката транзакции,
// чтобы клиент мог безопасно повторить отправку. Best-effort: если Redis
// недоступен, ключ истечет сам по TTL.
func (s *GameService) releaseIdempotencyKey(key string) {
	if key == "" || s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(key); err != nil {
		log.Printf("[GameService] Не удалось снять ключ идемпотентности %s: %v", key, err)
	}
}

// gainedLevels восстанавливает список уровней, достигнутых этой отправкой,
// из количества правильных ответов и нового состояния счетчика.
// Старый прогресс лежал в [0, threshold), поэтому количество переходов
// однозначно: ceil((correct - newProgress) / threshold) при correct > newProgress.
func gainedLevels(correctAnswers, newLevel, newProgress int) []int {
	if correctAnswers <= newProgress {
		return nil
	}
	gained := (correctAnswers - newProgress + entity.LevelUpThreshold - 1) / entity.LevelUpThreshold

	levels := make([]int, 0, gained)
	for i := 0; i < gained; i++ {
		levels = append(levels, newLevel-gained+1+i)
	}
	return levels
}

// GetUserSessions возвращает историю сессий пользователя с пагинацией
func (s *GameService) GetUserSessions(userID uint, page, pageSize int) ([]entity.GameSession, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10 // Значение по умолчанию
	} else if pageSize > 100 {
		pageSize = 100 // Максимальный лимит
	}

	offset := (page - 1) * pageSize
	return s.sessionRepo.GetByUser(userID, pageSize, offset)
}

// GetUserStats собирает сводную статистику пользователя: очки, уровень,
// количество игр, лучший/средний счет, дневную серию, позицию в лидерборде
// и количество достижений.
func (s *GameService) GetUserStats(userID uint) (*dto.UserStatsResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	agg, err := s.sessionRepo.GetAggregates(userID)
	if err != nil {
		log.Printf("[GameService] Ошибка при получении агрегатов сессий пользователя %d: %v", userID, err)
		return nil, err
	}

	days, err := s.sessionRepo.GetPlayDays(userID, 366)
	if err != nil {
		log.Printf("[GameService] Ошибка при получении игровых дней пользователя %d: %v", userID, err)
		return nil, err
	}

	// Позиция в полном студенческом лидерборде; учителя и администраторы
	// в рейтинг не входят — для них rank остается 0
	rank := 0
	if user.Role == entity.RoleStudent {
		rank, err = s.userRepo.GetStudentRank(userID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	achievements, err := s.achievementRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &dto.UserStatsResponse{
		TotalPoints:    user.Points,
		Level:          user.Level,
		GamesPlayed:    agg.GamesPlayed,
		BestScore:      agg.BestScore,
		AverageScore:   agg.AverageScore,
		TotalTimeSpent: agg.TotalDuration,
		CurrentStreak:  computeDayStreak(days, time.Now().UTC()),
		Rank:           rank,
		Achievements:   achievements,
	}, nil
}

// computeDayStreak считает длину серии подряд идущих дней с хотя бы одной
// завершенной сессией. Серия жива, если последний игровой день — сегодня
// или вчера; days отсортированы по убыванию и усечены до суток (UTC).
func computeDayStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := now.Truncate(24 * time.Hour)
	latest := days[0].Truncate(24 * time.Hour)
	if today.Sub(latest) > 24*time.Hour {
		return 0
	}

	streak := 1
	prev := latest
	for _, d := range days[1:] {
		d = d.Truncate(24 * time.Hour)
		if prev.Sub(d) != 24*time.Hour {
			break
		}
		streak++
		prev = d
	}
	return streak
}
