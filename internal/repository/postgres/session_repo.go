package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// GameSessionRepo реализует repository.GameSessionRepository.
// Записи append-only: репозиторий не содержит Update и Delete.
type GameSessionRepo struct {
	db *gorm.DB
}

// NewGameSessionRepo создает новый репозиторий игровых сессий
func NewGameSessionRepo(db *gorm.DB) *GameSessionRepo {
	return &GameSessionRepo{db: db}
}

// Create сохраняет завершенную игровую сессию
func (r *GameSessionRepo) Create(session *entity.GameSession) error {
	return r.db.Create(session).Error
}

// GetByID возвращает сессию по ID
func (r *GameSessionRepo) GetByID(id uint) (*entity.GameSession, error) {
	var session entity.GameSession
	err := r.db.First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByUser возвращает сессии пользователя с пагинацией и общим количеством
func (r *GameSessionRepo) GetByUser(userID uint, limit, offset int) ([]entity.GameSession, int64, error) {
	var sessions []entity.GameSession
	var total int64

	// Транзакция для согласованности списка и общего количества
	tx := r.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	if err := tx.Model(&entity.GameSession{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	err := tx.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	if err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// CountByUser возвращает количество сессий пользователя
func (r *GameSessionRepo) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.GameSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// GetAggregates возвращает сводную статистику по сессиям пользователя
func (r *GameSessionRepo) GetAggregates(userID uint) (*repository.SessionAggregates, error) {
	var agg repository.SessionAggregates

	err := r.db.Model(&entity.GameSession{}).
		Select("COUNT(*) AS games_played, COALESCE(MAX(score), 0) AS best_score, COALESCE(AVG(score), 0) AS average_score, COALESCE(SUM(duration_seconds), 0) AS total_duration").
		Where("user_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// GetPlayDays возвращает дни (по UTC), в которые пользователь завершал сессии,
// по убыванию. Используется для расчета дневной серии.
func (r *GameSessionRepo) GetPlayDays(userID uint, limit int) ([]time.Time, error) {
	var days []time.Time

	err := r.db.Model(&entity.GameSession{}).
		Select("DISTINCT date_trunc('day', completed_at AT TIME ZONE 'UTC') AS day").
		Where("user_id = ?", userID).
		Order("day DESC").
		Limit(limit).
		Pluck("day", &days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}
