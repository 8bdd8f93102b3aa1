package repository

import (
	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// AchievementRepository определяет методы для работы с достижениями
type AchievementRepository interface {
	Create(achievement *entity.Achievement) error
	GetByUser(userID uint) ([]entity.Achievement, error)
	CountByUser(userID uint) (int64, error)
}
