package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// AchievementRepo реализует repository.AchievementRepository
type AchievementRepo struct {
	db *gorm.DB
}

// NewAchievementRepo создает новый репозиторий достижений
func NewAchievementRepo(db *gorm.DB) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// Create сохраняет разблокированное достижение
func (r *AchievementRepo) Create(achievement *entity.Achievement) error {
	return r.db.Create(achievement).Error
}

// GetByUser возвращает достижения пользователя, последние первыми
func (r *AchievementRepo) GetByUser(userID uint) ([]entity.Achievement, error) {
	var achievements []entity.Achievement
	err := r.db.Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&achievements).Error
	return achievements, err
}

// CountByUser возвращает количество достижений пользователя
func (r *AchievementRepo) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Achievement{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
