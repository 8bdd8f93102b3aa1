package entity

import "time"

// Категории достижений
const (
	AchievementCategoryGames    = "games"
	AchievementCategoryLearning = "learning"
	AchievementCategorySocial   = "social"
	AchievementCategorySpecial  = "special"
)

// Achievement представляет разблокированное достижение пользователя
type Achievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Title         string    `gorm:"size:100;not null" json:"title"`
	Description   string    `gorm:"size:255;not null;default:''" json:"description,omitempty"`
	PointsAwarded int       `gorm:"not null;default:0" json:"points_awarded"`
	Category      string    `gorm:"size:20;not null;index" json:"category"`
	UnlockedAt    time.Time `gorm:"not null" json:"unlocked_at"`
}

// TableName определяет имя таблицы для GORM
func (Achievement) TableName() string {
	return "achievements"
}
