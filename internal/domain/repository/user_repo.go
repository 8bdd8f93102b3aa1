package repository

import (
	"time"

	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// LeaderboardRow — строка агрегированного лидерборда (проекция, не хранится в БД).
// GamesPlayed считается по всем сессиям пользователя независимо от временного окна.
type LeaderboardRow struct {
	UserID      uint   `json:"user_id"`
	FullName    string `json:"full_name"`
	AvatarURL   string `json:"avatar_url"`
	Points      int64  `json:"points"`
	GamesPlayed int64  `json:"games_played"`
}

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	UpdateProfile(userID uint, updates map[string]interface{}) error
	List(limit, offset int) ([]entity.User, error)

	// GetStudentsLeaderboard возвращает студентов, отсортированных по очкам
	// (тай-брейк — возрастание ID), с количеством сыгранных игр.
	// since != nil ограничивает кандидатов теми, кто завершил хотя бы одну
	// сессию не раньше since; сортировка всегда по суммарным очкам.
	GetStudentsLeaderboard(since *time.Time, limit int) ([]LeaderboardRow, error)

	// GetStudentRank возвращает позицию студента в полном лидерборде
	// (1-based, тот же порядок сортировки, что и GetStudentsLeaderboard).
	GetStudentRank(userID uint) (int, error)
}
