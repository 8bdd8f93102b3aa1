package repository

import (
	"time"

	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// SessionAggregates — сводные показатели по сессиям пользователя
type SessionAggregates struct {
	GamesPlayed   int64
	BestScore     int
	AverageScore  float64
	TotalDuration int64
}

// GameSessionRepository определяет методы для работы с игровыми сессиями.
// Сессии неизменяемы: интерфейс намеренно не содержит Update и Delete.
type GameSessionRepository interface {
	Create(session *entity.GameSession) error
	GetByID(id uint) (*entity.GameSession, error)
	GetByUser(userID uint, limit, offset int) ([]entity.GameSession, int64, error)
	CountByUser(userID uint) (int64, error)

	// GetAggregates возвращает сводную статистику по всем сессиям пользователя
	GetAggregates(userID uint) (*SessionAggregates, error)

	// GetPlayDays возвращает даты (усеченные до дня, UTC), в которые пользователь
	// завершал хотя бы одну сессию, по убыванию, не более limit штук.
	GetPlayDays(userID uint, limit int) ([]time.Time, error)
}
