package repository

import (
	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// RefreshTokenRepository определяет методы для работы с refresh-токенами
type RefreshTokenRepository interface {
	Create(token *entity.RefreshToken) error
	GetByHash(tokenHash string) (*entity.RefreshToken, error)
	Revoke(id uint) error
	DeleteExpired() (int64, error)
}
