package repository

import (
	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// WordRequestRepository определяет методы для работы с заявками на слова
type WordRequestRepository interface {
	Create(request *entity.WordRequest) error
	GetByID(id uint) (*entity.WordRequest, error)
	Update(request *entity.WordRequest) error

	// List возвращает заявки с фильтрами: teacherID == 0 — заявки всех учителей,
	// status == "" — заявки в любом статусе.
	List(teacherID uint, status string, limit, offset int) ([]entity.WordRequest, int64, error)
}
