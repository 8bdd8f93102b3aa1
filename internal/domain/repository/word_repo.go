package repository

import (
	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// WordFilter описывает фильтры для списка слов
type WordFilter struct {
	// Approved: nil — без фильтра, иначе фильтр по флагу
	Approved *bool
	// Difficulty: пустая строка — без фильтра
	Difficulty string
}

// WordRepository определяет методы для работы со словарем
type WordRepository interface {
	Create(word *entity.Word) error
	GetByID(id uint) (*entity.Word, error)
	GetByWord(word string) (*entity.Word, error)
	Update(word *entity.Word) error
	List(filter WordFilter, limit, offset int) ([]entity.Word, int64, error)

	// GetRandomApproved возвращает равномерную случайную выборку без повторов
	// из одобренных слов заданной сложности; если слов меньше limit,
	// возвращает все имеющиеся.
	GetRandomApproved(difficulty string, limit int) ([]entity.Word, error)
}
