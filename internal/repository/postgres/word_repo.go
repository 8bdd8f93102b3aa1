package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// WordRepo реализует repository.WordRepository
type WordRepo struct {
	db *gorm.DB
}

// NewWordRepo создает новый репозиторий слов
func NewWordRepo(db *gorm.DB) *WordRepo {
	return &WordRepo{db: db}
}

// Create создает новое слово
func (r *WordRepo) Create(word *entity.Word) error {
	err := r.db.Create(word).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает слово по ID
func (r *WordRepo) GetByID(id uint) (*entity.Word, error) {
	var word entity.Word
	err := r.db.First(&word, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &word, nil
}

// GetByWord возвращает запись по отображаемому слову (уникальный ключ)
func (r *WordRepo) GetByWord(text string) (*entity.Word, error) {
	var word entity.Word
	err := r.db.Where("word = ?", text).First(&word).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &word, nil
}

// Update обновляет информацию о слове
func (r *WordRepo) Update(word *entity.Word) error {
	return r.db.Save(word).Error
}

// List возвращает слова с фильтрами и пагинацией
func (r *WordRepo) List(filter repository.WordFilter, limit, offset int) ([]entity.Word, int64, error) {
	var words []entity.Word
	var total int64

	query := r.db.Model(&entity.Word{})
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Limit(limit).Offset(offset).Find(&words).Error
	if err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

// GetRandomApproved возвращает случайные одобренные слова заданной сложности.
// ORDER BY RANDOM() дает равномерную выборку без повторов (каждая строка
// попадает в результат не более одного раза); при маленьком пуле вернутся все слова.
func (r *WordRepo) GetRandomApproved(difficulty string, limit int) ([]entity.Word, error) {
	var words []entity.Word
	err := r.db.Where("approved = ? AND difficulty = ?", true, difficulty).
		Order("RANDOM()").
		Limit(limit).
		Find(&words).Error
	return words, err
}
