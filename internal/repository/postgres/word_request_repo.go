package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// WordRequestRepo реализует repository.WordRequestRepository
type WordRequestRepo struct {
	db *gorm.DB
}

// NewWordRequestRepo создает новый репозиторий заявок на слова
func NewWordRequestRepo(db *gorm.DB) *WordRequestRepo {
	return &WordRequestRepo{db: db}
}

// Create создает новую заявку
func (r *WordRequestRepo) Create(request *entity.WordRequest) error {
	return r.db.Create(request).Error
}

// GetByID возвращает заявку по ID
func (r *WordRequestRepo) GetByID(id uint) (*entity.WordRequest, error) {
	var request entity.WordRequest
	err := r.db.First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// Update обновляет заявку (например, при рассмотрении администратором)
func (r *WordRequestRepo) Update(request *entity.WordRequest) error {
	return r.db.Save(request).Error
}

// List возвращает заявки с фильтрами и пагинацией.
// teacherID == 0 — заявки всех учителей, status == "" — любой статус.
func (r *WordRequestRepo) List(teacherID uint, status string, limit, offset int) ([]entity.WordRequest, int64, error) {
	var requests []entity.WordRequest
	var total int64

	query := r.db.Model(&entity.WordRequest{})
	if teacherID != 0 {
		query = query.Where("teacher_id = ?", teacherID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}
