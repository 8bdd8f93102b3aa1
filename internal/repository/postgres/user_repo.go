package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile обновляет профиль пользователя без изменения пароля и игровых счетчиков.
// Очки и уровень меняются только через GameService при отправке сессии.
func (r *UserRepo) UpdateProfile(userID uint, updates map[string]interface{}) error {
	delete(updates, "password")
	delete(updates, "points")
	delete(updates, "level")
	delete(updates, "level_progress")

	updates["updated_at"] = time.Now()

	return r.db.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}

// List возвращает список пользователей с пагинацией
func (r *UserRepo) List(limit, offset int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.Limit(limit).Offset(offset).Order("id").Find(&users).Error
	return users, err
}

// GetStudentsLeaderboard возвращает студентов с количеством сыгранных игр,
// отсортированных по очкам. Тай-брейк — возрастание ID: "points DESC" сам по
// себе не задает полный порядок, поэтому фиксируем детерминированный вторичный ключ.
// since != nil оставляет только студентов, завершивших сессию не раньше since
// ("играл на этой неделе"); games_played при этом считается по всем сессиям.
func (r *UserRepo) GetStudentsLeaderboard(since *time.Time, limit int) ([]repository.LeaderboardRow, error) {
	var rows []repository.LeaderboardRow

	query := r.db.Table("users u").
		Select("u.id AS user_id, u.full_name, u.avatar_url, u.points, COUNT(s.id) AS games_played").
		Joins("LEFT JOIN game_sessions s ON s.user_id = u.id").
		Where("u.role = ?", entity.RoleStudent)

	if since != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM game_sessions sw WHERE sw.user_id = u.id AND sw.completed_at >= ?)",
			*since,
		)
	}

	err := query.
		Group("u.id, u.full_name, u.avatar_url, u.points").
		Order("u.points DESC, u.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetStudentRank возвращает 1-based позицию студента в полном лидерборде
// (тот же порядок: points DESC, id ASC). Для учителей и администраторов,
// которые в рейтинг не попадают, возвращает ErrNotFound.
func (r *UserRepo) GetStudentRank(userID uint) (int, error) {
	user, err := r.GetByID(userID)
	if err != nil {
		return 0, err
	}
	if user.Role != entity.RoleStudent {
		return 0, apperrors.ErrNotFound
	}

	var ahead int64
	err = r.db.Model(&entity.User{}).
		Where("role = ?", entity.RoleStudent).
		Where("points > ? OR (points = ? AND id < ?)", user.Points, user.Points, user.ID).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}

// isUniqueViolation распознает нарушение уникального индекса (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
