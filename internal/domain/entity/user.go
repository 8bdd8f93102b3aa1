package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Роли пользователей
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// LevelUpThreshold — количество правильных ответов для перехода на следующий уровень
const LevelUpThreshold = 5

// User представляет пользователя в системе
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password  string `gorm:"size:100;not null" json:"-"`
	FullName  string `gorm:"size:100;not null" json:"fullName"`
	Role      string `gorm:"size:20;not null;default:'student';index" json:"role"` // student, teacher или admin
	AvatarURL string `gorm:"size:255;not null;default:''" json:"avatar_url,omitempty"`
	SchoolName string `gorm:"size:100;not null;default:''" json:"school_name,omitempty"`
	Grade      string `gorm:"size:20;not null;default:''" json:"grade,omitempty"`

	// Points монотонно растет от завершенных игр; index для сортировки лидерборда
	Points int64 `gorm:"not null;default:0;index:idx_users_leaderboard" json:"points"`

	// Level начинается с 1 и увеличивается только через переход уровня
	Level int `gorm:"not null;default:1" json:"level"`

	// LevelProgress — счетчик правильных ответов текущего уровня, [0, LevelUpThreshold)
	LevelProgress int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// IsValidRole проверяет, что роль входит в допустимый набор
func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	// Хешируем пароль только если он:
	// 1. Не пустой
	// 2. Не является уже bcrypt-хешем (начинается с "$2a$", "$2b$" или "$2y$")
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
