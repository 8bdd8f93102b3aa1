package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
	"github.com/yourusername/vocab-api/pkg/auth"
)

// TokenPair содержит пару токенов, выдаваемую при входе и обновлении
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"` // Время жизни access-токена в секундах
}

// AuthService предоставляет методы для регистрации, входа и обновления токенов
type AuthService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtService       *auth.JWTService
	refreshLifetime  time.Duration
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	jwtService *auth.JWTService,
	refreshLifetime time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtService:       jwtService,
		refreshLifetime:  refreshLifetime,
	}
}

// Register создает нового пользователя. Через публичную регистрацию доступны
// только роли student и teacher; администраторы создаются вне этого пути.
func (s *AuthService) Register(email, password, fullName, role, schoolName, grade string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}
	if fullName == "" {
		return nil, fmt.Errorf("%w: fullName is required", apperrors.ErrValidation)
	}
	if role == "" {
		role = entity.RoleStudent
	}
	if role != entity.RoleStudent && role != entity.RoleTeacher {
		return nil, fmt.Errorf("%w: role must be student or teacher", apperrors.ErrValidation)
	}

	user := &entity.User{
		Email:      email,
		Password:   password, // Хешируется хуком BeforeSave
		FullName:   fullName,
		Role:       role,
		SchoolName: schoolName,
		Grade:      grade,
		Level:      1,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
		}
		return nil, err
	}

	log.Printf("[AuthService] Зарегистрирован пользователь #%d (%s, роль %s)", user.ID, user.Email, user.Role)
	return user, nil
}

// Login проверяет учетные данные и выдает пару токенов
func (s *AuthService) Login(email, password string) (*entity.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, существует ли email
			return nil, nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, nil, err
	}

	if !user.CheckPassword(password) {
		return nil, nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("[AuthService] Пользователь #%d (%s) вошел в систему", user.ID, user.Email)
	return user, pair, nil
}

// Refresh обменивает действующий refresh-токен на новую пару токенов.
// Старый токен отзывается (ротация): каждый refresh-токен одноразовый.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	stored, err := s.refreshTokenRepo.GetByHash(hashToken(refreshToken))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}
	if !stored.IsValid() {
		return nil, fmt.Errorf("%w: refresh token expired or revoked", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user no longer exists", apperrors.ErrUnauthorized)
	}

	if err := s.refreshTokenRepo.Revoke(stored.ID); err != nil {
		log.Printf("[AuthService] Ошибка отзыва refresh-токена #%d: %v", stored.ID, err)
		return nil, err
	}

	return s.issueTokenPair(user)
}

// Logout отзывает refresh-токен пользователя
func (s *AuthService) Logout(refreshToken string) error {
	stored, err := s.refreshTokenRepo.GetByHash(hashToken(refreshToken))
	if err != nil {
		// Неизвестный токен при выходе не считается ошибкой
		return nil
	}
	return s.refreshTokenRepo.Revoke(stored.ID)
}

// GetUser возвращает пользователя по ID (для /auth/me)
func (s *AuthService) GetUser(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// issueTokenPair генерирует access-токен и новый refresh-токен.
// В БД сохраняется только SHA-256 хеш refresh-токена.
func (s *AuthService) issueTokenPair(user *entity.User) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateToken(user)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации access-токена для пользователя #%d: %v", user.ID, err)
		return nil, err
	}

	refreshValue := uuid.NewString()
	stored := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshValue),
		ExpiresAt: time.Now().Add(s.refreshLifetime),
	}
	if err := s.refreshTokenRepo.Create(stored); err != nil {
		log.Printf("[AuthService] Ошибка сохранения refresh-токена для пользователя #%d: %v", user.ID, err)
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
		ExpiresIn:    s.jwtService.ExpirationSeconds(),
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
