package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// ============================================================================
// Моки для GameService
// ============================================================================

// MockUserRepoForGameService реализует repository.UserRepository
type MockUserRepoForGameService struct {
	mock.Mock
}

func (m *MockUserRepoForGameService) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepoForGameService) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForGameService) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForGameService) UpdateProfile(userID uint, updates map[string]interface{}) error {
	args := m.Called(userID, updates)
	return args.Error(0)
}

func (m *MockUserRepoForGameService) List(limit, offset int) ([]entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepoForGameService) GetStudentsLeaderboard(since *time.Time, limit int) ([]repository.LeaderboardRow, error) {
	args := m.Called(since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LeaderboardRow), args.Error(1)
}

func (m *MockUserRepoForGameService) GetStudentRank(userID uint) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// MockSessionRepo реализует repository.GameSessionRepository
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(session *entity.GameSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionRepo) GetByID(id uint) (*entity.GameSession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameSession), args.Error(1)
}

func (m *MockSessionRepo) GetByUser(userID uint, limit, offset int) ([]entity.GameSession, int64, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.GameSession), args.Get(1).(int64), args.Error(2)
}

func (m *MockSessionRepo) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepo) GetAggregates(userID uint) (*repository.SessionAggregates, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SessionAggregates), args.Error(1)
}

func (m *MockSessionRepo) GetPlayDays(userID uint, limit int) ([]time.Time, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

// MockAchievementRepo реализует repository.AchievementRepository
type MockAchievementRepo struct {
	mock.Mock
}

func (m *MockAchievementRepo) Create(achievement *entity.Achievement) error {
	args := m.Called(achievement)
	return args.Error(0)
}

func (m *MockAchievementRepo) GetByUser(userID uint) ([]entity.Achievement, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Achievement), args.Error(1)
}

func (m *MockAchievementRepo) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCacheRepo реализует repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepo) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepo) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}

// ============================================================================
// SubmitGameSession
// ============================================================================

func validSubmitInput() SubmitSessionInput {
	return SubmitSessionInput{
		UserID:            1,
		GameType:          entity.GameTypeMatch,
		Score:             40,
		MaxScore:          50,
		QuestionsAnswered: 5,
		CorrectAnswers:    4,
		DurationSeconds:   120,
		DifficultyLevel:   entity.DifficultyEasy,
	}
}

func TestSubmitGameSession_RejectsInvalidPayload(t *testing.T) {
	sessionRepo := new(MockSessionRepo)
	userRepo := new(MockUserRepoForGameService)
	svc := NewGameService(sessionRepo, userRepo, new(MockAchievementRepo), new(MockCacheRepo), nil)

	input := validSubmitInput()
	input.Score = 60 // больше max_score

	session, err := svc.SubmitGameSession(input)
	assert.Nil(t, session)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	// Невалидная отправка не должна трогать хранилище
	sessionRepo.AssertNotCalled(t, "Create", mock.Anything)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestSubmitGameSession_UnknownUser(t *testing.T) {
	sessionRepo := new(MockSessionRepo)
	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetByID", uint(1)).Return(nil, apperrors.ErrNotFound)

	svc := NewGameService(sessionRepo, userRepo, new(MockAchievementRepo), new(MockCacheRepo), nil)

	session, err := svc.SubmitGameSession(validSubmitInput())
	assert.Nil(t, session)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	sessionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmitGameSession_DuplicateIdempotencyKey(t *testing.T) {
	sessionRepo := new(MockSessionRepo)
	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Role: entity.RoleStudent}, nil)

	cacheRepo := new(MockCacheRepo)
	// Ключ уже существует — повторная отправка
	cacheRepo.On("SetNX", "session:idem:1:abc-123", 1, idempotencyKeyTTL).Return(false, nil)

	svc := NewGameService(sessionRepo, userRepo, new(MockAchievementRepo), cacheRepo, nil)

	input := validSubmitInput()
	input.IdempotencyKey = "abc-123"

	session, err := svc.SubmitGameSession(input)
	assert.Nil(t, session)
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "Дубликат должен возвращать конфликт")
	sessionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// ============================================================================
// gainedLevels: восстановление набранных уровней из нового состояния счетчика
// ============================================================================

func TestGainedLevels(t *testing.T) {
	tests := []struct {
		name           string
		correctAnswers int
		newLevel       int
		newProgress    int
		want           []int
	}{
		{"no progress", 0, 1, 0, nil},
		{"progress without level up", 3, 1, 3, nil},
		{"exactly at threshold", 5, 2, 0, []int{2}},
		{"cross one level with remainder", 4, 2, 2, []int{2}},
		{"cross three levels", 12, 4, 0, []int{2, 3, 4}},
		{"big submission mid progress", 7, 3, 1, []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gainedLevels(tt.correctAnswers, tt.newLevel, tt.newProgress)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ============================================================================
// computeDayStreak
// ============================================================================

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestComputeDayStreak(t *testing.T) {
	now := day("2026-09-01").Add(10 * time.Hour) // середина дня

	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{"no sessions", nil, 0},
		{"played today only", []time.Time{day("2026-09-01")}, 1},
		{"played yesterday only", []time.Time{day("2026-08-31")}, 1},
		{"streak broken two days ago", []time.Time{day("2026-08-30")}, 0},
		{
			"three consecutive days",
			[]time.Time{day("2026-09-01"), day("2026-08-31"), day("2026-08-30")},
			3,
		},
		{
			"gap stops the streak",
			[]time.Time{day("2026-09-01"), day("2026-08-31"), day("2026-08-28")},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeDayStreak(tt.days, now))
		})
	}
}

// ============================================================================
// GetUserStats
// ============================================================================

func TestGetUserStats(t *testing.T) {
	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetByID", uint(1)).Return(&entity.User{
		ID:     1,
		Role:   entity.RoleStudent,
		Points: 340,
		Level:  3,
	}, nil)
	userRepo.On("GetStudentRank", uint(1)).Return(5, nil)

	sessionRepo := new(MockSessionRepo)
	sessionRepo.On("GetAggregates", uint(1)).Return(&repository.SessionAggregates{
		GamesPlayed:   12,
		BestScore:     50,
		AverageScore:  28.3,
		TotalDuration: 1440,
	}, nil)
	sessionRepo.On("GetPlayDays", uint(1), 366).Return([]time.Time{}, nil)

	achievementRepo := new(MockAchievementRepo)
	achievementRepo.On("CountByUser", uint(1)).Return(int64(2), nil)

	svc := NewGameService(sessionRepo, userRepo, achievementRepo, new(MockCacheRepo), nil)

	stats, err := svc.GetUserStats(1)
	require.NoError(t, err)

	assert.Equal(t, int64(340), stats.TotalPoints)
	assert.Equal(t, 3, stats.Level)
	assert.Equal(t, int64(12), stats.GamesPlayed)
	assert.Equal(t, 50, stats.BestScore)
	assert.Equal(t, 28.3, stats.AverageScore)
	assert.Equal(t, int64(1440), stats.TotalTimeSpent)
	assert.Equal(t, 5, stats.Rank)
	assert.Equal(t, int64(2), stats.Achievements)
}

func TestGetUserStats_TeacherHasNoRank(t *testing.T) {
	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2, Role: entity.RoleTeacher}, nil)

	sessionRepo := new(MockSessionRepo)
	sessionRepo.On("GetAggregates", uint(2)).Return(&repository.SessionAggregates{}, nil)
	sessionRepo.On("GetPlayDays", uint(2), 366).Return([]time.Time{}, nil)

	achievementRepo := new(MockAchievementRepo)
	achievementRepo.On("CountByUser", uint(2)).Return(int64(0), nil)

	svc := NewGameService(sessionRepo, userRepo, achievementRepo, new(MockCacheRepo), nil)

	stats, err := svc.GetUserStats(2)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Rank, "Не-студенты не участвуют в рейтинге")
	userRepo.AssertNotCalled(t, "GetStudentRank", mock.Anything)
}
