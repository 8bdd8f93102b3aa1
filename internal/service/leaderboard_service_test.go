package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/vocab-api/internal/domain/repository"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

func TestGetLeaderboard_RanksAreSequential(t *testing.T) {
	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetStudentsLeaderboard", (*time.Time)(nil), 3).Return([]repository.LeaderboardRow{
		{UserID: 10, FullName: "Арун", Points: 500, GamesPlayed: 20},
		{UserID: 3, FullName: "Прия", Points: 450, GamesPlayed: 15},
		{UserID: 7, FullName: "Кумар", Points: 450, GamesPlayed: 18},
	}, nil)

	svc := NewLeaderboardService(userRepo)

	resp, err := svc.GetLeaderboard(TimeFilterAll, 3)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)

	// Позиции начинаются с 1 и идут без пропусков, даже при равных очках
	for i, entry := range resp.Entries {
		assert.Equal(t, i+1, entry.Rank)
	}
	assert.Equal(t, uint(10), resp.Entries[0].UserID)
	assert.Equal(t, TimeFilterAll, resp.TimeFilter)
}

func TestGetLeaderboard_EmptyFilterMeansAll(t *testing.T) {
	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetStudentsLeaderboard", (*time.Time)(nil), 10).Return([]repository.LeaderboardRow{}, nil)

	svc := NewLeaderboardService(userRepo)

	resp, err := svc.GetLeaderboard("", 10)
	require.NoError(t, err)
	assert.Equal(t, TimeFilterAll, resp.TimeFilter)
	assert.Empty(t, resp.Entries, "Пустой рейтинг — валидный ответ")
}

func TestGetLeaderboard_WeekFilterPassesWindow(t *testing.T) {
	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetStudentsLeaderboard", mock.MatchedBy(func(since *time.Time) bool {
		if since == nil {
			return false
		}
		// Окно должно быть около 7 суток назад
		diff := time.Until(*since) + 7*24*time.Hour
		return diff > -time.Minute && diff < time.Minute
	}), 10).Return([]repository.LeaderboardRow{}, nil)

	svc := NewLeaderboardService(userRepo)

	resp, err := svc.GetLeaderboard(TimeFilterWeek, 10)
	require.NoError(t, err)
	assert.Equal(t, TimeFilterWeek, resp.TimeFilter)
	userRepo.AssertExpectations(t)
}

func TestGetLeaderboard_InvalidLimit(t *testing.T) {
	svc := NewLeaderboardService(new(MockUserRepoForGameService))

	for _, limit := range []int{0, -5} {
		resp, err := svc.GetLeaderboard(TimeFilterAll, limit)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "limit=%d должен отклоняться", limit)
	}
}

func TestGetLeaderboard_UnknownFilter(t *testing.T) {
	svc := NewLeaderboardService(new(MockUserRepoForGameService))

	resp, err := svc.GetLeaderboard("year", 10)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}
