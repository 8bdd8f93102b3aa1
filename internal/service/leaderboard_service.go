package service

import (
	"fmt"
	"time"

	"github.com/yourusername/vocab-api/internal/domain/repository"
	"github.com/yourusername/vocab-api/internal/handler/dto"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// Поддерживаемые временные фильтры лидерборда
const (
	TimeFilterAll   = "all"
	TimeFilterWeek  = "week"
	TimeFilterMonth = "month"
)

// Лимиты по умолчанию для публичного и административного лидерборда
const (
	DefaultLeaderboardLimit = 10
	AdminLeaderboardLimit   = 50
)

// LeaderboardService строит рейтинги студентов по накопленным очкам
type LeaderboardService struct {
	userRepo repository.UserRepository
}

// NewLeaderboardService создает новый сервис лидерборда
func NewLeaderboardService(userRepo repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{userRepo: userRepo}
}

// GetLeaderboard возвращает топ студентов по очкам. Временной фильтр
// ограничивает участников теми, кто завершил хотя бы одну сессию в окне
// (неделя = 7 суток, месяц = 30 суток от текущего момента); очки и число
// игр при этом остаются накопленными за все время. Ответ читается из БД
// напрямую, без кэша: позиции согласованы с очками в момент запроса.
func (s *LeaderboardService) GetLeaderboard(timeFilter string, limit int) (*dto.LeaderboardResponse, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}

	var since *time.Time
	switch timeFilter {
	case "", TimeFilterAll:
		timeFilter = TimeFilterAll
	case TimeFilterWeek:
		t := time.Now().Add(-7 * 24 * time.Hour)
		since = &t
	case TimeFilterMonth:
		t := time.Now().Add(-30 * 24 * time.Hour)
		since = &t
	default:
		return nil, fmt.Errorf("%w: unknown time filter '%s'", apperrors.ErrValidation, timeFilter)
	}

	rows, err := s.userRepo.GetStudentsLeaderboard(since, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      row.UserID,
			FullName:    row.FullName,
			AvatarURL:   row.AvatarURL,
			Points:      row.Points,
			GamesPlayed: row.GamesPlayed,
		})
	}

	return &dto.LeaderboardResponse{
		TimeFilter: timeFilter,
		Entries:    entries,
	}, nil
}
