package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	"github.com/yourusername/vocab-api/internal/handler/dto"
	"github.com/yourusername/vocab-api/internal/service"
)

// stubUserRepoForLeaderboard реализует repository.UserRepository и запоминает
// параметры последнего запроса лидерборда
type stubUserRepoForLeaderboard struct {
	lastSince *time.Time
	rows      []repository.LeaderboardRow
}

func (s *stubUserRepoForLeaderboard) Create(*entity.User) error { return nil }
func (s *stubUserRepoForLeaderboard) GetByID(uint) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepoForLeaderboard) GetByEmail(string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepoForLeaderboard) UpdateProfile(uint, map[string]interface{}) error { return nil }
func (s *stubUserRepoForLeaderboard) List(int, int) ([]entity.User, error)             { return nil, nil }
func (s *stubUserRepoForLeaderboard) GetStudentRank(uint) (int, error)                 { return 0, nil }

func (s *stubUserRepoForLeaderboard) GetStudentsLeaderboard(since *time.Time, limit int) ([]repository.LeaderboardRow, error) {
	s.lastSince = since
	return s.rows, nil
}

// ============================================================================
// Query-параметр временного окна: канонический time_filter и
// устаревший filter должны работать одинаково
// ============================================================================

func TestGetLeaderboard_TimeFilterParamNames(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantFilter string
		wantWindow bool
	}{
		{"канонический time_filter", "/api/leaderboard?time_filter=week", service.TimeFilterWeek, true},
		{"устаревший filter", "/api/leaderboard?filter=week", service.TimeFilterWeek, true},
		{"time_filter важнее filter", "/api/leaderboard?time_filter=month&filter=week", service.TimeFilterMonth, true},
		{"без параметра — все время", "/api/leaderboard", service.TimeFilterAll, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubUserRepoForLeaderboard{
				rows: []repository.LeaderboardRow{{UserID: 1, FullName: "Студент", Points: 50, GamesPlayed: 3}},
			}
			h := NewLeaderboardHandler(service.NewLeaderboardService(repo))

			c, w := newTestGinContext(http.MethodGet, tt.query, nil)
			h.GetLeaderboard(c)

			require.Equal(t, http.StatusOK, w.Code)

			var resp dto.LeaderboardResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantFilter, resp.TimeFilter)
			assert.Len(t, resp.Entries, 1)

			if tt.wantWindow {
				assert.NotNil(t, repo.lastSince, "Фильтр должен ограничивать выборку временным окном")
			} else {
				assert.Nil(t, repo.lastSince, "Без фильтра окно не задается")
			}
		})
	}
}

func TestGetLeaderboard_UnknownFilterRejected(t *testing.T) {
	h := NewLeaderboardHandler(service.NewLeaderboardService(&stubUserRepoForLeaderboard{}))

	c, w := newTestGinContext(http.MethodGet, "/api/leaderboard?time_filter=year", nil)
	h.GetLeaderboard(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
