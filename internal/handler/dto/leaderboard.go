package dto

// LeaderboardEntry — одна строка рейтинга
type LeaderboardEntry struct {
	Rank        int    `json:"rank"` // Позиции начинаются с 1, без пропусков
	UserID      uint   `json:"userId"`
	FullName    string `json:"fullName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Points      int64  `json:"points"`
	GamesPlayed int64  `json:"gamesPlayed"`
}

// LeaderboardResponse — ответ эндпоинта лидерборда
type LeaderboardResponse struct {
	TimeFilter string             `json:"timeFilter"`
	Entries    []LeaderboardEntry `json:"entries"`
}
