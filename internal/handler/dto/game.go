package dto

// SubmitSessionRequest — тело запроса отправки завершенной игровой сессии
type SubmitSessionRequest struct {
	GameType          string `json:"gameType" binding:"required,oneof=match mcq jumbled hints"`
	Score             int    `json:"score" binding:"min=0"`
	MaxScore          int    `json:"maxScore" binding:"min=0"`
	QuestionsAnswered int    `json:"questionsAnswered" binding:"min=0"`
	CorrectAnswers    int    `json:"correctAnswers" binding:"min=0"`
	DurationSeconds   int    `json:"durationSeconds" binding:"min=0"`
	DifficultyLevel   string `json:"difficultyLevel" binding:"required,oneof=easy medium hard"`
}

// UserStatsResponse — сводная статистика пользователя
type UserStatsResponse struct {
	TotalPoints    int64   `json:"totalPoints"`
	Level          int     `json:"level"`
	GamesPlayed    int64   `json:"gamesPlayed"`
	BestScore      int     `json:"bestScore"`
	AverageScore   float64 `json:"averageScore"`
	TotalTimeSpent int64   `json:"totalTimeSpent"` // Суммарное время в игре, секунды
	CurrentStreak  int     `json:"currentStreak"`  // Дней подряд с хотя бы одной игрой
	Rank           int     `json:"rank"`           // Позиция в лидерборде; 0 для не-студентов
	Achievements   int64   `json:"achievements"`
}
