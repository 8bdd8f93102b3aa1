package entity

import (
	"fmt"
	"time"

	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// Типы игр
const (
	GameTypeMatch   = "match"
	GameTypeMCQ     = "mcq"
	GameTypeJumbled = "jumbled"
	GameTypeHints   = "hints"
)

// PointsPerCorrectAnswer — очки за один правильный ответ.
// Счет сессии всегда производен от числа правильных ответов;
// клиентскому значению score сервер не доверяет.
const PointsPerCorrectAnswer = 10

// GameSession представляет неизменяемую запись о завершенной игре.
// После создания запись никогда не обновляется и не удаляется.
type GameSession struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	UserID            uint   `gorm:"not null;index" json:"user_id"`
	GameType          string `gorm:"size:20;not null;index" json:"game_type"` // match, mcq, jumbled или hints
	Score             int    `gorm:"not null;default:0" json:"score"`
	MaxScore          int    `gorm:"not null;default:0" json:"max_score"`
	QuestionsAnswered int    `gorm:"not null;default:0" json:"questions_answered"`
	CorrectAnswers    int    `gorm:"not null;default:0" json:"correct_answers"`
	DurationSeconds   int    `gorm:"not null;default:0" json:"duration_seconds"`
	DifficultyLevel   string `gorm:"size:20;not null;default:'easy'" json:"difficulty_level"`

	// CompletedAt устанавливается в момент сохранения; index для фильтра лидерборда по окну
	CompletedAt time.Time `gorm:"not null;index" json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (GameSession) TableName() string {
	return "game_sessions"
}

// IsValidGameType проверяет, что тип игры входит в допустимый набор
func IsValidGameType(gameType string) bool {
	switch gameType {
	case GameTypeMatch, GameTypeMCQ, GameTypeJumbled, GameTypeHints:
		return true
	}
	return false
}

// Validate проверяет инварианты сессии перед сохранением:
// 0 <= correct_answers <= questions_answered, score и max_score строго
// производны от счетчиков ответов. Невалидная сессия никогда не попадает
// в хранилище.
func (s *GameSession) Validate() error {
	if !IsValidGameType(s.GameType) {
		return fmt.Errorf("%w: unknown game type %q", apperrors.ErrValidation, s.GameType)
	}
	if !IsValidDifficulty(s.DifficultyLevel) {
		return fmt.Errorf("%w: unknown difficulty level %q", apperrors.ErrValidation, s.DifficultyLevel)
	}
	if s.QuestionsAnswered < 0 || s.CorrectAnswers < 0 {
		return fmt.Errorf("%w: counts must be non-negative", apperrors.ErrValidation)
	}
	if s.CorrectAnswers > s.QuestionsAnswered {
		return fmt.Errorf("%w: correct_answers %d exceeds questions_answered %d",
			apperrors.ErrValidation, s.CorrectAnswers, s.QuestionsAnswered)
	}
	// Произвольный клиентский score отклоняется: очки начисляются только
	// за правильные ответы
	if s.Score != s.CorrectAnswers*PointsPerCorrectAnswer {
		return fmt.Errorf("%w: score %d does not match %d correct answers",
			apperrors.ErrValidation, s.Score, s.CorrectAnswers)
	}
	if s.MaxScore != s.QuestionsAnswered*PointsPerCorrectAnswer {
		return fmt.Errorf("%w: max_score %d does not match %d questions",
			apperrors.ErrValidation, s.MaxScore, s.QuestionsAnswered)
	}
	if s.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration_seconds must be non-negative", apperrors.ErrValidation)
	}
	return nil
}
