package service

import (
	"fmt"
	"time"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// Константы подсчета очков
const (
	// PointsPerCorrectAnswer — очки за один правильный ответ
	// (правило начисления живет в entity и применяется при валидации сессии)
	PointsPerCorrectAnswer = entity.PointsPerCorrectAnswer

	// SessionTimeLimitSeconds — лимит длительности одной игровой сессии
	SessionTimeLimitSeconds = 180
)

// SessionResult — поля завершенной сессии, вычисленные из сырой телеметрии раунда
type SessionResult struct {
	QuestionsAnswered int
	CorrectAnswers    int
	Score             int
	MaxScore          int
	DurationSeconds   int
}

// ComputeSessionResult подсчитывает результат завершенного раунда:
// score = correct * PointsPerCorrectAnswer, max_score = questions * PointsPerCorrectAnswer,
// длительность ограничивается лимитом сессии. Отрицательная длительность отклоняется
// до каких-либо изменений состояния.
func ComputeSessionResult(answers []bool, elapsed time.Duration) (*SessionResult, error) {
	if elapsed < 0 {
		return nil, fmt.Errorf("%w: elapsed time must be non-negative", apperrors.ErrValidation)
	}

	correct := 0
	for _, wasCorrect := range answers {
		if wasCorrect {
			correct++
		}
	}

	duration := int(elapsed / time.Second)
	if duration > SessionTimeLimitSeconds {
		duration = SessionTimeLimitSeconds
	}

	return &SessionResult{
		QuestionsAnswered: len(answers),
		CorrectAnswers:    correct,
		Score:             correct * PointsPerCorrectAnswer,
		MaxScore:          len(answers) * PointsPerCorrectAnswer,
		DurationSeconds:   duration,
	}, nil
}
