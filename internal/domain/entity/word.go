package entity

import "time"

// Уровни сложности слов
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Word представляет словарную запись (тамильское слово с переводами)
type Word struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Word             string `gorm:"size:100;not null;uniqueIndex" json:"word"`
	MeaningTa        string `gorm:"size:255;not null" json:"meaning_ta"`
	MeaningEn        string `gorm:"size:255;not null;default:''" json:"meaning_en"`
	Domain           string `gorm:"size:100;not null;default:''" json:"domain,omitempty"`
	Period           string `gorm:"size:100;not null;default:''" json:"period,omitempty"`
	ModernEquivalent string `gorm:"size:255;not null;default:''" json:"modern_equivalent,omitempty"`
	Notes            string `gorm:"size:500;not null;default:''" json:"notes,omitempty"`

	// Difficulty — easy, medium или hard; index для случайной выборки по сложности
	Difficulty string `gorm:"size:20;not null;default:'easy';index:idx_words_sampling" json:"difficulty"`

	// Approved — только одобренные слова попадают в игры
	Approved  bool   `gorm:"not null;default:false;index:idx_words_sampling" json:"approved"`
	CreatedBy uint   `gorm:"not null;default:0" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Word) TableName() string {
	return "words"
}

// IsValidDifficulty проверяет, что уровень сложности входит в допустимый набор
func IsValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
