package entity

import "time"

// Статусы заявок на добавление слова
const (
	WordRequestPending  = "pending"
	WordRequestApproved = "approved"
	WordRequestRejected = "rejected"
)

// WordRequest представляет заявку учителя на добавление слова в словарь.
// Одобрение заявки создает одобренное слово.
type WordRequest struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	TeacherID        uint   `gorm:"not null;index" json:"teacher_id"`
	Word             string `gorm:"size:100;not null" json:"word"`
	MeaningTa        string `gorm:"size:255;not null" json:"meaning_ta"`
	MeaningEn        string `gorm:"size:255;not null;default:''" json:"meaning_en,omitempty"`
	Domain           string `gorm:"size:100;not null;default:''" json:"domain,omitempty"`
	Period           string `gorm:"size:100;not null;default:''" json:"period,omitempty"`
	ModernEquivalent string `gorm:"size:255;not null;default:''" json:"modern_equivalent,omitempty"`
	Notes            string `gorm:"size:500;not null;default:''" json:"notes,omitempty"`
	Difficulty       string `gorm:"size:20;not null;default:'easy'" json:"difficulty"`

	Status        string     `gorm:"size:20;not null;default:'pending';index" json:"status"` // pending, approved или rejected
	AdminResponse string     `gorm:"size:500;not null;default:''" json:"admin_response,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy    *uint      `json:"reviewed_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (WordRequest) TableName() string {
	return "word_requests"
}

// IsReviewed возвращает true, если заявка уже рассмотрена
func (r *WordRequest) IsReviewed() bool {
	return r.Status != WordRequestPending
}

// ToWord преобразует одобренную заявку в словарную запись
func (r *WordRequest) ToWord() *Word {
	return &Word{
		Word:             r.Word,
		MeaningTa:        r.MeaningTa,
		MeaningEn:        r.MeaningEn,
		Domain:           r.Domain,
		Period:           r.Period,
		ModernEquivalent: r.ModernEquivalent,
		Notes:            r.Notes,
		Difficulty:       r.Difficulty,
		Approved:         true,
		CreatedBy:        r.TeacherID,
	}
}
