package dto

// CreateWordRequest — тело запроса прямого добавления слова (администратор)
type CreateWordRequest struct {
	Word             string `json:"word" binding:"required"`
	MeaningTa        string `json:"meaningTa" binding:"required"`
	MeaningEn        string `json:"meaningEn"`
	Domain           string `json:"domain"`
	Period           string `json:"period"`
	ModernEquivalent string `json:"modernEquivalent"`
	Notes            string `json:"notes"`
	Difficulty       string `json:"difficulty" binding:"required,oneof=easy medium hard"`
}

// UpdateWordRequest — тело запроса обновления слова (администратор)
type UpdateWordRequest struct {
	MeaningTa        string `json:"meaningTa"`
	MeaningEn        string `json:"meaningEn"`
	Domain           string `json:"domain"`
	Period           string `json:"period"`
	ModernEquivalent string `json:"modernEquivalent"`
	Notes            string `json:"notes"`
	Difficulty       string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Approved         *bool  `json:"approved"`
}

// SuggestWordRequest — тело заявки учителя на добавление слова
type SuggestWordRequest struct {
	Word       string `json:"word" binding:"required"`
	MeaningTa  string `json:"meaningTa" binding:"required"`
	MeaningEn  string `json:"meaningEn"`
	Domain     string `json:"domain"`
	Period     string `json:"period"`
	Notes      string `json:"notes"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// ReviewWordRequestRequest — тело решения администратора по заявке
type ReviewWordRequestRequest struct {
	Approve       bool   `json:"approve"`
	AdminResponse string `json:"adminResponse"`
}
