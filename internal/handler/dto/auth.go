package dto

// RegisterRequest — тело запроса регистрации
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FullName   string `json:"fullName" binding:"required"`
	Role       string `json:"role" binding:"omitempty,oneof=student teacher"`
	SchoolName string `json:"schoolName"`
	Grade      string `json:"grade"`
}

// LoginRequest — тело запроса входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest — тело запроса обновления токенов
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
