package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, неверные учетные данные).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных
	// (отрицательные счетчики, неположительный limit, неизвестное значение enum).
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов уникальных ключей (email, слово).
	ErrConflict = errors.New("resource state conflict")

	// ErrUnavailable используется, когда хранилище недоступно.
	// Операции ядра при этой ошибке не оставляют частичных записей.
	ErrUnavailable = errors.New("store unavailable")
)
