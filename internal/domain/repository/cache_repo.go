package repository

import "time"

// CacheRepository определяет методы для работы с кешем (Redis).
// Лидерборд через кеш НЕ ходит: он пересчитывается на каждый запрос.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	Exists(key string) (bool, error)
	Increment(key string) (int64, error)

	// SetNX устанавливает значение, только если ключ не существует.
	// Возвращает true, если ключ был установлен. Используется для
	// идемпотентности отправки игровых сессий.
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
}
