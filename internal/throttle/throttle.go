// Package throttle — счётчик действий на ключ в пределах окна.
// Используется для лимита на создание отзывов: 20 штук в сутки на актора.
package throttle

import (
	"fmt"
	"sync"
	"time"
)

// Limiter держит счётчики в памяти. Окно отсчитывается от первого
// зафиксированного события по ключу; по истечении окна счётчик обнуляется.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string]*bucket
	now    func() time.Time // подменяется в тестах
}

type bucket struct {
	start time.Time
	count int
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		hits:   make(map[string]*bucket),
		now:    time.Now,
	}
}

// Allow атомарно выполняет проверку и инкремент: два конкурентных запроса
// не могут оба проскочить на счётчике limit-1.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b := l.hits[key]
	if b == nil || now.Sub(b.start) >= l.window {
		b = &bucket{start: now}
		l.hits[key] = b
	}
	if b.count >= l.limit {
		return false
	}
	b.count++
	return true
}

// Reset сбрасывает счётчик по ключу (нужно интеграционным тестам).
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
}

// UserKey / AnonKey — ключи лимитера: аутентифицированных считаем по id
// аккаунта, анонимов по сетевому адресу.
func UserKey(scope string, userID int) string {
	return fmt.Sprintf("%s:user:%d", scope, userID)
}

func AnonKey(scope, ident string) string {
	return fmt.Sprintf("%s:anon:%s", scope, ident)
}
