package telegram

import (
	"sync"
	"time"
)

// SessionState представляет состояние пользователя в боте
type SessionState string

const (
	StateIdle          SessionState = "idle"
	StateWaitingAnswer SessionState = "waiting_answer"
	StateCompleted     SessionState = "completed"
)

// RateLimiter ограничивает число сообщений пользователя в окне времени
type RateLimiter struct {
	requests map[int64][]time.Time
	mutex    sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[int64][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (rl *RateLimiter) IsAllowed(userID int64) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()

	valid := rl.requests[userID][:0]
	for _, t := range rl.requests[userID] {
		if now.Sub(t) < rl.window {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[userID] = valid
		return false
	}

	rl.requests[userID] = append(valid, now)
	return true
}
