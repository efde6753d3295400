package interviewer

import (
	"errors"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("сессия не найдена")

// Registry хранит активные сессии по ключу владельца
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Get(key string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[key]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (r *Registry) Put(key string, session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[key] = session
}

func (r *Registry) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, key)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Cleanup удаляет сессии без активности дольше maxIdle и возвращает их число.
// Блокировка реестра не удерживается, пока ждем мьютекс сессии: сессия может быть занята проверкой.
func (r *Registry) Cleanup(now time.Time, maxIdle time.Duration) int {
	r.mu.RLock()
	snapshot := make(map[string]*Session, len(r.sessions))
	for key, sess := range r.sessions {
		snapshot[key] = sess
	}
	r.mu.RUnlock()

	cutoff := now.Add(-maxIdle)
	var stale []string
	for key, sess := range snapshot {
		if sess.lastActivity().Before(cutoff) {
			stale = append(stale, key)
		}
	}
	if len(stale) == 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for _, key := range stale {
		// сессию могли заменить, пока проверяли активность
		if r.sessions[key] == snapshot[key] {
			delete(r.sessions, key)
			removed++
		}
	}
	return removed
}

// StartCleanup периодически чистит неактивные сессии до закрытия done
func (r *Registry) StartCleanup(done <-chan struct{}, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				r.Cleanup(now, maxIdle)
			}
		}
	}()
}
