package interviewer

import (
	"sync"
	"time"

	"expungement-interview/internal/api"
	"expungement-interview/internal/interview"
)

// Session - одна анкета одного пользователя
type Session struct {
	mu sync.Mutex

	ID           string
	Region       string
	CaseData     map[string]any
	State        *interview.State
	Decision     *api.Decision
	StartedAt    time.Time
	LastActivity time.Time
}

// View - снимок сессии для отдачи наружу
type View struct {
	ID         string              `json:"id"`
	Region     string              `json:"region"`
	Cursor     int                 `json:"cursor"`
	Total      int                 `json:"total"`
	Complete   bool                `json:"complete"`
	Question   *interview.Question `json:"question,omitempty"`
	Responses  interview.Responses `json:"responses"`
	Transcript []interview.Turn    `json:"transcript"`
	Decision   *api.Decision       `json:"decision,omitempty"`
	StartedAt  time.Time           `json:"started_at"`
}

// View возвращает согласованный снимок сессии
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.State.Snapshot()
	v := View{
		ID:         s.ID,
		Region:     s.Region,
		Cursor:     snap.Cursor,
		Total:      snap.Total(),
		Complete:   snap.Complete(),
		Responses:  snap.Responses,
		Transcript: snap.Transcript,
		Decision:   s.Decision,
		StartedAt:  s.StartedAt,
	}
	if q, ok := snap.Current(); ok {
		v.Question = &q
	}

	return v
}

func (s *Session) lastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastActivity
}
