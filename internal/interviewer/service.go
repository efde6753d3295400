package interviewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"expungement-interview/internal/api"
	"expungement-interview/internal/interview"
	"expungement-interview/internal/metrics"
	"expungement-interview/internal/prompts"
	"expungement-interview/internal/storage"
)

var ErrNotComplete = errors.New("анкета еще не завершена")

// Evaluator - внешний сервис проверки права на снятие судимости
type Evaluator interface {
	Evaluate(ctx context.Context, payload map[string]any) (*api.Decision, error)
}

// ResultStore сохраняет завершенные анкеты
type ResultStore interface {
	SaveResult(result *storage.InterviewResult) error
}

// Service ведет анкету: задает вопросы, принимает ответы и передает их на проверку
type Service struct {
	questions     []interview.Question
	evaluator     Evaluator
	store         ResultStore
	metrics       *metrics.Metrics
	defaultRegion string
	fallback      bool
	now           func() time.Time
}

// Reply - ответ сервиса на реплику пользователя
type Reply struct {
	Value    any           `json:"value"`
	Messages []string      `json:"messages"`
	Complete bool          `json:"complete"`
	Decision *api.Decision `json:"decision,omitempty"`
}

// New создает новый сервис анкеты
func New(questions []interview.Question, evaluator Evaluator, store ResultStore, m *metrics.Metrics) *Service {
	return &Service{
		questions: questions,
		evaluator: evaluator,
		store:     store,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *Service) WithDefaultRegion(region string) *Service {
	s.defaultRegion = region
	return s
}

// WithFallback включает демо-результат при недоступности сервиса проверки
func (s *Service) WithFallback(enabled bool) *Service {
	s.fallback = enabled
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Questions() []interview.Question {
	return s.questions
}

// Begin начинает новую анкету и возвращает приветствие и первый вопрос
func (s *Service) Begin(region string, caseData map[string]any) (*Session, []string) {
	if region == "" {
		region = s.defaultRegion
	}

	now := s.now()
	session := &Session{
		ID:           uuid.New().String(),
		Region:       region,
		CaseData:     caseData,
		State:        interview.NewState(s.questions).WithClock(s.now),
		StartedAt:    now,
		LastActivity: now,
	}

	greeting := prompts.Greeting(region)
	session.State.Say(interview.SpeakerAssistant, greeting)
	messages := []string{greeting}

	if msg, ok := s.ask(session.State); ok {
		messages = append(messages, msg)
	}

	if s.metrics != nil {
		s.metrics.IncrementInterviewsStarted()
	}
	log.Info().
		Str("interview_id", session.ID).
		Str("region", region).
		Bool("case_data", len(caseData) > 0).
		Msg("Анкета начата")

	return session, messages
}

// Answer принимает ответ на текущий вопрос.
// После последнего ответа анкета отправляется на проверку и сохраняется.
func (s *Service) Answer(ctx context.Context, session *Session, text string) (*Reply, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	q, _ := session.State.Current()

	value, err := session.State.Submit(text)
	if err != nil {
		return nil, err
	}

	session.LastActivity = s.now()
	if s.metrics != nil {
		s.metrics.IncrementAnswersAccepted(string(q.ExpectedType))
	}

	reply := &Reply{Value: value}

	if msg, ok := s.ask(session.State); ok {
		reply.Messages = append(reply.Messages, msg)
		return reply, nil
	}

	closing := prompts.Closing()
	session.State.Say(interview.SpeakerAssistant, closing)
	reply.Messages = append(reply.Messages, closing)
	reply.Complete = true

	if s.metrics != nil {
		s.metrics.IncrementInterviewsCompleted()
	}
	log.Info().Str("interview_id", session.ID).Msg("Анкета завершена, отправляю на проверку")

	if err := s.evaluateLocked(ctx, session); err != nil {
		log.Error().Err(err).Str("interview_id", session.ID).Msg("Ошибка проверки анкеты")
		reply.Messages = append(reply.Messages, prompts.EvaluationUnavailable())
	} else {
		reply.Decision = session.Decision
		reply.Messages = append(reply.Messages, prompts.DecisionSummary(session.Decision))
	}

	s.saveLocked(session)

	return reply, nil
}

// Evaluate повторно отправляет завершенную анкету на проверку
func (s *Service) Evaluate(ctx context.Context, session *Session) (*api.Decision, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.State.Complete() {
		return nil, ErrNotComplete
	}

	if err := s.evaluateLocked(ctx, session); err != nil {
		return nil, err
	}
	s.saveLocked(session)

	return session.Decision, nil
}

// ask задает текущий вопрос, если он есть
func (s *Service) ask(state *interview.State) (string, bool) {
	q, ok := state.Current()
	if !ok {
		return "", false
	}
	state.Say(interview.SpeakerAssistant, q.Prompt)
	return prompts.Question(state.Cursor, state.Total(), q.Prompt), true
}

func (s *Service) evaluateLocked(ctx context.Context, session *Session) error {
	payload := api.BuildPayload(session.State.Responses, session.CaseData)

	decision, err := s.evaluator.Evaluate(ctx, payload)
	if err == nil {
		s.countEligibility(metrics.OutcomeSuccess)
		session.Decision = decision
		log.Info().
			Str("interview_id", session.ID).
			Bool("eligible", decision.Eligible).
			Float64("confidence", decision.Confidence).
			Msg("Проверка завершена")
		return nil
	}

	s.countEligibility(metrics.OutcomeFailure)
	// Уже полученное решение не заменяем демо-данными
	if !s.fallback || session.Decision != nil {
		return fmt.Errorf("ошибка проверки анкеты %s: %w", session.ID, err)
	}

	log.Warn().Err(err).Str("interview_id", session.ID).Msg("Сервис проверки недоступен, использую демо-данные")
	s.countEligibility(metrics.OutcomeFallback)
	session.Decision = api.FallbackDecision()

	return nil
}

func (s *Service) saveLocked(session *Session) {
	if s.store == nil {
		return
	}

	result := &storage.InterviewResult{
		InterviewID: session.ID,
		Timestamp:   session.StartedAt.Format(time.RFC3339),
		Region:      session.Region,
		Responses:   session.State.Responses,
		CaseData:    session.CaseData,
		Transcript:  session.State.Transcript,
		Decision:    session.Decision,
	}

	err := s.store.SaveResult(result)
	if s.metrics != nil {
		s.metrics.IncrementResultsSaved(err == nil)
	}
	if err != nil {
		log.Error().Err(err).Str("interview_id", session.ID).Msg("Ошибка сохранения результата")
	}
}

func (s *Service) countEligibility(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementEligibilityCall(outcome)
	}
}
