package interview

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyAnswer       = errors.New("пустой ответ")
	ErrInterviewComplete = errors.New("анкета уже завершена")
)

// Speaker - автор реплики в стенограмме
type Speaker string

const (
	SpeakerAssistant Speaker = "assistant"
	SpeakerUser      Speaker = "user"
)

// Turn - одна реплика диалога
type Turn struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	Time    time.Time `json:"time"`
}

// Responses - собранные ответы по ключам вопросов (string или bool)
type Responses map[string]any

// State хранит курсор анкеты, ответы и стенограмму.
// Состояние принадлежит одному владельцу, синхронизация на стороне вызывающего.
type State struct {
	Cursor     int       `json:"cursor"`
	Responses  Responses `json:"responses"`
	Transcript []Turn    `json:"transcript"`

	questions []Question
	now       func() time.Time
}

// NewState создает состояние в начале анкеты
func NewState(questions []Question) *State {
	return &State{
		Responses: make(Responses, len(questions)),
		questions: questions,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени для стенограммы
func (s *State) WithClock(now func() time.Time) *State {
	s.now = now
	return s
}

func (s *State) Total() int {
	return len(s.questions)
}

func (s *State) Questions() []Question {
	return s.questions
}

// Complete сообщает, получены ли ответы на все вопросы
func (s *State) Complete() bool {
	return s.Cursor >= len(s.questions)
}

// Current возвращает текущий вопрос
func (s *State) Current() (Question, bool) {
	if s.Complete() {
		return Question{}, false
	}
	return s.questions[s.Cursor], true
}

// Say добавляет реплику в стенограмму
func (s *State) Say(speaker Speaker, text string) {
	s.Transcript = append(s.Transcript, Turn{
		Speaker: speaker,
		Text:    text,
		Time:    s.now(),
	})
}

// Submit принимает ответ на текущий вопрос, нормализует его и двигает курсор.
// Пустой ответ и ответ после завершения анкеты не меняют состояние.
func (s *State) Submit(raw string) (any, error) {
	answer := strings.TrimSpace(raw)
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	q, ok := s.Current()
	if !ok {
		return nil, ErrInterviewComplete
	}

	value := Normalize(q, answer)

	s.Say(SpeakerUser, answer)
	s.Responses[q.Key] = value
	s.Cursor++

	return value, nil
}

// Snapshot возвращает копию состояния для отдачи наружу
func (s *State) Snapshot() *State {
	responses := make(Responses, len(s.Responses))
	for k, v := range s.Responses {
		responses[k] = v
	}

	transcript := make([]Turn, len(s.Transcript))
	copy(transcript, s.Transcript)

	return &State{
		Cursor:     s.Cursor,
		Responses:  responses,
		Transcript: transcript,
		questions:  s.questions,
		now:        s.now,
	}
}
