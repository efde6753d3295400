package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"expungement-interview/internal/interview"
	"expungement-interview/internal/interviewer"
	"expungement-interview/internal/prompts"
)

const (
	maxMessageLength = 4000
	sessionMaxIdle   = 24 * time.Hour
)

type Handler struct {
	service      *interviewer.Service
	sessions     *interviewer.Registry
	regions      map[int64]string
	regionsMutex sync.RWMutex
	rateLimiter  *RateLimiter
}

func NewHandler(service *interviewer.Service, sessions *interviewer.Registry) *Handler {
	return &Handler{
		service:     service,
		sessions:    sessions,
		regions:     make(map[int64]string),
		rateLimiter: NewRateLimiter(10, time.Minute),
	}
}

// StartSessionCleanup раз в час удаляет сессии без активности больше суток
func (h *Handler) StartSessionCleanup(ctx context.Context) {
	h.sessions.StartCleanup(ctx.Done(), time.Hour, sessionMaxIdle)
}

func (h *Handler) HandleUpdate(ctx context.Context, sender Sender, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if !h.rateLimiter.IsAllowed(userID) {
		h.send(ctx, sender, chatID, "⏳ Too many messages. Please wait a minute.")
		return
	}

	if strings.HasPrefix(text, "/") {
		h.handleCommand(ctx, sender, chatID, userID, text)
		return
	}
	h.handleUserInput(ctx, sender, chatID, userID, text)
}

// handleCommand обрабатывает команды бота
func (h *Handler) handleCommand(ctx context.Context, sender Sender, chatID, userID int64, text string) {
	fields := strings.Fields(text)
	command, _, _ := strings.Cut(fields[0], "@")
	arg := strings.TrimSpace(strings.TrimPrefix(text, fields[0]))

	switch command {
	case "/start":
		h.handleStartCommand(ctx, sender, chatID, userID)
	case "/help":
		h.sendMarkdown(ctx, sender, chatID, prompts.Help(len(h.service.Questions())))
	case "/status":
		h.handleStatusCommand(ctx, sender, chatID, userID)
	case "/restart":
		h.sessions.Delete(sessionKey(userID))
		h.send(ctx, sender, chatID, "🔄 Questionnaire reset. Use /start to begin again.")
	case "/stop":
		h.handleStopCommand(ctx, sender, chatID, userID)
	case "/state":
		h.handleStateCommand(ctx, sender, chatID, userID, arg)
	case "/result":
		h.handleResultCommand(ctx, sender, chatID, userID)
	default:
		h.send(ctx, sender, chatID, "Unknown command. Use /help to see the list of commands.")
	}
}

func (h *Handler) handleStartCommand(ctx context.Context, sender Sender, chatID, userID int64) {
	if session, err := h.sessions.Get(sessionKey(userID)); err == nil && h.stateOf(session) == StateWaitingAnswer {
		h.send(ctx, sender, chatID, "You already have a questionnaire in progress. Use /status to check progress or /restart to start over.")
		return
	}

	session, messages := h.service.Begin(h.region(userID), nil)
	h.sessions.Put(sessionKey(userID), session)

	for _, msg := range messages {
		h.sendMarkdown(ctx, sender, chatID, msg)
	}
}

// handleStatusCommand показывает прогресс анкеты
func (h *Handler) handleStatusCommand(ctx context.Context, sender Sender, chatID, userID int64) {
	session, err := h.sessions.Get(sessionKey(userID))
	if err != nil {
		h.send(ctx, sender, chatID, "The questionnaire has not started. Use /start to begin.")
		return
	}

	view := session.View()
	if view.Complete {
		h.sendMarkdown(ctx, sender, chatID, fmt.Sprintf("%s\n🆔 ID: %s\n\n%s",
			prompts.Text("✅ Questionnaire complete!"),
			prompts.Code(view.ID),
			prompts.Italic("Use /result to see your eligibility result")))
		return
	}

	h.sendMarkdown(ctx, sender, chatID, fmt.Sprintf("📊 %s\n\n"+
		"🆔 ID: %s\n"+
		"📍 State: %s\n"+
		"❓ Question: %d/%d\n"+
		"📈 Progress: %d%%",
		prompts.Bold("Questionnaire progress"),
		prompts.Code(view.ID),
		prompts.Text(view.Region),
		view.Cursor+1, view.Total,
		prompts.Progress(view.Cursor, view.Total)))
}

func (h *Handler) handleStopCommand(ctx context.Context, sender Sender, chatID, userID int64) {
	if _, err := h.sessions.Get(sessionKey(userID)); err != nil {
		h.send(ctx, sender, chatID, "No questionnaire is running.")
		return
	}

	h.sessions.Delete(sessionKey(userID))
	h.send(ctx, sender, chatID, "🛑 Questionnaire stopped.")
}

// handleStateCommand задает штат для следующей анкеты
func (h *Handler) handleStateCommand(ctx context.Context, sender Sender, chatID, userID int64, region string) {
	if region == "" {
		current := h.region(userID)
		if current == "" {
			current = "not set"
		}
		h.sendMarkdown(ctx, sender, chatID, fmt.Sprintf("📍 Current state: %s\nUse %s to change it%s",
			prompts.Bold(current), prompts.Code("/state <name>"), prompts.Text(".")))
		return
	}

	h.regionsMutex.Lock()
	h.regions[userID] = region
	h.regionsMutex.Unlock()

	h.sendMarkdown(ctx, sender, chatID, fmt.Sprintf("📍 State set to %s%s",
		prompts.Bold(region), prompts.Text(". It applies to the next questionnaire you /start.")))
}

func (h *Handler) handleResultCommand(ctx context.Context, sender Sender, chatID, userID int64) {
	session, err := h.sessions.Get(sessionKey(userID))
	if err != nil || h.stateOf(session) != StateCompleted {
		h.send(ctx, sender, chatID, "❌ The result is available only after the questionnaire is complete. Use /start to begin.")
		return
	}

	if decision := session.View().Decision; decision != nil {
		h.sendMarkdown(ctx, sender, chatID, prompts.DecisionSummary(decision))
		return
	}

	decision, err := h.service.Evaluate(ctx, session)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Повторная проверка не удалась")
		h.sendMarkdown(ctx, sender, chatID, prompts.EvaluationUnavailable())
		return
	}
	h.sendMarkdown(ctx, sender, chatID, prompts.DecisionSummary(decision))
}

// validateUserInput проверяет длину и содержимое ответа
func (h *Handler) validateUserInput(text string) error {
	length := utf8.RuneCountInString(text)
	if length > maxMessageLength {
		return fmt.Errorf("message is too long (maximum %d characters)", maxMessageLength)
	}

	// Проверка на спам/повторяющиеся символы
	first, _ := utf8.DecodeRuneInString(text)
	if length > 10 && strings.Count(text, string(first)) > length*8/10 {
		return fmt.Errorf("message contains too many repeated characters")
	}

	return nil
}

// handleUserInput обрабатывает ответы пользователя
func (h *Handler) handleUserInput(ctx context.Context, sender Sender, chatID, userID int64, text string) {
	session, err := h.sessions.Get(sessionKey(userID))
	if err != nil || h.stateOf(session) != StateWaitingAnswer {
		h.send(ctx, sender, chatID, "There is no question to answer right now. Use /start to begin or /help for help.")
		return
	}

	if err := h.validateUserInput(text); err != nil {
		h.send(ctx, sender, chatID, "❌ "+err.Error())
		return
	}

	reply, err := h.service.Answer(ctx, session, text)
	switch {
	case errors.Is(err, interview.ErrEmptyAnswer):
		h.send(ctx, sender, chatID, "Please type an answer.")
		return
	case errors.Is(err, interview.ErrInterviewComplete):
		h.send(ctx, sender, chatID, "✅ The questionnaire is already complete. Use /result to see your result.")
		return
	case err != nil:
		log.Error().Err(err).Int64("user_id", userID).Msg("Ошибка обработки ответа")
		h.send(ctx, sender, chatID, "Something went wrong. Please try again.")
		return
	}

	for _, msg := range reply.Messages {
		h.sendMarkdown(ctx, sender, chatID, msg)
	}
}

// Вспомогательные методы

// send отправляет обычный текст, экранируя разметку
func (h *Handler) send(ctx context.Context, sender Sender, chatID int64, text string) {
	h.sendMarkdown(ctx, sender, chatID, prompts.Text(text))
}

// sendMarkdown отправляет уже размеченный MarkdownV2 текст
func (h *Handler) sendMarkdown(ctx context.Context, sender Sender, chatID int64, text string) {
	if err := sender.SendMessage(ctx, chatID, text); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Ошибка отправки сообщения")
	}
}

func (h *Handler) region(userID int64) string {
	h.regionsMutex.RLock()
	defer h.regionsMutex.RUnlock()
	return h.regions[userID]
}

func (h *Handler) stateOf(session *interviewer.Session) SessionState {
	if session == nil {
		return StateIdle
	}
	if session.View().Complete {
		return StateCompleted
	}
	return StateWaitingAnswer
}

func sessionKey(userID int64) string {
	return "tg:" + strconv.FormatInt(userID, 10)
}
