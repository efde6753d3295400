package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"expungement-interview/internal/api"
	"expungement-interview/internal/config"
	"expungement-interview/internal/httpapi"
	"expungement-interview/internal/interviewer"
	"expungement-interview/internal/logger"
	"expungement-interview/internal/metrics"
	"expungement-interview/internal/storage"
	"expungement-interview/internal/telegram"
)

const (
	sessionCleanupInterval = time.Hour
	sessionMaxIdle         = 24 * time.Hour
)

func main() {
	// Загружаем переменные окружения
	envErr := godotenv.Load()

	appCfg := config.LoadAppConfig()
	logger.Setup(appCfg.Log)

	if envErr != nil {
		log.Warn().Msg("Файл .env не найден, используются переменные окружения")
	}

	log.Info().Msg("🚀 Запуск Expungement Interview...")

	// Загружаем конфигурацию анкеты
	cfg, err := config.Load(appCfg.InterviewConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", appCfg.InterviewConfigPath).Msg("Ошибка загрузки конфигурации анкеты")
	}

	if err := appCfg.Eligibility.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Некорректная конфигурация сервиса проверки")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Инициализируем сервисы
	m := metrics.NewMetrics()
	store := storage.NewStore(appCfg.Storage.ResultsDir)
	evaluator := api.NewEligibilityClient(appCfg.Eligibility)

	service := interviewer.New(cfg.GetQuestions(), evaluator, store, m).
		WithDefaultRegion(cfg.GetDefaultRegion()).
		WithFallback(appCfg.Eligibility.Fallback)

	log.Info().
		Str("title", cfg.InterviewConfig.Title).
		Int("questions", cfg.GetTotalQuestions()).
		Str("default_region", cfg.GetDefaultRegion()).
		Fields(appCfg.Eligibility.GetInfo()).
		Msg("📋 Конфигурация загружена")

	// HTTP API
	sessions := interviewer.NewRegistry()
	sessions.StartCleanup(ctx.Done(), sessionCleanupInterval, sessionMaxIdle)

	if appCfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:         appCfg.Server.Addr(),
		Handler:      httpapi.NewServer(service, sessions, store, m).Router(),
		ReadTimeout:  appCfg.Server.ReadTimeout,
		WriteTimeout: appCfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP сервер запущен")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Ошибка HTTP сервера")
			stop()
		}
	}()

	// Telegram бот
	if appCfg.Telegram.Token != "" {
		handler := telegram.NewHandler(service, interviewer.NewRegistry())
		handler.StartSessionCleanup(ctx)

		bot, err := telegram.New(appCfg.Telegram.Token, appCfg.Telegram.Debug, handler)
		if err != nil {
			log.Fatal().Err(err).Msg("Ошибка инициализации Telegram бота")
		}
		go bot.Start(ctx)
		log.Info().Msg("📱 Найдите бота в Telegram и отправьте /start")
	} else {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN не задан, Telegram бот отключен")
	}

	<-ctx.Done()
	log.Info().Msg("Остановка...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Ошибка остановки HTTP сервера")
	}

	log.Info().Msg("Сервис остановлен")
}
