package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	Telegram    TelegramConfig
	Server      ServerConfig
	Eligibility EligibilityConfig
	Storage     StorageConfig
	Log         LogConfig

	InterviewConfigPath string
}

type TelegramConfig struct {
	Token string
	Debug bool
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type StorageConfig struct {
	ResultsDir string
}

type LogConfig struct {
	Level  string
	Format string
}

// Addr возвращает адрес для http.Server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func LoadAppConfig() *AppConfig {
	return &AppConfig{
		Telegram: TelegramConfig{
			Token: getEnv("TELEGRAM_BOT_TOKEN", ""),
			Debug: getEnvAsBool("TELEGRAM_DEBUG", false),
		},
		Server: ServerConfig{
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Eligibility: LoadEligibilityConfig(),
		Storage: StorageConfig{
			ResultsDir: getEnv("RESULTS_DIR", "results"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		InterviewConfigPath: getEnv("INTERVIEW_CONFIG", "config/interview.yaml"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
