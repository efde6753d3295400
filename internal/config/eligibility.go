package config

import (
	"fmt"
	"net/url"
	"time"
)

type EligibilityConfig struct {
	URL      string
	Timeout  time.Duration
	Fallback bool
}

// LoadEligibilityConfig загружает настройки сервиса проверки права на снятие судимости
func LoadEligibilityConfig() EligibilityConfig {
	return EligibilityConfig{
		URL:      getEnv("ELIGIBILITY_URL", "http://127.0.0.1:8000/check-eligibility"),
		Timeout:  getEnvAsDuration("ELIGIBILITY_TIMEOUT", 120*time.Second),
		Fallback: getEnvAsBool("ELIGIBILITY_FALLBACK", true),
	}
}

// Validate проверяет корректность конфигурации
func (c EligibilityConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("ELIGIBILITY_URL is required")
	}

	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ELIGIBILITY_URL must be an absolute URL, got %q", c.URL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("ELIGIBILITY_TIMEOUT must be positive")
	}

	return nil
}

// GetInfo возвращает сведения о подключении для логов
func (c EligibilityConfig) GetInfo() map[string]interface{} {
	return map[string]interface{}{
		"url":      c.URL,
		"timeout":  c.Timeout.String(),
		"fallback": c.Fallback,
	}
}
