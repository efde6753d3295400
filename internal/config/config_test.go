package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expungement-interview/internal/interview"
)

const validYAML = `
interview_config:
  default_region: "California"
questions:
  - key: conviction_type
    prompt: "Tell me about the conviction."
    expected_type: text
  - key: date
    prompt: "When?"
    expected_type: date
  - key: other_convictions
    prompt: "Other convictions?"
    expected_type: boolean
`

func TestLoad(t *testing.T) {
	t.Run("Should load questions in order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "interview.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validYAML), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.GetTotalQuestions())
		assert.Equal(t, "California", cfg.GetDefaultRegion())
		assert.Equal(t, []interview.Question{
			{Key: "conviction_type", Prompt: "Tell me about the conviction.", ExpectedType: interview.TypeText},
			{Key: "date", Prompt: "When?", ExpectedType: interview.TypeDate},
			{Key: "other_convictions", Prompt: "Other convictions?", ExpectedType: interview.TypeBoolean},
		}, cfg.GetQuestions())
	})

	t.Run("Should load the bundled questionnaire", func(t *testing.T) {
		cfg, err := Load(filepath.Join("..", "..", "config", "interview.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.GetTotalQuestions())
	})

	t.Run("Should fail on missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestParseValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"Should reject empty question list", "questions: []"},
		{"Should reject missing key", "questions:\n  - prompt: p\n    expected_type: text"},
		{"Should reject duplicate keys", "questions:\n  - key: a\n    prompt: p\n    expected_type: text\n  - key: a\n    prompt: q\n    expected_type: text"},
		{"Should reject missing prompt", "questions:\n  - key: a\n    expected_type: text"},
		{"Should reject unknown type", "questions:\n  - key: a\n    prompt: p\n    expected_type: number"},
		{"Should reject malformed YAML", "questions: ["},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

// clearAppEnv сбрасывает переменные окружения, которые читает LoadAppConfig
func clearAppEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_DEBUG",
		"SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
		"ELIGIBILITY_URL", "ELIGIBILITY_TIMEOUT", "ELIGIBILITY_FALLBACK",
		"RESULTS_DIR", "LOG_LEVEL", "LOG_FORMAT", "INTERVIEW_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadAppConfig(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		clearAppEnv(t)
		cfg := LoadAppConfig()

		assert.Equal(t, "results", cfg.Storage.ResultsDir)
		assert.Equal(t, ":8080", cfg.Server.Addr())
		assert.True(t, cfg.Eligibility.Fallback)
		assert.Equal(t, 120*time.Second, cfg.Eligibility.Timeout)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "config/interview.yaml", cfg.InterviewConfigPath)
		assert.Empty(t, cfg.Telegram.Token)
		assert.NoError(t, cfg.Eligibility.Validate())
	})

	t.Run("Should read overrides from environment", func(t *testing.T) {
		clearAppEnv(t)
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("ELIGIBILITY_TIMEOUT", "5s")
		t.Setenv("ELIGIBILITY_FALLBACK", "false")
		t.Setenv("RESULTS_DIR", "/tmp/results")

		cfg := LoadAppConfig()

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Eligibility.Timeout)
		assert.False(t, cfg.Eligibility.Fallback)
		assert.Equal(t, "/tmp/results", cfg.Storage.ResultsDir)
	})

	t.Run("Should ignore malformed values", func(t *testing.T) {
		clearAppEnv(t)
		t.Setenv("SERVER_PORT", "not-a-port")
		assert.Equal(t, 8080, LoadAppConfig().Server.Port)
	})
}

func TestEligibilityConfigValidate(t *testing.T) {
	t.Run("Should reject relative URL", func(t *testing.T) {
		cfg := EligibilityConfig{URL: "/check-eligibility", Timeout: time.Second}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Should reject non-positive timeout", func(t *testing.T) {
		cfg := EligibilityConfig{URL: "http://localhost:8000/check-eligibility"}
		assert.Error(t, cfg.Validate())
	})
}
