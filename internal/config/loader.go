package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"expungement-interview/internal/interview"
)

// Load загружает конфигурацию из YAML файла
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	return Parse(data)
}

// Parse разбирает и проверяет YAML конфигурацию
func Parse(data []byte) (*Config, error) {
	var config Config
	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	err = validateConfig(&config)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return &config, nil
}

// validateConfig проверяет корректность конфигурации
func validateConfig(config *Config) error {
	if len(config.Questions) == 0 {
		return fmt.Errorf("questions не может быть пустым")
	}

	seen := make(map[string]int, len(config.Questions))
	for i, q := range config.Questions {
		key := strings.TrimSpace(q.Key)
		if key == "" {
			return fmt.Errorf("вопрос %d должен иметь key", i+1)
		}

		if prev, ok := seen[key]; ok {
			return fmt.Errorf("вопрос %d повторяет key %q вопроса %d", i+1, key, prev)
		}
		seen[key] = i + 1

		if strings.TrimSpace(q.Prompt) == "" {
			return fmt.Errorf("вопрос %q должен иметь prompt", key)
		}

		if _, err := interview.ParseExpectedType(q.ExpectedType); err != nil {
			return fmt.Errorf("вопрос %q: %w", key, err)
		}

		config.Questions[i].Key = key
	}

	return nil
}
