package config

import "expungement-interview/internal/interview"

// Config представляет конфигурацию анкеты
type Config struct {
	InterviewConfig InterviewConfig  `yaml:"interview_config"`
	Questions       []QuestionConfig `yaml:"questions"`
}

// InterviewConfig содержит общие настройки анкеты
type InterviewConfig struct {
	Title         string `yaml:"title"`
	DefaultRegion string `yaml:"default_region"`
}

// QuestionConfig представляет один вопрос в YAML
type QuestionConfig struct {
	Key          string `yaml:"key"`
	Prompt       string `yaml:"prompt"`
	ExpectedType string `yaml:"expected_type"`
}

// Методы для удобного доступа к конфигурации
func (c *Config) GetTotalQuestions() int {
	return len(c.Questions)
}

func (c *Config) GetDefaultRegion() string {
	return c.InterviewConfig.DefaultRegion
}

// GetQuestions возвращает вопросы в порядке анкеты.
// Типы уже проверены в validateConfig.
func (c *Config) GetQuestions() []interview.Question {
	questions := make([]interview.Question, 0, len(c.Questions))
	for _, q := range c.Questions {
		typ, _ := interview.ParseExpectedType(q.ExpectedType)
		questions = append(questions, interview.Question{
			Key:          q.Key,
			Prompt:       q.Prompt,
			ExpectedType: typ,
		})
	}
	return questions
}
