package interview

import (
	"fmt"
	"strings"
)

// ExpectedType определяет, как нормализуется ответ на вопрос
type ExpectedType string

const (
	TypeText    ExpectedType = "text"
	TypeDate    ExpectedType = "date"
	TypeBoolean ExpectedType = "boolean"
)

// ParseExpectedType разбирает тип из конфигурации
func ParseExpectedType(s string) (ExpectedType, error) {
	switch t := ExpectedType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeText, TypeDate, TypeBoolean:
		return t, nil
	default:
		return "", fmt.Errorf("неизвестный тип ответа %q", s)
	}
}

// Question представляет один вопрос анкеты
type Question struct {
	Key          string       `json:"key"`
	Prompt       string       `json:"prompt"`
	ExpectedType ExpectedType `json:"expected_type"`
}
