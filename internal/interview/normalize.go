package interview

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	affirmativePattern = regexp.MustCompile(`\b(yes|yeah|yep|ya|y|correct|right|true|completed|done|finished|i do|sure|of course|absolutely|definitely)\b`)
	negativePattern    = regexp.MustCompile(`\b(no|nope|nah|never|none|zero|i haven't|wrong|false|didn't|no i have not)\b`)

	datePattern = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2}),?\s+(\d{4})\b`)
)

var monthNumbers = map[string]string{
	"january":   "01",
	"february":  "02",
	"march":     "03",
	"april":     "04",
	"may":       "05",
	"june":      "06",
	"july":      "07",
	"august":    "08",
	"september": "09",
	"october":   "10",
	"november":  "11",
	"december":  "12",
}

// NormalizeBoolean переводит свободный ответ в да/нет.
// Утвердительные слова проверяются первыми. Ответ без распознанных слов считается "нет".
func NormalizeBoolean(raw string) bool {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	if affirmativePattern.MatchString(normalized) {
		return true
	}
	if negativePattern.MatchString(normalized) {
		return false
	}

	return false
}

// NormalizeDate ищет в тексте дату вида "March 4, 2019" и возвращает "2019-03-04".
// Если дата не найдена, возвращается исходный текст.
func NormalizeDate(raw string) string {
	m := datePattern.FindStringSubmatch(strings.ToLower(raw))
	if m == nil {
		return raw
	}

	month, day, year := monthNumbers[m[1]], m[2], m[3]
	if len(day) == 1 {
		day = "0" + day
	}

	return fmt.Sprintf("%s-%s-%s", year, month, day)
}

// Normalize приводит ответ к типу, ожидаемому вопросом
func Normalize(q Question, raw string) any {
	switch q.ExpectedType {
	case TypeBoolean:
		return NormalizeBoolean(raw)
	case TypeDate:
		return NormalizeDate(raw)
	default:
		return raw
	}
}
