package extractor

import (
	"errors"

	"github.com/rs/zerolog/log"
)

var ErrNoDocuments = errors.New("нужен хотя бы один документ")

// MergeDocuments собирает данные дела из нескольких документов.
// Для каждого поля берется первое непустое значение по порядку: повестка, приговор, полицейский отчет.
// further_instruction из приговора имеет приоритет. Ошибки разбора собираются в parsing_errors.
func MergeDocuments(docs Documents) (map[string]any, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	merged := make(map[string]any, len(CaseFields)+1)
	for _, field := range CaseFields {
		merged[field] = nil
		for _, src := range sources {
			if v, ok := docs[src][field]; ok && !isEmpty(v) {
				merged[field] = v
				break
			}
		}
	}

	if v, ok := docs[SourceSentencing]["further_instruction"]; ok && !isEmpty(v) {
		merged["further_instruction"] = v
	}

	var parsingErrors []string
	for _, src := range sources {
		if msg, ok := docs[src]["error"].(string); ok && msg != "" {
			parsingErrors = append(parsingErrors, msg)
		}
	}
	if len(parsingErrors) > 0 {
		merged["parsing_errors"] = parsingErrors
	}

	log.Info().
		Int("documents", len(docs)).
		Interface("case_number", merged["case_number"]).
		Int("parsing_errors", len(parsingErrors)).
		Msg("Данные дела собраны из документов")

	return merged, nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
