package api

import "encoding/json"

// Decision - ответ сервиса проверки права на снятие судимости.
// Содержимое не интерпретируется, только передается дальше для показа.
type Decision struct {
	Eligible        bool              `json:"eligible"`
	Confidence      float64           `json:"confidence"`
	KeyFindings     []Finding         `json:"key_findings"`
	NextSteps       []string          `json:"next_steps"`
	RetrievedChunks []json.RawMessage `json:"retrieved_chunks"`
}

type Finding struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// FallbackDecision возвращает демо-ответ на случай недоступности сервиса
func FallbackDecision() *Decision {
	return &Decision{
		Eligible:   true,
		Confidence: 75,
		KeyFindings: []Finding{
			{
				Title:       "Demo Mode",
				Description: "Backend API is not running. This is demo data.",
			},
		},
		NextSteps:       []string{"Please start the backend API server for real results."},
		RetrievedChunks: []json.RawMessage{},
	}
}
