package storage

import (
	"expungement-interview/internal/api"
	"expungement-interview/internal/interview"
)

// InterviewResult представляет результат всей анкеты
type InterviewResult struct {
	InterviewID string              `json:"interview_id"`
	Timestamp   string              `json:"timestamp"`
	Region      string              `json:"region"`
	Responses   interview.Responses `json:"responses"`
	CaseData    map[string]any      `json:"case_data,omitempty"`
	Transcript  []interview.Turn    `json:"transcript"`
	Decision    *api.Decision       `json:"decision,omitempty"`
}
