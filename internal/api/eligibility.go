package api

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"expungement-interview/internal/config"
)

type EligibilityClient struct {
	url    string
	client *resty.Client
}

// NewEligibilityClient создает клиент сервиса проверки
func NewEligibilityClient(cfg config.EligibilityConfig) *EligibilityClient {
	return &EligibilityClient{
		url: cfg.URL,
		client: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", "application/json"),
	}
}

// Evaluate отправляет ответы анкеты и данные дела на проверку
func (c *EligibilityClient) Evaluate(ctx context.Context, payload map[string]any) (*Decision, error) {
	var decision Decision
	var apiErr errorResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&decision).
		SetError(&apiErr).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	if resp.IsError() {
		if apiErr.Detail != "" {
			return nil, fmt.Errorf("HTTP ошибка %d: %s", resp.StatusCode(), apiErr.Detail)
		}
		return nil, fmt.Errorf("HTTP ошибка %d: %s", resp.StatusCode(), resp.String())
	}

	return &decision, nil
}

// BuildPayload объединяет ответы анкеты с данными дела.
// При совпадении ключей побеждают данные дела.
func BuildPayload(responses map[string]any, caseData map[string]any) map[string]any {
	payload := make(map[string]any, len(responses)+len(caseData))
	for k, v := range responses {
		payload[k] = v
	}
	for k, v := range caseData {
		payload[k] = v
	}
	return payload
}
