package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiConfig содержит настройки клиента Generative Language API
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// TimeoutSec — таймаут одного запроса; генерация может занимать десятки секунд
	TimeoutSec int
}

// GeminiClient реализует Generator поверх REST API Generative Language.
// Один вызов Generate — ровно один запрос: ни кеширования, ни ретраев.
type GeminiClient struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

// NewGeminiClient создает клиент и проверяет обязательные параметры
func NewGeminiClient(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().SetTimeout(timeout)

	return &GeminiClient{
		client:  client,
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Структуры запроса и ответа generateContent

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate отправляет промпт и возвращает сырой текст первого кандидата
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		Post(url)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("[GeminiClient] Запрос отклонен: status=%d body=%s", resp.StatusCode(), resp.String())
		return "", fmt.Errorf("gemini request rejected with status %d", resp.StatusCode())
	}

	var parsed geminiResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse gemini response envelope: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contains no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
