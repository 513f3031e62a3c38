package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"marketpulse/gateway-go/internal/config"
	"marketpulse/gateway-go/internal/logger"
	"marketpulse/gateway-go/internal/models"
)

const openaiChatURL = "https://api.openai.com/v1/chat/completions"

const analystSystemPrompt = "You are a financial market analyst. Answer using only the data " +
	"provided in the prompt. Be concise and concrete. Do not give financial advice."

// AIClient turns an analysis request into a narrative answer via the OpenAI
// chat-completions API, with a templated fallback when no key is configured
// or the call fails.
type AIClient struct {
	hc     *http.Client
	apiKey string
	model  string
	apiURL string
}

func NewAIClient(cfg config.Config) *AIClient {
	return &AIClient{
		hc:     &http.Client{Timeout: cfg.AITimeout},
		apiKey: cfg.OpenAIAPIKey,
		model:  cfg.OpenAIModel,
		apiURL: openaiChatURL,
	}
}

func (c *AIClient) Analyze(ctx context.Context, req models.AnalyzeRequest) string {
	if c.apiKey == "" {
		return SyntheticAnalysis(req)
	}
	prompt := BuildAnalysisPrompt(req)
	answer, err := c.complete(ctx, prompt)
	if err != nil {
		logger.Warn("narrative provider failed, serving mock analysis", zap.Error(err))
		return SyntheticAnalysis(req)
	}
	return answer
}

func (c *AIClient) complete(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": analystSystemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": 0.7,
		"max_tokens":  800,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("openai: status %d: %s", res.StatusCode, string(raw))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response")
	}
	return result.Choices[0].Message.Content, nil
}
