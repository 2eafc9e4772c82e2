package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ProviderOpenAI is the provider name recorded against usage rows
// produced by the OpenAI client.
const ProviderOpenAI = "openai"

const completionMaxTokens = 2000

// CompletionResult carries the raw model output together with the
// usage metadata reported by the provider.
type CompletionResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	Model            string
}

// Message represents a chat message sent to the provider
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the wire format of a chat-completions request
type completionRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	MaxTokens      int               `json:"max_tokens"`
}

// completionResponse is the subset of the chat-completions response we
// consume.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Model string `json:"model"`
}

// OpenAIClient calls the OpenAI chat-completions endpoint. All state is
// injected at construction; there is no package-level configuration.
type OpenAIClient struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIClient creates a new OpenAIClient. A nil httpClient falls
// back to a client with a 60s timeout.
func NewOpenAIClient(apiKey, apiURL, model string, httpClient *http.Client, logger *zap.Logger) *OpenAIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Provider returns the provider name for usage accounting.
func (c *OpenAIClient) Provider() string {
	return ProviderOpenAI
}

// Complete sends a system/user message pair and returns the raw model
// output with token usage. Transport and remote failures are wrapped in
// *ProviderError; callers decide retry policy.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (*CompletionResult, error) {
	reqBody := completionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		MaxTokens:      completionMaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderOpenAI, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderOpenAI, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("completion request rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, &ProviderError{
			Provider: ProviderOpenAI,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var result completionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ProviderError{Provider: ProviderOpenAI, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(result.Choices) == 0 {
		return nil, &ProviderError{Provider: ProviderOpenAI, Err: fmt.Errorf("no choices in response")}
	}

	model := result.Model
	if model == "" {
		model = c.model
	}

	return &CompletionResult{
		Content:          result.Choices[0].Message.Content,
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
		Model:            model,
	}, nil
}
