// file: internals/ai/client.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

/* =========================================================
   DELEGATE CONTRACT
   The rest of the app depends on this interface only; the
   HTTP client below is the single production implementation.
========================================================= */

// Message is one entry of the ordered role/content list sent to the
// text-generation provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Delegate is the text-generation collaborator. Implementations must
// honor ctx cancellation/deadlines; callers own the timeout.
type Delegate interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

/* =========================================================
   CHAT CLIENT (OpenAI-compatible /chat/completions)
========================================================= */

type ChatClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewChatClient fails fast when credentials are missing instead of
// surfacing the problem on the first call.
func NewChatClient(baseURL, apiKey, model string) (*ChatClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ai: API key is not configured")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("ai: base URL is not configured")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("ai: model is not configured")
	}
	return &ChatClient{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}, nil
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (cl *ChatClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("ai: empty message list")
	}

	reqBody := chatCompletionRequest{
		Model:    cl.model,
		Messages: messages,
		Stream:   false,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cl.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cl.apiKey)

	resp, err := cl.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[ERROR] AI API status=%d body=%.200s", resp.StatusCode, string(body))
		return "", fmt.Errorf("ai: API error (status %d)", resp.StatusCode)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("ai: no choices in response")
	}
	text := parsed.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", errors.New("ai: empty completion text")
	}
	return text, nil
}
