package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Answer(ctx context.Context, req Request) (string, error) {
	if req.Object == nil && req.Entity == nil {
		return "I could not determine the selected object.", nil
	}

	prompt := buildPrompt(req)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful AI assistant."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("answer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("answer generator returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("answer generator returned no choices")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

func buildPrompt(req Request) string {
	var context string

	if req.Temporal && req.Entity != nil {
		all, _ := json.Marshal(req.Entities)
		context = fmt.Sprintf(`You are answering a question about an object detected in a video.

Selected Temporal Object:
- Name: %s
- First seen at: %s
- Last seen at: %s

All temporal objects detected in the video:
%s

Answer the user's question clearly.
If the question refers to timing (e.g., when did it appear?),
use the first_seen and last_seen information.`,
			req.Entity.Name, req.Entity.FirstSeen, req.Entity.LastSeen, all)
	} else {
		all, _ := json.Marshal(req.Objects)
		context = fmt.Sprintf(`You are answering a question about an object detected in an image.

Selected Object:
- Name: %s
- Color: %s
- Position: %s
- Attributes: %v

All detected objects in the scene:
%s

Answer the user's question clearly and concisely.
If the question is a follow-up (e.g., "What color is it?"),
refer to the selected object.`,
			req.Object.Name, orUnknown(req.Object.Color), orUnknown(req.Object.Position),
			[]string(req.Object.Attributes), all)
	}

	return fmt.Sprintf(`%s

User Question:
%s

Provide a helpful and natural response.
Do not invent objects not in the context.`, context, req.Question)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/models", nil)
	if err != nil {
		return false
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
