package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const systemPrompt = `You are an accessibility assistant.
Your job: Given an image, output a structured object list for blind/low-vision users.

Return ONLY valid JSON (no markdown, no extra text).
The JSON must follow this structure:
{
  "objects": [
    {
      "id": <int starting from 1>,
      "name": <string>,
      "count": <int>,
      "color": <string or null>,
      "position": <string: left/middle/right + optional top/middle/bottom>,
      "attributes": <array of short strings, can be empty>
    }
  ]
}

Guidelines:
- Include all salient objects.
- Use approximate positions like: "left", "right", "middle", "top-left", "bottom-right".
- If count is unknown, guess a reasonable integer.
- If color not visible, use null.`

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
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
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	MaxTokens      int            `json:"max_tokens"`
	Temperature    float64        `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type objectList struct {
	Objects []rawObject `json:"objects"`
}

// rawObject tolerates the labeler's loose typing before normalization.
type rawObject struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	Count      json.Number `json:"count"`
	Color      *string     `json:"color"`
	Position   string      `json:"position"`
	Attributes []string    `json:"attributes"`
}

func (c *Client) AnalyzeImage(ctx context.Context, data []byte, mimeType, question string) ([]DetectedObject, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no image data provided")
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	userText := fmt.Sprintf(`User question: %s

Task:
1) Identify objects relevant for answering the question, but still include other salient objects.
2) Produce the JSON object list as specified.`, question)

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: userText},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			}},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		MaxTokens:      600,
		Temperature:    0.2,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("labeler request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("labeler returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("labeler returned no choices")
	}

	return ParseObjectList([]byte(chatResp.Choices[0].Message.Content))
}

// ParseObjectList decodes and normalizes the labeler's JSON payload:
// ids become 1-based ints when absent or invalid, counts default to 1,
// attributes default to an empty list.
func ParseObjectList(payload []byte) ([]DetectedObject, error) {
	var parsed objectList
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("labeler returned non-JSON content: %w", err)
	}

	objects := make([]DetectedObject, 0, len(parsed.Objects))
	for i, raw := range parsed.Objects {
		obj := DetectedObject{
			Name:     raw.Name,
			Position: raw.Position,
			Count:    1,
		}

		if id, err := raw.ID.Int64(); err == nil && id > 0 {
			obj.ID = int(id)
		} else {
			obj.ID = i + 1
		}

		if count, err := raw.Count.Int64(); err == nil && count >= 1 {
			obj.Count = int(count)
		}

		if raw.Color != nil {
			obj.Color = *raw.Color
		}

		if raw.Attributes != nil {
			obj.Attributes = raw.Attributes
		} else {
			obj.Attributes = []string{}
		}

		objects = append(objects, obj)
	}

	return objects, nil
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
