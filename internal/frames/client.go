package frames

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const DefaultMaxFrames = 5

// Client talks to the frame extraction sidecar over HTTP. The sidecar
// owns video decoding; this process never touches codec bytes.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
	}
}

type extractResponse struct {
	Frames []struct {
		Timestamp string `json:"timestamp"`
		ImageB64  string `json:"image_b64"`
	} `json:"frames"`
}

func (c *Client) Extract(ctx context.Context, video []byte, maxFrames int) ([]Frame, error) {
	if len(video) == 0 {
		return nil, fmt.Errorf("no video data provided")
	}
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("video", "upload.mp4")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(video)); err != nil {
		return nil, fmt.Errorf("write video data: %w", err)
	}
	if err := writer.WriteField("max_frames", fmt.Sprintf("%d", maxFrames)); err != nil {
		return nil, fmt.Errorf("write max_frames field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/extract", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sampler request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sampler returned status %d", resp.StatusCode)
	}

	var extractResp extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&extractResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	result := make([]Frame, 0, len(extractResp.Frames))
	for _, f := range extractResp.Frames {
		data, err := base64.StdEncoding.DecodeString(f.ImageB64)
		if err != nil {
			return nil, fmt.Errorf("decode frame at %s: %w", f.Timestamp, err)
		}
		result = append(result, Frame{Data: data, Timestamp: f.Timestamp})
	}

	return result, nil
}

func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
