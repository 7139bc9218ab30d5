package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	ProjectID string        `json:"project_id"`
	PageID    string        `json:"page_id"`
	History   []ChatMessage `json:"history"`
	Message   string        `json:"message"`
}

// ElementSuggestion is an element the assistant wants placed on the
// canvas. It goes through the regular element store, so positions get
// the same rounding as a palette drop.
type ElementSuggestion struct {
	ElementType string             `json:"element_type"`
	X           float64            `json:"x_position"`
	Y           float64            `json:"y_position"`
	Width       *int               `json:"width,omitempty"`
	Height      *int               `json:"height,omitempty"`
	Content     *json.RawMessage   `json:"content,omitempty"`
	Style       *map[string]string `json:"style,omitempty"`
}

type ChatResponse struct {
	OK       bool                `json:"ok"`
	Answer   string              `json:"answer"`
	Elements []ElementSuggestion `json:"elements,omitempty"`
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("ASSISTANT_BASE_URL is not set")
	}

	b, _ := json.Marshal(req)

	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat", bytes.NewReader(b))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("assistant chat: %w", err)
	}
	defer resp.Body.Close()

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("assistant decode: %w", err)
	}
	if resp.StatusCode >= 400 || !out.OK {
		return &out, fmt.Errorf("assistant error (status %d)", resp.StatusCode)
	}
	return &out, nil
}
