package unit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oreltrt123/displan-sub003/internal/assistant"
)

func TestAssistantClient_Chat(t *testing.T) {
	// Create a test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req assistant.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Message != "add a hero heading" {
			t.Errorf("unexpected message: %s", req.Message)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true, "answer": "Added a heading.", "elements": [{"element_type": "heading", "x_position": 40.6, "y_position": 12}]}`))
	}))
	defer server.Close()

	client := assistant.NewClient(server.URL)
	ctx := context.Background()

	resp, err := client.Chat(ctx, assistant.ChatRequest{
		ProjectID: "p-1",
		PageID:    "pg-1",
		Message:   "add a hero heading",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Answer != "Added a heading." {
		t.Errorf("unexpected answer: %s", resp.Answer)
	}
	if len(resp.Elements) != 1 || resp.Elements[0].ElementType != "heading" {
		t.Errorf("unexpected elements: %+v", resp.Elements)
	}
}

func TestAssistantClient_Chat_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"ok": false, "answer": ""}`))
	}))
	defer server.Close()

	client := assistant.NewClient(server.URL)

	_, err := client.Chat(context.Background(), assistant.ChatRequest{Message: "hi"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestAssistantClient_Chat_NoBaseURL(t *testing.T) {
	client := assistant.NewClient("")

	_, err := client.Chat(context.Background(), assistant.ChatRequest{Message: "hi"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestUserLimiter(t *testing.T) {
	// Burst of 2 per user; a third immediate call must be refused.
	limiter := assistant.NewUserLimiter(60, 2)

	if !limiter.Allow("user-a") {
		t.Error("first call should be allowed")
	}
	if !limiter.Allow("user-a") {
		t.Error("second call should be allowed")
	}
	if limiter.Allow("user-a") {
		t.Error("third immediate call should be limited")
	}

	// Other users are unaffected
	if !limiter.Allow("user-b") {
		t.Error("a different user should have a fresh budget")
	}
}
