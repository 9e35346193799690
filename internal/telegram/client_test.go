package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotBody SendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]any{"message_id": 42, "chat": map[string]any{"id": 7}},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("123:abc", srv.URL)
	msg, err := c.SendMessage(context.Background(), SendMessageRequest{
		ChatID:    7,
		Text:      "<b>hello</b>",
		ParseMode: "HTML",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.ChatID != 7 || gotBody.Text != "<b>hello</b>" || gotBody.ParseMode != "HTML" {
		t.Errorf("unexpected payload: %+v", gotBody)
	}
	if msg.MessageID != 42 {
		t.Errorf("message_id = %d, want 42", msg.MessageID)
	}
}

func TestAPIErrorSurfacesDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  400,
			"description": "Bad Request: chat not found",
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("123:abc", srv.URL)
	_, err := c.SendMessage(context.Background(), SendMessageRequest{ChatID: 1, Text: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("error %q does not carry the API description", err)
	}
}

func TestGetUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GetUpdatesRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Offset != 100 {
			t.Errorf("offset = %d, want 100", req.Offset)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": []map[string]any{
				{"update_id": 100, "message": map[string]any{"message_id": 1, "chat": map[string]any{"id": 5}, "text": "/random"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("123:abc", srv.URL)
	updates, err := c.GetUpdates(context.Background(), 100, 30)
	if err != nil {
		t.Fatalf("GetUpdates: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("got %d updates, want 1", len(updates))
	}
	if updates[0].Message == nil || updates[0].Message.Text != "/random" {
		t.Errorf("unexpected update: %+v", updates[0])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short stays", "hello", 10, "hello"},
		{"exact stays", "hello", 5, "hello"},
		{"cut ascii", "hello world", 8, "hello…"},
		{"rune boundary", "héllo", 4, "h…"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.limit); got != tc.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}
