package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
)

func TestForumUpdate_RequiresCategory(t *testing.T) {
	ts, client, _ := newTestServer(t)
	register(t, client, ts.URL, "Alice", "alice@example.com", "s3cret").Body.Close()

	payloads := []map[string]any{
		{"title": "t", "content": "c"},
		{"title": "t", "content": "c", "category_id": 0},
		{"title": "", "content": "c", "category_id": 1},
	}

	for _, payload := range payloads {
		body, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/forum/1", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("building request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("PUT /api/forum/1: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("payload %v: expected 400, got %d", payload, resp.StatusCode)
		}
		var got struct {
			Message string `json:"message"`
		}
		decodeBody(t, resp, &got)
		if got.Message != "Title, content and category are required" {
			t.Fatalf("unexpected message %q", got.Message)
		}
	}
}
