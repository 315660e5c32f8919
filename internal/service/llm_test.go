package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frenzy2004/JetSki/internal/domain"
)

func newTestGPTClient(baseURL string) *GPTClient {
	return NewGPTClient(&GPTConfig{
		Model:   "test-model",
		APIKey:  "test-key",
		BaseURL: baseURL,
	})
}

func TestGPTClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("expected model test-model, got %q", req.Model)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %q", req.ResponseFormat.Type)
		}
		if req.Temperature != 0.7 {
			t.Errorf("expected temperature 0.7, got %v", req.Temperature)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"answer": 42}`}},
			},
		})
	}))
	defer srv.Close()

	client := newTestGPTClient(srv.URL)
	raw, err := client.Generate(context.Background(), "system", "user", 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		Answer int `json:"answer"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	if out.Answer != 42 {
		t.Errorf("expected answer 42, got %d", out.Answer)
	}
}

func TestGPTClient_Generate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error": {"message": "overloaded", "type": "server_error"}}`,
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices": []}`,
		},
		{
			name:   "empty content",
			status: http.StatusOK,
			body:   `{"choices": [{"message": {"content": ""}}]}`,
		},
		{
			name:   "content is not JSON",
			status: http.StatusOK,
			body:   `{"choices": [{"message": {"content": "sure, here is your JSON:"}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestGPTClient(srv.URL)
			_, err := client.Generate(context.Background(), "system", "user", 0.5)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, domain.ErrGeneration) {
				t.Errorf("expected ErrGeneration, got %v", err)
			}
		})
	}
}
