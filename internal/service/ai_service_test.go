package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studentia/internal/config"
	"studentia/internal/model"
)

func newFakeOpenAI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Content any `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Model != "gpt-test" {
			t.Errorf("model = %q, want gpt-test", body.Model)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-test",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Q1: Hello?"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 3, "completion_tokens": 3, "total_tokens": 6}
		}`))
	})

	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		var req model.ImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode image request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(req.Prompt, "forbidden") {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"message": "content policy violation"}}`))
			return
		}
		if req.Model != "dall-e-test" || req.Size != "1024x1792" || req.N != 1 {
			t.Errorf("unexpected image request %+v", req)
		}
		w.Write([]byte(`{"created": 1, "data": [{"url": "https://images.example/1.png"}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestAIService(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL:    baseURL + "/v1",
		APIKey:     "sk-test",
		TextModel:  "gpt-test",
		ImageModel: "dall-e-test",
	})
}

func TestAIServiceGenerateText(t *testing.T) {
	srv := newFakeOpenAI(t)
	ai := newTestAIService(srv.URL)

	reply, err := ai.GenerateText(context.Background(), "make a quiz")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if reply != "Q1: Hello?" {
		t.Errorf("reply = %q", reply)
	}
}

func TestAIServiceGenerateTextWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	ai := NewAIService(config.AIConfig{BaseURL: "http://127.0.0.1:1", TextModel: "gpt-test"})

	if _, err := ai.GenerateText(context.Background(), "hi"); err == nil {
		t.Fatal("expected an error when no API key is configured")
	}
}

func TestAIServiceGenerateImage(t *testing.T) {
	srv := newFakeOpenAI(t)
	ai := newTestAIService(srv.URL)

	ref, err := ai.GenerateImage(context.Background(), model.ImageRequest{
		Prompt:  "a cat",
		Size:    "1024x1792",
		Quality: "standard",
		N:       1,
	})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if ref != "https://images.example/1.png" {
		t.Errorf("ref = %q", ref)
	}
}

func TestAIServiceGenerateImageSurfacesAPIError(t *testing.T) {
	srv := newFakeOpenAI(t)
	ai := newTestAIService(srv.URL)

	_, err := ai.GenerateImage(context.Background(), model.ImageRequest{Prompt: "forbidden", Size: "1024x1024", N: 1})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "content policy violation") || !strings.Contains(err.Error(), "400") {
		t.Errorf("error should carry status and API message: %v", err)
	}
}
