package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"studentia/internal/config"
	"studentia/internal/model"
	"studentia/pkg/logger"
	"studentia/pkg/monitoring"
	"studentia/pkg/tracing"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// TextGenerator 文本生成服务
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator 图片生成服务，返回图片地址（URL 或 data URI）
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req model.ImageRequest) (string, error)
}

type AIService struct {
	mu      sync.RWMutex
	config  config.AIConfig
	client  *http.Client
	llm     llms.Model
	initErr error
}

func NewAIService(cfg config.AIConfig) *AIService {
	s := &AIService{}
	s.UpdateConfig(cfg)
	return s
}

// UpdateConfig 配置热更新时重建客户端
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	client := &http.Client{Timeout: cfg.Timeout}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		openai.WithModel(cfg.TextModel),
		openai.WithHTTPClient(client),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client = client
	s.llm = llm
	s.initErr = err
	if err != nil {
		logger.Log.Warn("Text generation client unavailable", zap.Error(err))
	}
}

func (s *AIService) snapshot() (config.AIConfig, *http.Client, llms.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.client, s.llm, s.initErr
}

func (s *AIService) GenerateText(ctx context.Context, prompt string) (reply string, err error) {
	start := time.Now()
	ctx, end := tracing.StartSpan(ctx, "ai.generate_text")
	defer func() {
		end(err)
		monitoring.ObserveAI("text", start, err)
	}()

	cfg, _, llm, initErr := s.snapshot()
	if initErr != nil {
		return "", fmt.Errorf("text generation client: %w", initErr)
	}

	logger.Log.Debug("Calling text generation", zap.String("model", cfg.TextModel), zap.Int("promptChars", len(prompt)))
	reply, err = llms.GenerateFromSinglePrompt(ctx, llm, prompt)
	if err != nil {
		logger.Log.Error("Text generation failed", zap.Error(err))
		return "", fmt.Errorf("text generation: %w", err)
	}
	return reply, nil
}

type imageGenerationResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) GenerateImage(ctx context.Context, req model.ImageRequest) (ref string, err error) {
	start := time.Now()
	ctx, end := tracing.StartSpan(ctx, "ai.generate_image")
	defer func() {
		end(err)
		monitoring.ObserveAI("image", start, err)
	}()

	cfg, client, _, _ := s.snapshot()
	if req.Model == "" {
		req.Model = cfg.ImageModel
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(cfg.BaseURL, "/")+"/images/generations", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image generation error (status %d): %s", resp.StatusCode, apiErrorMessage(body))
	}

	var result imageGenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("image generation: malformed response: %w", err)
	}
	if len(result.Data) == 0 {
		return "", fmt.Errorf("image generation returned no images")
	}

	first := result.Data[0]
	switch {
	case first.URL != "":
		return first.URL, nil
	case first.B64JSON != "":
		return "data:image/png;base64," + first.B64JSON, nil
	}
	return "", fmt.Errorf("image generation returned an empty image reference")
}

func apiErrorMessage(body []byte) string {
	var result imageGenerationResponse
	if err := json.Unmarshal(body, &result); err == nil && result.Error != nil && result.Error.Message != "" {
		return result.Error.Message
	}
	return string(body)
}
