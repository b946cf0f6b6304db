package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"studentia/internal/config"
	"studentia/internal/model"
	"studentia/internal/util"
	"studentia/pkg/logger"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImageService struct {
	generator ImageGenerator
	storage   *StorageService
	cfg       config.ImageConfig
	client    *http.Client
}

func NewImageService(generator ImageGenerator, storage *StorageService, cfg config.ImageConfig) *ImageService {
	if cfg.Quality == "" {
		cfg.Quality = "standard"
	}
	if cfg.Count <= 0 {
		cfg.Count = 1
	}
	return &ImageService{
		generator: generator,
		storage:   storage,
		cfg:       cfg,
		client:    &http.Client{Timeout: time.Minute},
	}
}

// Generate 校验表单、组装提示词并调用图片生成服务；
// 表单不合法时不会发起外部调用
func (s *ImageService) Generate(ctx context.Context, opts model.ImageOptions) (*model.ImageResult, error) {
	prompt, err := ComposeImagePrompt(opts)
	if err != nil {
		return nil, err
	}
	size, err := ResolveImageSize(opts.Resolution)
	if err != nil {
		return nil, err
	}

	ref, err := s.generator.GenerateImage(ctx, model.ImageRequest{
		Prompt:  prompt,
		Size:    size,
		Quality: s.cfg.Quality,
		N:       s.cfg.Count,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstream, err)
	}

	result := &model.ImageResult{URL: ref, Prompt: prompt, Size: size}

	if s.cfg.Archive && s.storage != nil {
		archived, err := s.archive(ctx, ref)
		if err != nil {
			logger.Log.Warn("Failed to archive generated image", zap.Error(err))
		} else {
			result.ArchivedURL = archived
		}
	}

	logger.Log.Info("Image generated", zap.String("size", size), zap.String("style", opts.Style))
	return result, nil
}

// archive 生成服务返回的 URL 会过期，转存一份到对象存储
func (s *ImageService) archive(ctx context.Context, ref string) (string, error) {
	var (
		data        []byte
		contentType = "image/png"
	)

	if strings.HasPrefix(ref, "data:") {
		comma := strings.Index(ref, ",")
		if comma < 0 {
			return "", fmt.Errorf("malformed data uri")
		}
		decoded, err := base64.StdEncoding.DecodeString(ref[comma+1:])
		if err != nil {
			return "", err
		}
		data = decoded
	} else {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return "", err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("download image: status %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); util.IsImage(ct) {
			contentType = ct
		}
		if data, err = io.ReadAll(resp.Body); err != nil {
			return "", err
		}
	}

	key := fmt.Sprintf("images/%s/%s.png", time.Now().Format(util.DateFormat), uuid.New().String())
	return s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
}
