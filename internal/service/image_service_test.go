package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studentia/internal/config"
	"studentia/internal/model"
	"studentia/internal/util"
)

type fakeImageGenerator struct {
	ref   string
	err   error
	calls []model.ImageRequest
}

func (f *fakeImageGenerator) GenerateImage(ctx context.Context, req model.ImageRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.ref, f.err
}

func TestImageServiceGenerate(t *testing.T) {
	gen := &fakeImageGenerator{ref: "https://images.example/cat.png"}
	svc := NewImageService(gen, nil, config.ImageConfig{})

	opts := validImageOptions()
	opts.Resolution = "1024x1792 (portrait)"
	res, err := svc.Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if res.URL != "https://images.example/cat.png" || res.Size != "1024x1792" {
		t.Errorf("result = %+v", res)
	}
	if len(gen.calls) != 1 {
		t.Fatalf("expected one call, got %d", len(gen.calls))
	}
	call := gen.calls[0]
	if call.Size != "1024x1792" || call.Quality != "standard" || call.N != 1 {
		t.Errorf("request = %+v", call)
	}
	if !strings.HasSuffix(call.Prompt, "Scene: "+opts.Prompt) {
		t.Errorf("prompt should end with the scene: %q", call.Prompt)
	}
}

func TestImageServiceValidatesBeforeCalling(t *testing.T) {
	gen := &fakeImageGenerator{ref: "x"}
	svc := NewImageService(gen, nil, config.ImageConfig{})

	opts := validImageOptions()
	opts.Prompt = ""
	if _, err := svc.Generate(context.Background(), opts); !errors.Is(err, util.ErrEmptyScene) {
		t.Errorf("err = %v, want ErrEmptyScene", err)
	}

	opts = validImageOptions()
	opts.Resolution = "640x480"
	if _, err := svc.Generate(context.Background(), opts); !errors.Is(err, util.ErrInvalidOption) {
		t.Errorf("err = %v, want ErrInvalidOption", err)
	}

	if len(gen.calls) != 0 {
		t.Errorf("generator called %d times for invalid input", len(gen.calls))
	}
}

func TestImageServiceUpstreamError(t *testing.T) {
	gen := &fakeImageGenerator{err: errors.New("rate limited")}
	svc := NewImageService(gen, nil, config.ImageConfig{})

	_, err := svc.Generate(context.Background(), validImageOptions())
	if !errors.Is(err, util.ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}

func TestImageServiceArchivesDataURI(t *testing.T) {
	root := t.TempDir()
	storage := &StorageService{Provider: &LocalStorageProvider{Root: root}}
	// "hello" 的 base64
	gen := &fakeImageGenerator{ref: "data:image/png;base64,aGVsbG8="}
	svc := NewImageService(gen, storage, config.ImageConfig{Archive: true})

	res, err := svc.Generate(context.Background(), validImageOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(res.ArchivedURL, "/uploads/images/") {
		t.Fatalf("ArchivedURL = %q", res.ArchivedURL)
	}

	key := strings.TrimPrefix(res.ArchivedURL, "/uploads/")
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("archived file missing: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("archived content = %q", data)
	}
}
