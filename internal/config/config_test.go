package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Quiz.MaxDocumentChars != 3000 {
		t.Errorf("MaxDocumentChars = %d, want 3000", cfg.Quiz.MaxDocumentChars)
	}
	if cfg.Quiz.MinQuestions != 1 || cfg.Quiz.MaxQuestions != 20 {
		t.Errorf("question bounds = [%d, %d], want [1, 20]", cfg.Quiz.MinQuestions, cfg.Quiz.MaxQuestions)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("Session.Store = %q, want memory", cfg.Session.Store)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("Session.TTL = %v, want 2h", cfg.Session.TTL)
	}
	if cfg.AI.ImageModel != "dall-e-3" {
		t.Errorf("AI.ImageModel = %q, want dall-e-3", cfg.AI.ImageModel)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := `server:
  port: "9090"
  mode: debug
ai:
  text_model: gpt-4o-mini
session:
  store: redis
  ttl: 30m
quiz:
  max_questions: 10
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.AI.TextModel != "gpt-4o-mini" {
		t.Errorf("AI.TextModel = %q", cfg.AI.TextModel)
	}
	if cfg.Session.Store != "redis" || cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session = %+v", cfg.Session)
	}
	if cfg.Quiz.MaxQuestions != 10 {
		t.Errorf("Quiz.MaxQuestions = %d, want 10", cfg.Quiz.MaxQuestions)
	}
	if cfg.ConfigPath == "" {
		t.Error("ConfigPath should record the file that was read")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("AI_API_KEY", "sk-test")
	t.Setenv("SESSION_STORE", "redis")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.AI.APIKey != "sk-test" {
		t.Errorf("AI.APIKey = %q, want sk-test", cfg.AI.APIKey)
	}
	if cfg.Session.Store != "redis" {
		t.Errorf("Session.Store = %q, want redis", cfg.Session.Store)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring the previous one on cleanup (equivalent of testing.T.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
