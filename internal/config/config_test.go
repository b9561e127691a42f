package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("port = %q, want 8000", cfg.Server.Port)
	}
	if cfg.Vectorizer.MaxFeatures != 3000 {
		t.Errorf("max_features = %d, want 3000", cfg.Vectorizer.MaxFeatures)
	}
	if cfg.Vectorizer.StopWords != "english" {
		t.Errorf("stop_words = %q, want english", cfg.Vectorizer.StopWords)
	}
	if cfg.Classifier.Alpha != 1.0 {
		t.Errorf("alpha = %g, want 1", cfg.Classifier.Alpha)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("allowed_origins = %v, want [*]", cfg.CORS.AllowedOrigins)
	}
	if cfg.Database.Enabled {
		t.Error("database should be disabled by default")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PREDICTIONS_DB", "/tmp/p.db")

	path := writeConfig(t, `
server:
  port: "9100"
  shutdown_timeout: 10s
cors:
  allowed_origins: ["http://localhost:3000"]
vectorizer:
  max_features: 500
  rank_by: document_frequency
training:
  background: true
database:
  enabled: true
  path: ${PREDICTIONS_DB}
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9100" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown_timeout = %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("allowed_origins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Vectorizer.MaxFeatures != 500 || cfg.Vectorizer.RankBy != "document_frequency" {
		t.Errorf("vectorizer = %+v", cfg.Vectorizer)
	}
	if !cfg.Training.Background {
		t.Error("training.background not decoded")
	}
	if cfg.Database.Path != "/tmp/p.db" {
		t.Errorf("database.path = %q, want expanded env", cfg.Database.Path)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("database.type = %q", cfg.Database.Type)
	}
}

func TestLoadConfigPortEnvOverride(t *testing.T) {
	t.Setenv("PORT", "7777")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: \"9100\"\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "7777" {
		t.Errorf("port = %q, want 7777", cfg.Server.Port)
	}
	if cfg.Addr() != ":7777" {
		t.Errorf("addr = %q", cfg.Addr())
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("PORT", "")

	tests := []struct {
		name string
		body string
	}{
		{"negative alpha", "classifier:\n  alpha: -1\n"},
		{"unknown rank", "vectorizer:\n  rank_by: tfidf\n"},
		{"unknown database", "database:\n  type: mysql\n"},
		{"negative cache", "cache:\n  size: -3\n"},
		{"malformed yaml", "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Corpus.Root != "movie_reviews" {
		t.Errorf("corpus.root = %q", cfg.Corpus.Root)
	}
}
