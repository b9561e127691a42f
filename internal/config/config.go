package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCorpusURL is where the NLTK movie_reviews corpus archive is published.
const DefaultCorpusURL = "https://raw.githubusercontent.com/nltk/nltk_data/gh-pages/packages/corpora/movie_reviews.zip"

// Config holds application configuration
type Config struct {
	Server struct {
		Host            string        `yaml:"host"`
		Port            string        `yaml:"port"`
		Mode            string        `yaml:"mode"` // gin mode: "release", "debug", "test"
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Frontend struct {
		BuildDir string `yaml:"build_dir"`
	} `yaml:"frontend"`

	Corpus struct {
		Path            string        `yaml:"path"` // directory or .zip archive
		Root            string        `yaml:"root"` // directory inside Path holding the categories
		Download        bool          `yaml:"download"`
		URL             string        `yaml:"url"`
		DownloadTimeout time.Duration `yaml:"download_timeout"`
	} `yaml:"corpus"`

	Vectorizer struct {
		MaxFeatures int    `yaml:"max_features"`
		StopWords   string `yaml:"stop_words"` // "english", an ISO 639-1 code, or "none"
		RankBy      string `yaml:"rank_by"`    // "term_frequency" or "document_frequency"
	} `yaml:"vectorizer"`

	Classifier struct {
		Alpha float64 `yaml:"alpha"`
	} `yaml:"classifier"`

	Training struct {
		// Background starts serving before training finishes; predictions answer
		// 503 until the model is ready.
		Background bool `yaml:"background"`
	} `yaml:"training"`

	Cache struct {
		Size int `yaml:"size"` // 0 disables the prediction cache
	} `yaml:"cache"`

	Database struct {
		Enabled bool   `yaml:"enabled"`
		Type    string `yaml:"type"` // "sqlite" or "postgres"
		Path    string `yaml:"path"` // SQLite path or PostgreSQL URL
	} `yaml:"database"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the zap logger and optional rotated log file.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
	MaxSizeMB   int    `yaml:"max_size_mb"`
	MaxBackups  int    `yaml:"max_backups"`
	MaxAgeDays  int    `yaml:"max_age_days"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from YAML file. A missing file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// run with defaults
	case err != nil:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	default:
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	config.applyDefaults()

	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}

	config.Database.Path = os.ExpandEnv(config.Database.Path)
	config.Corpus.Path = os.ExpandEnv(config.Corpus.Path)
	config.Log.File = os.ExpandEnv(config.Log.File)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}

	if c.Frontend.BuildDir == "" {
		c.Frontend.BuildDir = "./frontend-build"
	}

	if c.Corpus.Path == "" {
		c.Corpus.Path = "./data/movie_reviews.zip"
	}
	if c.Corpus.Root == "" {
		c.Corpus.Root = "movie_reviews"
	}
	if c.Corpus.URL == "" {
		c.Corpus.URL = DefaultCorpusURL
	}
	if c.Corpus.DownloadTimeout == 0 {
		c.Corpus.DownloadTimeout = 2 * time.Minute
	}

	if c.Vectorizer.MaxFeatures == 0 {
		c.Vectorizer.MaxFeatures = 3000
	}
	if c.Vectorizer.StopWords == "" {
		c.Vectorizer.StopWords = "english"
	}
	if c.Vectorizer.RankBy == "" {
		c.Vectorizer.RankBy = "term_frequency"
	}

	if c.Classifier.Alpha == 0 {
		c.Classifier.Alpha = 1.0
	}

	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/predictions.db"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 100
	}
}

// Validate reports settings that cannot be served.
func (c *Config) Validate() error {
	if c.Vectorizer.MaxFeatures < 0 {
		return fmt.Errorf("vectorizer.max_features must be positive, got %d", c.Vectorizer.MaxFeatures)
	}
	if c.Classifier.Alpha < 0 {
		return fmt.Errorf("classifier.alpha must not be negative, got %g", c.Classifier.Alpha)
	}
	switch c.Vectorizer.RankBy {
	case "term_frequency", "document_frequency":
	default:
		return fmt.Errorf("unknown vectorizer.rank_by %q", c.Vectorizer.RankBy)
	}
	switch c.Database.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database.type %q", c.Database.Type)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative, got %d", c.Cache.Size)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
