// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for upstream HTTP requests.
	defaultRequestTimeout = 120 * time.Second
)

// Config represents the top-level application configuration.
type Config struct {
	Hosts          []Host `json:"hosts"`
	Debug          bool   `json:"debug"`
	CatalogPath    string `json:"catalogPath"`
	EmbeddingHost  string `json:"embeddingHost"`
	EmbeddingModel string `json:"embeddingModel"`
	ChatHost       string `json:"chatHost"`
	ChatModel      string `json:"chatModel"`
	ChunkSize      int    `json:"chunkSize,omitempty"`
	ChunkOverlap   int    `json:"chunkOverlap,omitempty"`
	TopK           int    `json:"topK,omitempty"`
	TimeoutSeconds int    `json:"timeout,omitempty"`
	LogFile        string `json:"logFile,omitempty"`
	ConfigPath     string `json:"-"`
}

// Host represents a single host that can serve embedding or chat models.
type Host struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// RequestTimeout returns the timeout duration for upstream HTTP requests,
// falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a
// default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "rag-ai.log"
}

// HostByName resolves a configured host by its name.
func (c Config) HostByName(name string) (Host, error) {
	if strings.TrimSpace(name) == "" {
		return Host{}, errors.New("host name is empty")
	}
	for _, host := range c.Hosts {
		if host.Name == name {
			return host, nil
		}
	}
	return Host{}, fmt.Errorf("host %q not found in config hosts", name)
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if len(config.Hosts) == 0 {
		return Config{}, errors.New("config must contain at least one host")
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	applyDefaults(&config)

	return config, nil
}

func applyDefaults(config *Config) {
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = 500
	}
	if config.ChunkOverlap < 0 {
		config.ChunkOverlap = 0
	}
	if config.TopK <= 0 {
		config.TopK = 8
	}
}

// Validate checks the fields the retrieval pipeline depends on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.CatalogPath) == "" {
		return errors.New("catalogPath is required")
	}
	if strings.TrimSpace(c.EmbeddingModel) == "" {
		return errors.New("embeddingModel is required")
	}
	if strings.TrimSpace(c.ChatModel) == "" {
		return errors.New("chatModel is required")
	}
	if _, err := c.HostByName(c.EmbeddingHost); err != nil {
		return fmt.Errorf("embeddingHost: %w", err)
	}
	if _, err := c.HostByName(c.ChatHost); err != nil {
		return fmt.Errorf("chatHost: %w", err)
	}
	if c.ChunkSize <= 0 {
		return errors.New("chunkSize must be greater than zero")
	}
	if c.ChunkOverlap < 0 {
		return errors.New("chunkOverlap must be zero or greater")
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return errors.New("chunkOverlap must be smaller than chunkSize")
	}
	return nil
}
