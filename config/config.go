// Package config loads the process-wide settings once at startup and hands
// them out as one read-only value. Credentials come from the environment (and
// an optional .env file); missing optional credentials disable the matching
// export adapter without failing anything else.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// LLMConfig configures the text-generation API client.
type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// Validate checks the fields required before any generation call.
func (c LLMConfig) Validate() error {
	if c.APIKey == "" {
		return errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	if c.Model == "" {
		return errors.New("llm model is required; set OPENAI_MODEL")
	}
	return nil
}

// ImageConfig configures the image-generation API call.
type ImageConfig struct {
	Model   string
	Size    string
	Quality string
}

// NotionConfig holds the document-store credentials.
type NotionConfig struct {
	APIKey     string
	DatabaseID string
	BaseURL    string // override for tests; empty means the public API
}

// Configured reports whether the Notion export adapter can be used.
func (c NotionConfig) Configured() bool {
	return c.APIKey != "" && c.DatabaseID != ""
}

// WordPressConfig holds the CMS credentials.
type WordPressConfig struct {
	URL      string
	Username string
	Password string
}

// Configured reports whether the WordPress export adapter can be used.
func (c WordPressConfig) Configured() bool {
	return c.URL != "" && c.Username != "" && c.Password != ""
}

// Config is the full process configuration. It is built once in main and
// passed to each component at construction time.
type Config struct {
	ServerAddr string
	LLM        LLMConfig
	Image      ImageConfig
	Notion     NotionConfig
	WordPress  WordPressConfig
}

// Load reads envFile (when non-empty and present) and then the environment.
// Absent optional settings fall back to defaults; only a malformed env file
// is an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, err
			}
		}
	} else {
		// Default .env in the working directory, best effort.
		_ = godotenv.Load()
	}

	cfg := Config{
		ServerAddr: getenv("SERVER_ADDR", ":8080"),
		LLM: LLMConfig{
			Provider: getenv("LLM_PROVIDER", "openai"),
			Model:    getenv("OPENAI_MODEL", "gpt-4"),
			APIKey:   os.Getenv("OPENAI_API_KEY"),
			BaseURL:  os.Getenv("OPENAI_BASE_URL"),
		},
		Image: ImageConfig{
			Model:   getenv("IMAGE_MODEL", "dall-e-3"),
			Size:    getenv("IMAGE_SIZE", "1024x1024"),
			Quality: getenv("IMAGE_QUALITY", "standard"),
		},
		Notion: NotionConfig{
			APIKey:     os.Getenv("NOTION_API_KEY"),
			DatabaseID: os.Getenv("NOTION_DATABASE_ID"),
		},
		WordPress: WordPressConfig{
			URL:      os.Getenv("WORDPRESS_URL"),
			Username: os.Getenv("WORDPRESS_USERNAME"),
			Password: os.Getenv("WORDPRESS_PASSWORD"),
		},
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
