package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_ADDR", "LLM_PROVIDER", "OPENAI_MODEL", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"IMAGE_MODEL", "IMAGE_SIZE", "IMAGE_QUALITY",
		"NOTION_API_KEY", "NOTION_DATABASE_ID",
		"WORDPRESS_URL", "WORDPRESS_USERNAME", "WORDPRESS_PASSWORD",
	} {
		// t.Setenv registers the restore; Unsetenv leaves the key truly absent
		// so godotenv can populate it from a file.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerAddr != ":8080" {
		t.Fatalf("server addr=%q", cfg.ServerAddr)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4" {
		t.Fatalf("llm defaults=%+v", cfg.LLM)
	}
	if cfg.Image.Model != "dall-e-3" || cfg.Image.Size != "1024x1024" || cfg.Image.Quality != "standard" {
		t.Fatalf("image defaults=%+v", cfg.Image)
	}
	if cfg.Notion.Configured() {
		t.Fatal("notion should not be configured")
	}
	if cfg.WordPress.Configured() {
		t.Fatal("wordpress should not be configured")
	}
	if err := cfg.LLM.Validate(); err == nil {
		t.Fatal("validate must fail without an api key")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("NOTION_API_KEY", "ntn-test")
	t.Setenv("NOTION_DATABASE_ID", "db-1")
	t.Setenv("WORDPRESS_URL", "https://blog.example.com")
	t.Setenv("WORDPRESS_USERNAME", "admin")
	t.Setenv("WORDPRESS_PASSWORD", "app-pass")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.LLM.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Fatalf("model=%q", cfg.LLM.Model)
	}
	if !cfg.Notion.Configured() {
		t.Fatal("notion should be configured")
	}
	if !cfg.WordPress.Configured() {
		t.Fatal("wordpress should be configured")
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "OPENAI_API_KEY=sk-from-file\nSERVER_ADDR=:9999\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.APIKey != "sk-from-file" {
		t.Fatalf("api key=%q", cfg.LLM.APIKey)
	}
	if cfg.ServerAddr != ":9999" {
		t.Fatalf("server addr=%q", cfg.ServerAddr)
	}
}
