package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agents.Defaults.Model != def.Agents.Defaults.Model {
		t.Errorf("expected default model %q, got %q", def.Agents.Defaults.Model, cfg.Agents.Defaults.Model)
	}
	if cfg.Agents.Defaults.Model != "llama-3.1-8b-instant" {
		t.Errorf("unexpected default model %q", cfg.Agents.Defaults.Model)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"agents": map[string]any{
			"defaults": map[string]any{
				"model":     "groq/llama-3.3-70b-versatile",
				"maxTokens": 2048,
			},
		},
		"directory": map[string]any{"path": "/data/branches.json"},
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agents.Defaults.Model != "groq/llama-3.3-70b-versatile" {
		t.Errorf("model = %q", cfg.Agents.Defaults.Model)
	}
	if cfg.Agents.Defaults.MaxTokens != 2048 {
		t.Errorf("maxTokens = %d", cfg.Agents.Defaults.MaxTokens)
	}
	if cfg.DirectoryPath() != "/data/branches.json" {
		t.Errorf("directory path = %q", cfg.DirectoryPath())
	}
	// Untouched sections keep their defaults.
	if cfg.Agents.Defaults.Temperature != 0.7 {
		t.Errorf("temperature = %v", cfg.Agents.Defaults.Temperature)
	}
	if cfg.Gateway.Port != 18790 {
		t.Errorf("gateway port = %d", cfg.Gateway.Port)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for invalid JSON (falls back to default), got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agents.Defaults.Model != def.Agents.Defaults.Model {
		t.Errorf("expected default model %q, got %q", def.Agents.Defaults.Model, cfg.Agents.Defaults.Model)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	cfg.Providers.Groq.APIKey = "gsk_test"
	cfg.Channels.Telegram.Enabled = true
	cfg.Channels.Telegram.Token = "123:abc"

	if err := Save(&cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Providers.Groq.APIKey != "gsk_test" {
		t.Errorf("apiKey = %q", loaded.Providers.Groq.APIKey)
	}
	if !loaded.Channels.Telegram.Enabled || loaded.Channels.Telegram.Token != "123:abc" {
		t.Errorf("telegram = %+v", loaded.Channels.Telegram)
	}
}

func TestExpandHomePaths(t *testing.T) {
	cfg := DefaultConfig()
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got, want := cfg.LedgerPath(), filepath.Join(home, ".goodfoods", "reservations.json"); got != want {
		t.Errorf("ledger path = %q, want %q", got, want)
	}
	if got, want := cfg.PersonaPath(), filepath.Join(home, ".goodfoods", "workspace", "PERSONA.md"); got != want {
		t.Errorf("persona path = %q, want %q", got, want)
	}
}
