// Package config defines the configuration schema for goodfoods,
// loaded from ~/.goodfoods/config.json.
package config

import (
	"os"
	"path/filepath"
)

// ProviderConfig holds credentials for one LLM provider.
type ProviderConfig struct {
	APIKey       string            `json:"apiKey"`
	APIBase      string            `json:"apiBase,omitempty"`
	ExtraHeaders map[string]string `json:"extraHeaders,omitempty"`
}

// ProvidersConfig holds credentials for all supported LLM providers.
type ProvidersConfig struct {
	Custom     ProviderConfig `json:"custom"`
	OpenAI     ProviderConfig `json:"openai"`
	OpenRouter ProviderConfig `json:"openrouter"`
	Groq       ProviderConfig `json:"groq"`
}

// AgentDefaults holds default values for agent behaviour.
type AgentDefaults struct {
	Workspace    string  `json:"workspace"`
	Model        string  `json:"model"`
	MaxTokens    int     `json:"maxTokens"`
	Temperature  float64 `json:"temperature"`
	MaxToolIter  int     `json:"maxToolIterations"`
	MemoryWindow int     `json:"memoryWindow"`
}

func defaultAgentDefaults() AgentDefaults {
	return AgentDefaults{
		Workspace:    "~/.goodfoods/workspace",
		Model:        "llama-3.1-8b-instant",
		MaxTokens:    4096,
		Temperature:  0.7,
		MaxToolIter:  10,
		MemoryWindow: 50,
	}
}

// AgentsConfig wraps agent defaults.
type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults"`
}

func defaultAgentsConfig() AgentsConfig {
	return AgentsConfig{Defaults: defaultAgentDefaults()}
}

// ---- Channel configs -------------------------------------------------------

// TelegramConfig configures the Telegram channel.
type TelegramConfig struct {
	Enabled        bool     `json:"enabled"`
	Token          string   `json:"token"`
	AllowFrom      []string `json:"allowFrom"`
	ReplyToMessage bool     `json:"replyToMessage"`
}

func defaultTelegramConfig() TelegramConfig {
	return TelegramConfig{AllowFrom: []string{}}
}

// SlackConfig configures the Slack channel (socket mode).
type SlackConfig struct {
	Enabled       bool     `json:"enabled"`
	BotToken      string   `json:"botToken"`
	AppToken      string   `json:"appToken"`
	AllowFrom     []string `json:"allowFrom"`
	ReplyInThread bool     `json:"replyInThread"`
}

func defaultSlackConfig() SlackConfig {
	return SlackConfig{AllowFrom: []string{}, ReplyInThread: true}
}

// WebConfig configures the browser chat channel served by the gateway.
type WebConfig struct {
	Enabled bool `json:"enabled"`
}

func defaultWebConfig() WebConfig {
	return WebConfig{Enabled: true}
}

// ChannelsConfig groups all channel configurations.
type ChannelsConfig struct {
	Telegram TelegramConfig `json:"telegram"`
	Slack    SlackConfig    `json:"slack"`
	Web      WebConfig      `json:"web"`
}

func defaultChannelsConfig() ChannelsConfig {
	return ChannelsConfig{
		Telegram: defaultTelegramConfig(),
		Slack:    defaultSlackConfig(),
		Web:      defaultWebConfig(),
	}
}

// ---- Data configs ----------------------------------------------------------

// DirectoryConfig locates the branch catalogue file.
type DirectoryConfig struct {
	Path string `json:"path"`
}

func defaultDirectoryConfig() DirectoryConfig {
	return DirectoryConfig{Path: "~/.goodfoods/branches.json"}
}

// LedgerConfig locates the reservation ledger file.
type LedgerConfig struct {
	Path string `json:"path"`
}

func defaultLedgerConfig() LedgerConfig {
	return LedgerConfig{Path: "~/.goodfoods/reservations.json"}
}

// RemindersConfig configures the daily reservation digest.
type RemindersConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"` // cron expression
	Channel  string `json:"channel"`  // destination channel name
	ChatId   string `json:"chatId"`   // destination chat identifier
}

func defaultRemindersConfig() RemindersConfig {
	return RemindersConfig{Schedule: "0 9 * * *"}
}

// GatewayConfig holds the web gateway listen address.
type GatewayConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func defaultGatewayConfig() GatewayConfig {
	return GatewayConfig{Host: "0.0.0.0", Port: 18790}
}

// ---- Root config -----------------------------------------------------------

// Config is the root configuration object.
type Config struct {
	Agents    AgentsConfig    `json:"agents"`
	Channels  ChannelsConfig  `json:"channels"`
	Providers ProvidersConfig `json:"providers"`
	Gateway   GatewayConfig   `json:"gateway"`
	Directory DirectoryConfig `json:"directory"`
	Ledger    LedgerConfig    `json:"ledger"`
	Reminders RemindersConfig `json:"reminders"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Agents:    defaultAgentsConfig(),
		Channels:  defaultChannelsConfig(),
		Providers: ProvidersConfig{},
		Gateway:   defaultGatewayConfig(),
		Directory: defaultDirectoryConfig(),
		Ledger:    defaultLedgerConfig(),
		Reminders: defaultRemindersConfig(),
	}
}

// WorkspacePath returns the expanded absolute path to the agent workspace.
func (c *Config) WorkspacePath() string {
	ws := c.Agents.Defaults.Workspace
	if ws == "" {
		ws = "~/.goodfoods/workspace"
	}
	return expandHome(ws)
}

// DirectoryPath returns the expanded branch catalogue path.
func (c *Config) DirectoryPath() string {
	p := c.Directory.Path
	if p == "" {
		p = defaultDirectoryConfig().Path
	}
	return expandHome(p)
}

// LedgerPath returns the expanded reservation ledger path.
func (c *Config) LedgerPath() string {
	p := c.Ledger.Path
	if p == "" {
		p = defaultLedgerConfig().Path
	}
	return expandHome(p)
}

// PersonaPath returns the PERSONA.md path inside the workspace.
func (c *Config) PersonaPath() string {
	return filepath.Join(c.WorkspacePath(), "PERSONA.md")
}

// ProviderByName returns a pointer to the ProviderConfig field matching the
// given registry name. Returns nil if unknown.
func (c *Config) ProviderByName(name string) *ProviderConfig {
	switch name {
	case "custom":
		return &c.Providers.Custom
	case "openai":
		return &c.Providers.OpenAI
	case "openrouter":
		return &c.Providers.OpenRouter
	case "groq":
		return &c.Providers.Groq
	}
	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
