// Package config loads PRISM settings from an optional prism.yaml file and
// the environment.
package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"prism/ai"
	"prism/apierr"
	"prism/docparse"
)

// APIKeyEnv is the environment variable holding the Upstage API key
const APIKeyEnv = "UPSTAGE_API_KEY"

// Config holds the full application configuration.
type Config struct {
	Upstage     UpstageConfig `yaml:"upstage" mapstructure:"upstage"`
	Analysis    RequestConfig `yaml:"analysis" mapstructure:"analysis"`
	DeepDive    RequestConfig `yaml:"deep_dive" mapstructure:"deep_dive"`
	Temperature float64       `yaml:"temperature" mapstructure:"temperature"`
	Export      ExportConfig  `yaml:"export" mapstructure:"export"`
	Cache       CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Log         LogConfig     `yaml:"log" mapstructure:"log"`
	Update      UpdateConfig  `yaml:"update" mapstructure:"update"`
}

// UpstageConfig configures both Upstage APIs.
type UpstageConfig struct {
	APIKey          string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`
	Model           string `yaml:"model" mapstructure:"model"`
	DocumentBaseURL string `yaml:"document_base_url" mapstructure:"document_base_url"`
	TimeoutSecs     int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the per-request timeout, zero meaning none.
func (u UpstageConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSecs) * time.Second
}

// RequestConfig configures one kind of completion request.
type RequestConfig struct {
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ExportConfig configures Markdown exports.
type ExportConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"`
	FrontMatter bool   `yaml:"front_matter" mapstructure:"front_matter"`
}

// CacheConfig configures the document extraction cache.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// UpdateConfig configures self-update.
type UpdateConfig struct {
	Repository string `yaml:"repository" mapstructure:"repository"`
}

// Settings returns the analyzer request settings.
func (c *Config) Settings() ai.Settings {
	return ai.Settings{
		AnalysisMaxTokens: c.Analysis.MaxTokens,
		DeepDiveMaxTokens: c.DeepDive.MaxTokens,
		Temperature:       c.Temperature,
	}
}

// Load reads configuration from file and environment. An explicit path
// overrides the prism.yaml search.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("prism")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("$HOME", ".config", "prism"))
	}

	// Environment
	v.SetEnvPrefix("PRISM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("upstage.api_key", "PRISM_UPSTAGE_API_KEY", APIKeyEnv); err != nil {
		return nil, eris.Wrap(err, "config: bind api key")
	}

	// Defaults
	v.SetDefault("upstage.api_key", "")
	v.SetDefault("upstage.base_url", ai.DefaultBaseURL)
	v.SetDefault("upstage.model", ai.DefaultModel)
	v.SetDefault("upstage.document_base_url", docparse.BaseURL)
	v.SetDefault("upstage.timeout_secs", int(docparse.DefaultTimeout/time.Second))
	v.SetDefault("analysis.max_tokens", ai.DefaultAnalysisMaxTokens)
	v.SetDefault("deep_dive.max_tokens", ai.DefaultDeepDiveMaxTokens)
	v.SetDefault("temperature", ai.DefaultTemperature)
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.front_matter", false)
	v.SetDefault("cache.ttl_minutes", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", DefaultLogFile())
	v.SetDefault("update.repository", "prism-cli/prism")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// CheckConfig validates that the API key is present
func CheckConfig(cfg *Config) error {
	if cfg == nil || strings.TrimSpace(cfg.Upstage.APIKey) == "" {
		return apierr.MissingCredential(APIKeyEnv)
	}
	return nil
}

// GetAPIKeyHelp returns help text for setting up the Upstage API key
func GetAPIKeyHelp() string {
	return `To use PRISM, you need an Upstage API key.

Option 1: Create a .env file in the directory you run prism from:
  UPSTAGE_API_KEY=your-api-key

Option 2: Set the environment variable:
  export UPSTAGE_API_KEY="your-api-key"

Option 3: Add it to prism.yaml (./prism.yaml or ~/.config/prism/prism.yaml):
  upstage:
    api_key: your-api-key

Get a key from the Upstage Console: https://console.upstage.ai/`
}
