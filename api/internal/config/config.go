// Package config loads service configuration from the environment, an
// optional .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissing = errors.New("missing required configuration")

type Config struct {
	Port string

	GeminiAPIKey          string
	GeminiCredentialsFile string
	GeminiEndpoint        string
	GeminiModel           string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	DefaultEngine  string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	CORSOrigins    []string

	DatabaseURL      string
	TelegramBotToken string
	WebhookURL       string

	LogLevel string
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gemini_model", "gemini-2.0-pro-exp-02-05")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("default_engine", "gemini")
	v.SetDefault("request_timeout", "120s")
	v.SetDefault("max_body_bytes", 1<<20)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("log_level", "info")
}

var keys = []string{
	"port",
	"gemini_api_key", "google_application_credentials", "gemini_endpoint", "gemini_model",
	"openai_api_key", "openai_base_url", "openai_model",
	"default_engine", "request_timeout", "max_body_bytes", "cors_origins",
	"database_url", "telegram_bot_token", "webhook_url",
	"log_level",
}

// Load reads configuration. path may be empty; a missing .env is ignored.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)
	for _, k := range keys {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", k, err)
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	timeout, err := time.ParseDuration(strings.TrimSpace(v.GetString("request_timeout")))
	if err != nil {
		return nil, fmt.Errorf("config: request_timeout: %w", err)
	}

	cfg := &Config{
		Port: strings.TrimSpace(v.GetString("port")),

		GeminiAPIKey:          strings.TrimSpace(v.GetString("gemini_api_key")),
		GeminiCredentialsFile: strings.TrimSpace(v.GetString("google_application_credentials")),
		GeminiEndpoint:        strings.TrimSpace(v.GetString("gemini_endpoint")),
		GeminiModel:           strings.TrimSpace(v.GetString("gemini_model")),

		OpenAIAPIKey:  strings.TrimSpace(v.GetString("openai_api_key")),
		OpenAIBaseURL: strings.TrimSpace(v.GetString("openai_base_url")),
		OpenAIModel:   strings.TrimSpace(v.GetString("openai_model")),

		DefaultEngine:  strings.ToLower(strings.TrimSpace(v.GetString("default_engine"))),
		RequestTimeout: timeout,
		MaxBodyBytes:   v.GetInt64("max_body_bytes"),
		CORSOrigins:    splitList(v.GetString("cors_origins")),

		DatabaseURL:      strings.TrimSpace(v.GetString("database_url")),
		TelegramBotToken: strings.TrimSpace(v.GetString("telegram_bot_token")),
		WebhookURL:       strings.TrimSpace(v.GetString("webhook_url")),

		LogLevel: strings.TrimSpace(v.GetString("log_level")),
	}
	return cfg, nil
}

// Validate checks that at least one upstream engine can be built and that
// the default engine is among them.
func (c *Config) Validate() error {
	if !c.HasGemini() && !c.HasOpenAI() {
		return fmt.Errorf("%w: GEMINI_API_KEY, GOOGLE_APPLICATION_CREDENTIALS or OPENAI_API_KEY", ErrMissing)
	}
	switch c.DefaultEngine {
	case "gemini":
		if !c.HasGemini() {
			return fmt.Errorf("%w: default engine gemini needs GEMINI_API_KEY or GOOGLE_APPLICATION_CREDENTIALS", ErrMissing)
		}
	case "openai", "gpt":
		if !c.HasOpenAI() {
			return fmt.Errorf("%w: default engine openai needs OPENAI_API_KEY", ErrMissing)
		}
	default:
		return fmt.Errorf("config: unknown default_engine %q", c.DefaultEngine)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be > 0")
	}
	return nil
}

func (c *Config) HasGemini() bool { return c.GeminiAPIKey != "" || c.GeminiCredentialsFile != "" }
func (c *Config) HasOpenAI() bool { return c.OpenAIAPIKey != "" }

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
