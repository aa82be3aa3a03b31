package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// Supported advisory generator providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	CWA     CWAConfig     `yaml:"cwa"`
	LLM     LLMConfig     `yaml:"llm"`
	Advisor AdvisorConfig `yaml:"advisor"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string        `yaml:"address" envconfig:"HTTP_ADDRESS" validate:"required"`
	ReadTimeout     time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" envconfig:"HTTP_SHUTDOWN_TIMEOUT" validate:"gt=0"`

	// AllowedOrigins feeds the CORS middleware; empty allows any origin.
	AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"HTTP_ALLOWED_ORIGINS"`
}

// CWAConfig points at the Central Weather Administration open data API.
type CWAConfig struct {
	APIKey  string        `yaml:"apiKey" envconfig:"CWA_API_KEY"`
	BaseURL string        `yaml:"baseUrl" envconfig:"CWA_BASE_URL" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" envconfig:"CWA_TIMEOUT" validate:"gt=0"`
}

// LLMConfig selects and tunes the advisory generator.
type LLMConfig struct {
	Provider        string        `yaml:"provider" envconfig:"LLM_PROVIDER" validate:"oneof=gemini openai anthropic none"`
	APIKey          string        `yaml:"apiKey" envconfig:"LLM_API_KEY"`
	BaseURL         string        `yaml:"baseUrl" envconfig:"LLM_BASE_URL" validate:"omitempty,url"`
	Model           string        `yaml:"model" envconfig:"LLM_MODEL"`
	Temperature     float32       `yaml:"temperature" envconfig:"LLM_TEMPERATURE" validate:"gte=0,lte=2"`
	TopP            float32       `yaml:"topP" envconfig:"LLM_TOP_P" validate:"gte=0,lte=1"`
	TopK            float32       `yaml:"topK" envconfig:"LLM_TOP_K" validate:"gte=0"`
	MaxOutputTokens int           `yaml:"maxOutputTokens" envconfig:"LLM_MAX_OUTPUT_TOKENS" validate:"gt=0"`
	Timeout         time.Duration `yaml:"timeout" envconfig:"LLM_TIMEOUT" validate:"gt=0"`
}

// AdvisorConfig controls prompt construction for the advisory.
type AdvisorConfig struct {
	Prompt          string `yaml:"prompt" envconfig:"ADVISOR_PROMPT" validate:"required"`
	MaxPromptTokens int    `yaml:"maxPromptTokens" envconfig:"ADVISOR_MAX_PROMPT_TOKENS" validate:"gte=0"`
	MaxPeriods      int    `yaml:"maxPeriods" envconfig:"ADVISOR_MAX_PERIODS" validate:"gte=1,lte=2"`
	TokenEncoding   string `yaml:"tokenEncoding" envconfig:"ADVISOR_TOKEN_ENCODING"`
}

// Load reads configuration from defaults, an optional .env file, a YAML file
// and environment variables, in that order.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.APIKey == "" && cfg.LLM.Provider == ProviderGemini {
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		CWA: CWAConfig{
			BaseURL: "https://opendata.cwa.gov.tw/api/v1/rest/datastore",
			Timeout: 10 * time.Second,
		},
		LLM: LLMConfig{
			Provider:        ProviderGemini,
			Temperature:     0.7,
			TopP:            0.9,
			TopK:            40,
			MaxOutputTokens: 2000,
			Timeout:         20 * time.Second,
		},
		Advisor: AdvisorConfig{
			Prompt:          "你是一位專業的台灣氣象顧問。請根據提供的天氣預報資料，用繁體中文給出簡短、實用的生活建議，包含穿著、是否攜帶雨具、防曬與戶外活動提醒。每點以表情符號開頭，不超過五點。",
			MaxPromptTokens: 2000,
			MaxPeriods:      2,
			TokenEncoding:   "cl100k_base",
		},
	}
}

var validate = validator.New()

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if strings.TrimSpace(c.CWA.APIKey) == "" {
		return errors.New("cwa.apiKey cannot be empty")
	}
	return nil
}

// GeneratorEnabled reports whether the configured provider can be called.
func (c LLMConfig) GeneratorEnabled() bool {
	return c.Provider != ProviderNone && strings.TrimSpace(c.APIKey) != ""
}
