// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/llm"
)

// Default values used when neither the config file, the environment nor a flag sets a field.
const (
	DefaultPort        = 8080
	DefaultConcurrency = 3
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment, flags or defaults.
type Config struct {
	APIKey      string  `json:"api_key,omitempty"`                                       // Gemini API key
	Port        int     `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`     // HTTP listen port
	Formation   string  `json:"formation,omitempty"`                                     // Formation the session starts with
	Concurrency int     `json:"concurrency,omitempty" validate:"omitempty,min=1,max=16"` // Parallel resume scoring in the CLI
	Temperature float32 `json:"temperature,omitempty" validate:"omitempty,min=0,max=2"`  // Model sampling temperature
	ModelLite   string  `json:"model_lite,omitempty"`                                    // Override for the lite tier
	ModelStd    string  `json:"model_standard,omitempty"`                                // Override for the standard tier
	ModelAdv    string  `json:"model_advanced,omitempty"`                                // Override for the advanced tier
	Verbose     bool    `json:"verbose,omitempty"`                                       // Print boards and cards while working
	CORSOrigin  string  `json:"cors_origin,omitempty" validate:"omitempty,url|eq=*"`     // Allowed browser origin
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the settings that have an environment variable.
func FromEnv() Config {
	cfg := Config{
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		Formation:  os.Getenv("SQUAD_FORMATION"),
		ModelLite:  os.Getenv("SQUAD_MODEL_LITE"),
		ModelStd:   os.Getenv("SQUAD_MODEL_STANDARD"),
		ModelAdv:   os.Getenv("SQUAD_MODEL_ADVANCED"),
		CORSOrigin: os.Getenv("SQUAD_CORS_ORIGIN"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if n, err := strconv.Atoi(os.Getenv("SQUAD_CONCURRENCY")); err == nil {
		cfg.Concurrency = n
	}
	return cfg
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:        DefaultPort,
		Formation:   formation.DefaultID,
		Concurrency: DefaultConcurrency,
		CORSOrigin:  "*",
	}
}

// Validate checks that the configuration has valid values.
// The API key is not required here; commands that call the model check it themselves.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Formation != "" {
		if _, err := formation.Lookup(c.Formation); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Precedence is receiver first, so callers merge flags <- file <- env <- Defaults().
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Formation == "" {
		result.Formation = defaults.Formation
	}
	if result.ModelLite == "" {
		result.ModelLite = defaults.ModelLite
	}
	if result.ModelStd == "" {
		result.ModelStd = defaults.ModelStd
	}
	if result.ModelAdv == "" {
		result.ModelAdv = defaults.ModelAdv
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}

	// Bool fields: cannot distinguish unset from false, so true wins
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// LLMConfig builds the model configuration with any per-tier overrides applied.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig().
		WithModel(llm.TierLite, c.ModelLite).
		WithModel(llm.TierStandard, c.ModelStd).
		WithModel(llm.TierAdvanced, c.ModelAdv)
	if c.Temperature > 0 {
		cfg.Temperature = c.Temperature
	}
	return cfg
}
