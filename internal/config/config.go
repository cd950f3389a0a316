package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	PublicChannelID   string `yaml:"publicChannelID" validate:"required"`
	InternalChannelID string `yaml:"internalChannelID" validate:"required"`
	// RotationRule overrides the default weekly-Monday recurrence.
	// Must be a valid RRULE when set.
	RotationRule string `yaml:"rotationRule,omitempty"`
}

// Env holds the secrets read from the process environment (optionally
// seeded from a .env file)
type Env struct {
	DatabaseURL   string
	SlackBotToken string
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from chief_rota_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rotation rule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.RotationRule != "" {
		if _, err := rrule.StrToRRule(cfg.RotationRule); err != nil {
			return fmt.Errorf("invalid rotationRule: %w", err)
		}
	}

	return nil
}

// LoadEnv reads the required secrets from the environment. A .env file in
// the working directory is applied first when present.
func LoadEnv() (*Env, error) {
	// Missing .env is fine; real environments set the variables directly
	_ = godotenv.Load()

	env := &Env{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SlackBotToken: os.Getenv("SLACK_BOT_TOKEN"),
	}

	if env.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if env.SlackBotToken == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN is not set")
	}

	return env, nil
}

// findConfigFile searches for chief_rota_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "chief_rota_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
