// Package config loads server configuration from an optional YAML file with
// environment-variable overrides, so container deployments can run without a
// config file at all.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Telegram TelegramConfig `yaml:"telegram"`
	Triage   TriageConfig   `yaml:"triage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	URL            string `yaml:"url"`
	MigrationsPath string `yaml:"migrations_path"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type TelegramConfig struct {
	BotToken       string `yaml:"bot_token"`
	CareTeamChatID int64  `yaml:"care_team_chat_id"`
}

type TriageConfig struct {
	// ConfidenceThreshold is the minimum normalizer confidence required to
	// accept a classified answer; anything lower re-prompts the patient.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

type LoggingConfig struct {
	Mode string `yaml:"mode"` // "dev" or "prod"
}

func Default() Config {
	return Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{MigrationsPath: "file://migrations"},
		OpenAI:   OpenAIConfig{Model: "gpt-4o-mini"},
		Triage:   TriageConfig{ConfidenceThreshold: 0.5},
		Logging:  LoggingConfig{Mode: "dev"},
	}
}

// Load reads path (ignored when absent) and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.MigrationsPath, "MIGRATIONS_PATH")
	setString(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.OpenAI.Model, "OPENAI_MODEL")
	setString(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.Logging.Mode, "LOG_MODE")

	if v := os.Getenv("CARE_TEAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.CareTeamChatID = id
		}
	}
	if v := os.Getenv("TRIAGE_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Triage.ConfidenceThreshold = f
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
