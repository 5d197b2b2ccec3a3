package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Port int `envconfig:"PORT" default:"8080"`
	}

	Sheet struct {
		URL     string `envconfig:"SHEET_URL" default:"http://localhost:8090"`
		SheetID string `envconfig:"SHEET_ID"`
	}

	Rabbit struct {
		// Empty URL disables mutation event publishing.
		URL      string `envconfig:"RABBIT_URL"`
		Exchange string `envconfig:"RABBIT_EXCHANGE" default:"business.events"`
	}

	GenAI struct {
		APIKey     string `envconfig:"GENAI_API_KEY"`
		TextModel  string `envconfig:"GENAI_TEXT_MODEL" default:"gemini-3-flash-preview"`
		ImageModel string `envconfig:"GENAI_IMAGE_MODEL" default:"gemini-2.5-flash-image"`
	}

	Session struct {
		Path string `envconfig:"SESSION_PATH" default:".session.json"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"sheetd"`
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
