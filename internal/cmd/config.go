package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server settings. Values come from the YAML config file;
// secrets and deploy-specific endpoints can be overridden by environment
// variables.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Stripe struct {
		SecretKey     string `yaml:"secret_key"`
		WebhookSecret string `yaml:"webhook_secret"`
	} `yaml:"stripe"`

	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`
}

// LoadConfig reads the YAML config file and applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.NATS.URL = "nats://localhost:4222"

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if cfg.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required (STRIPE_SECRET_KEY)")
	}
	if cfg.Stripe.WebhookSecret == "" {
		return nil, fmt.Errorf("stripe webhook secret is required (STRIPE_WEBHOOK_SECRET)")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required (JWT_SECRET)")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		cfg.Stripe.SecretKey = v
	}
	if v := os.Getenv("STRIPE_WEBHOOK_SECRET"); v != "" {
		cfg.Stripe.WebhookSecret = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}
}
