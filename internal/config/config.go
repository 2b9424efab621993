package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is built once at startup and
// handed to the components that need it.
type Config struct {
	Telegram struct {
		BotToken    string `yaml:"bot_token"`
		AdminChatID string `yaml:"admin_chat_id"`
		Mode        string `yaml:"mode"` // webhook or polling
		APIBaseURL  string `yaml:"api_base_url"`
	} `yaml:"telegram"`
	Webhook struct {
		Addr   string `yaml:"addr"`
		Secret string `yaml:"secret"`
	} `yaml:"webhook"`
	Market struct {
		Symbol        string `yaml:"symbol"`
		QuoteCurrency string `yaml:"quote_currency"`
	} `yaml:"market"`
	News struct {
		Query    string `yaml:"query"`
		MaxItems int    `yaml:"max_items"`
	} `yaml:"news"`
	Schedule struct {
		ReportCron string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level   string `yaml:"level"`
		Format  string `yaml:"format"`
		Tracing bool   `yaml:"tracing"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

const (
	ModeWebhook = "webhook"
	ModePolling = "polling"
)

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error: env vars and defaults may be enough.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}

	setString(&c.Telegram.BotToken, "TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
	setString(&c.Telegram.AdminChatID, "ADMIN_CHAT_ID", "TELEGRAM_CHAT_ID")
	setString(&c.Telegram.Mode, "TELEGRAM_MODE")
	setString(&c.Webhook.Secret, "WEBHOOK_SECRET")
	setString(&c.Market.Symbol, "TICKER")
	setString(&c.News.Query, "NEWS_QUERY")
	setString(&c.Schedule.ReportCron, "REPORT_CRON")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")
	setString(&c.Proxy, "HTTPS_PROXY")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Webhook.Addr = ":" + v
	}
	if v := os.Getenv("NEWS_MAX_ITEMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid NEWS_MAX_ITEMS %q: %w", v, err)
		}
		c.News.MaxItems = n
	}
	if v := os.Getenv("LOG_TRACING_ENABLED"); v != "" {
		c.Log.Tracing = v == "true"
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Telegram.Mode == "" {
		c.Telegram.Mode = ModeWebhook
	}
	c.Telegram.Mode = strings.ToLower(c.Telegram.Mode)
	if c.Telegram.APIBaseURL == "" {
		c.Telegram.APIBaseURL = "https://api.telegram.org"
	}
	if c.Webhook.Addr == "" {
		c.Webhook.Addr = ":8080"
	}
	if c.Market.Symbol == "" {
		c.Market.Symbol = "BBAI"
	}
	if c.Market.QuoteCurrency == "" {
		c.Market.QuoteCurrency = "USD"
	}
	if c.News.Query == "" {
		c.News.Query = "BigBear.ai stock"
	}
	if c.News.MaxItems <= 0 {
		c.News.MaxItems = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	if c.Market.Symbol == "" {
		return errors.New("market.symbol is required")
	}
	if c.News.MaxItems <= 0 {
		return errors.New("news.max_items must be positive")
	}
	return nil
}

// ValidateServe checks the extra fields the long-running bot needs.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}
	if c.Telegram.AdminChatID == "" {
		return errors.New("telegram.admin_chat_id is required")
	}
	switch c.Telegram.Mode {
	case ModeWebhook:
		if c.Webhook.Secret == "" {
			return errors.New("webhook.secret is required in webhook mode")
		}
	case ModePolling:
	default:
		return fmt.Errorf("telegram.mode must be %q or %q, got %q", ModeWebhook, ModePolling, c.Telegram.Mode)
	}
	return nil
}
