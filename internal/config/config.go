/*
Package config loads the monitor settings from the environment, an optional
.env file and the Telegram credentials file.
*/
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrInvalid = errors.New("invalid configuration")

// Credentials files ship with these markers in place of real values.
var placeholderMarkers = []string{"ВСТАВЬ", "YOUR_", "<"}

type Config struct {
	Auction   AuctionConfig
	Monitor   MonitorConfig
	Telegram  TelegramConfig
	Email     EmailConfig
	Heartbeat HeartbeatConfig
	Status    StatusConfig
	Log       LogConfig
}

type AuctionConfig struct {
	APIURL         string        `envconfig:"AUCTION_API_URL" required:"true"`
	LinkBase       string        `envconfig:"AUCTION_LINK_BASE" default:"https://collect.vimeworld.com/auction/"`
	UTCOffset      time.Duration `envconfig:"AUCTION_UTC_OFFSET" default:"3h"`
	RequestTimeout time.Duration `envconfig:"AUCTION_REQUEST_TIMEOUT" default:"15s"`
}

type MonitorConfig struct {
	Interval         time.Duration `envconfig:"CHECK_INTERVAL" default:"60s"`
	AlertBeforeHours float64       `envconfig:"ALERT_BEFORE_END_HOURS" default:"3"`
	WatchedNicks     []string      `envconfig:"WATCHED_NICKS"`
	PruneAfter       time.Duration `envconfig:"PRUNE_AFTER" default:"24h"`
}

// Threshold is the ending-soon window as a duration.
func (m *MonitorConfig) Threshold() time.Duration {
	return time.Duration(m.AlertBeforeHours * float64(time.Hour))
}

type TelegramConfig struct {
	Token       string `envconfig:"BOT_TOKEN"`
	ChatID      string `envconfig:"CHAT_ID"`
	KeyFile     string `envconfig:"TELEGRAM_KEY_FILE" default:"telegram_key.txt"`
	APIEndpoint string `envconfig:"TELEGRAM_API_ENDPOINT"`
	Proxy       string `envconfig:"TELEGRAM_PROXY"`
}

func (t *TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != ""
}

type EmailConfig struct {
	SMTPServer string `envconfig:"SMTP_SERVER"`
	SMTPPort   int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser   string `envconfig:"SMTP_USER"`
	SMTPPass   string `envconfig:"SMTP_PASS"`
	FromEmail  string `envconfig:"FROM_EMAIL"`
	ToEmail    string `envconfig:"TO_EMAIL"`
}

func (e *EmailConfig) Enabled() bool {
	return e.SMTPServer != "" && e.SMTPUser != "" && e.SMTPPass != "" && e.ToEmail != ""
}

type HeartbeatConfig struct {
	Interval time.Duration `envconfig:"HEARTBEAT_INTERVAL" default:"24h"`
	Image    string        `envconfig:"HEARTBEAT_IMAGE" default:"image.jpg"`
}

type StatusConfig struct {
	Addr string `envconfig:"STATUS_ADDR"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads the configuration. envFiles are loaded first when they exist;
// variables already set in the environment win over them.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := cfg.loadTelegramKeyFile(); err != nil {
		return nil, err
	}
	cfg.Monitor.WatchedNicks = cleanList(cfg.Monitor.WatchedNicks)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadTelegramKeyFile fills missing Telegram credentials from the KEY=VALUE
// credentials file. Placeholder values disable the channel.
func (c *Config) loadTelegramKeyFile() error {
	t := &c.Telegram
	if t.Token == "" || t.ChatID == "" {
		if t.KeyFile != "" {
			values, err := godotenv.Read(t.KeyFile)
			switch {
			case err == nil:
				if t.Token == "" {
					t.Token = values["BOT_TOKEN"]
				}
				if t.ChatID == "" {
					t.ChatID = values["CHAT_ID"]
				}
			case !errors.Is(err, os.ErrNotExist):
				return fmt.Errorf("failed to read %s: %w", t.KeyFile, err)
			}
		}
	}

	if isPlaceholder(t.Token) || isPlaceholder(t.ChatID) {
		t.Token, t.ChatID = "", ""
	}
	return nil
}

func (c *Config) validate() error {
	var problems []string

	if !strings.HasPrefix(c.Auction.APIURL, "http://") && !strings.HasPrefix(c.Auction.APIURL, "https://") {
		problems = append(problems, "AUCTION_API_URL must be an http(s) URL")
	}
	if c.Auction.RequestTimeout <= 0 {
		problems = append(problems, "AUCTION_REQUEST_TIMEOUT must be positive")
	}
	if c.Monitor.Interval <= 0 {
		problems = append(problems, "CHECK_INTERVAL must be positive")
	}
	if c.Monitor.AlertBeforeHours <= 0 || math.IsNaN(c.Monitor.AlertBeforeHours) || math.IsInf(c.Monitor.AlertBeforeHours, 0) {
		problems = append(problems, "ALERT_BEFORE_END_HOURS must be a positive number")
	}
	if c.Monitor.PruneAfter < 0 {
		problems = append(problems, "PRUNE_AFTER must not be negative")
	}
	if c.Heartbeat.Interval < 0 {
		problems = append(problems, "HEARTBEAT_INTERVAL must not be negative")
	}
	if c.Email.SMTPPort <= 0 || c.Email.SMTPPort > 65535 {
		problems = append(problems, "SMTP_PORT out of range")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func isPlaceholder(v string) bool {
	for _, marker := range placeholderMarkers {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
