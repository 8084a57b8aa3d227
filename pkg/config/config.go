package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/config"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Push         PushConfig         `yaml:"push"`
	Queue        QueueConfig        `yaml:"queue"`
	Auth         AuthConfig         `yaml:"auth"`
	Mail         MailConfig         `yaml:"mail"`
	Redis        RedisConfig        `yaml:"redis"`
	Verification VerificationConfig `yaml:"verification"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"`
}

type DatabaseConfig struct {
	PostgresURL string `yaml:"postgres_url"`
	MongoURI    string `yaml:"mongo_uri"`
	MongoDB     string `yaml:"mongo_db"`
}

// PushConfig configures the push gateway. An empty GatewayURL together with
// empty Firebase credentials disables push delivery.
type PushConfig struct {
	GatewayURL          string        `yaml:"gateway_url"`
	GatewaySecret       string        `yaml:"gateway_secret"`
	Timeout             time.Duration `yaml:"timeout"`
	FirebaseCredentials string        `yaml:"firebase_credentials"`
	FirebaseBase64      string        `yaml:"firebase_base64"`
}

// Push sends are bounded to this range regardless of PUSH_TIMEOUT.
const (
	MinPushTimeout = 10 * time.Second
	MaxPushTimeout = 15 * time.Second
)

type PushMode string

const (
	PushDisabled PushMode = "disabled"
	PushWebhook  PushMode = "webhook"
	PushFCM      PushMode = "fcm"
)

// Mode picks the delivery path. The webhook wins when both are configured.
func (p PushConfig) Mode() PushMode {
	switch {
	case p.GatewayURL != "":
		return PushWebhook
	case p.FirebaseCredentials != "" || p.FirebaseBase64 != "":
		return PushFCM
	default:
		return PushDisabled
	}
}

type QueueConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
	Workers int      `yaml:"workers"`
	Buffer  int      `yaml:"buffer"`
}

type AuthConfig struct {
	Provider  string `yaml:"provider"` // jwt or firebase
	JWTSecret string `yaml:"jwt_secret"`
}

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	UseTLS   bool   `yaml:"use_tls"`
}

func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type VerificationConfig struct {
	CodeTTL         time.Duration `yaml:"code_ttl"`
	SendLimit       int           `yaml:"send_limit"`
	SendWindow      time.Duration `yaml:"send_window"`
	VerifyLimit     int           `yaml:"verify_limit"`
	VerifyWindow    time.Duration `yaml:"verify_window"`
	CleanupSchedule string        `yaml:"cleanup_schedule"`
}

func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", Env: "development"},
		Database: DatabaseConfig{MongoDB: "oomool"},
		Push:     PushConfig{Timeout: 15 * time.Second},
		Queue:    QueueConfig{Topic: "push-notifications", GroupID: "oomool-push", Workers: 4, Buffer: 256},
		Auth:     AuthConfig{Provider: "jwt"},
		Mail:     MailConfig{Port: 587, From: "우물 <no-reply@oomool.app>", UseTLS: true},
		Verification: VerificationConfig{
			CodeTTL:         3 * time.Minute,
			SendLimit:       5,
			SendWindow:      10 * time.Minute,
			VerifyLimit:     5,
			VerifyWindow:    3 * time.Minute,
			CleanupSchedule: "@hourly",
		},
	}
}

// Load reads .env, then the optional YAML file at CONFIG_PATH, then environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := Default()

	configPath := getEnv("CONFIG_PATH", "./config/base.yaml")
	if _, err := os.Stat(configPath); err == nil {
		provider, err := config.NewYAML(
			config.File(configPath),
			config.Expand(os.LookupEnv),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create config provider: %w", err)
		}
		if err := provider.Get(config.Root).Populate(cfg); err != nil {
			return nil, fmt.Errorf("failed to populate config: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	cfg.overrideFromEnv()
	cfg.Push.Timeout = clampDuration(cfg.Push.Timeout, MinPushTimeout, MaxPushTimeout)

	if cfg.Database.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL environment variable not set")
	}
	if cfg.Database.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}

	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Env = getEnv("ENV", c.Server.Env)

	c.Database.PostgresURL = getEnv("POSTGRES_URL", c.Database.PostgresURL)
	c.Database.MongoURI = getEnv("MONGO_URI", c.Database.MongoURI)
	c.Database.MongoDB = getEnv("MONGO_DB", c.Database.MongoDB)

	c.Push.GatewayURL = getEnv("PUSH_FUNCTION_URL", c.Push.GatewayURL)
	c.Push.GatewaySecret = getEnv("WEBHOOK_SECRET", c.Push.GatewaySecret)
	c.Push.Timeout = getDuration("PUSH_TIMEOUT", c.Push.Timeout)
	c.Push.FirebaseCredentials = getEnv("FIREBASE_CREDENTIALS_PATH", c.Push.FirebaseCredentials)
	c.Push.FirebaseBase64 = getEnv("FIREBASE_SERVICE_ACCOUNT_BASE64", c.Push.FirebaseBase64)

	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		c.Queue.Brokers = strings.Split(val, ",")
	}
	c.Queue.Topic = getEnv("KAFKA_PUSH_TOPIC", c.Queue.Topic)
	c.Queue.Workers = getInt("PUSH_WORKERS", c.Queue.Workers)

	c.Auth.Provider = getEnv("AUTH_PROVIDER", c.Auth.Provider)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)

	c.Mail.Host = getEnv("SMTP_HOST", c.Mail.Host)
	c.Mail.Port = getInt("SMTP_PORT", c.Mail.Port)
	c.Mail.Username = getEnv("SMTP_USERNAME", c.Mail.Username)
	c.Mail.Password = getEnv("SMTP_PASSWORD", c.Mail.Password)
	c.Mail.From = getEnv("SMTP_FROM", c.Mail.From)
	if val := os.Getenv("SMTP_USE_TLS"); val != "" {
		if useTLS, err := strconv.ParseBool(val); err == nil {
			c.Mail.UseTLS = useTLS
		}
	}

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getInt("REDIS_DB", c.Redis.DB)
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	switch {
	case d < lo:
		return lo
	case d > hi:
		return hi
	default:
		return d
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
