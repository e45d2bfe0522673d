package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`

	DBHost         string        `mapstructure:"POSTGRES_HOST"`
	DBPort         string        `mapstructure:"POSTGRES_PORT"`
	DBUser         string        `mapstructure:"POSTGRES_USER"`
	DBPassword     string        `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string        `mapstructure:"POSTGRES_DB"`
	DBMaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxIdleTime  time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`

	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	CacheDefaultExpiration time.Duration `mapstructure:"CACHE_DEFAULT_EXPIRATION"`
	CacheCleanupInterval   time.Duration `mapstructure:"CACHE_CLEANUP_INTERVAL"`

	RateLimitRPS     float64 `mapstructure:"LIMITER_RPS"`
	RateLimitBurst   int     `mapstructure:"LIMITER_BURST"`
	RateLimitEnabled bool    `mapstructure:"LIMITER_ENABLED"`
}

var configDefaults = map[string]any{
	"PORT":                     "4000",
	"ENVIRONMENT":              "development",
	"VERSION":                  "1.0.0",
	"TRUSTED_ORIGINS":          "",
	"TLS_CERT_FILE":            "",
	"TLS_KEY_FILE":             "",
	"POSTGRES_HOST":            "localhost",
	"POSTGRES_PORT":            "5432",
	"POSTGRES_USER":            "postgres",
	"POSTGRES_PASSWORD":        "",
	"POSTGRES_DB":              "newsportal",
	"DB_MAX_OPEN_CONNS":        25,
	"DB_MAX_IDLE_CONNS":        25,
	"DB_MAX_IDLE_TIME":         "15m",
	"MAIL_HOST":                "localhost",
	"MAIL_PORT":                25,
	"MAIL_USER":                "",
	"MAIL_PASSWORD":            "",
	"MAIL_SENDER":              "NewsPortal <no-reply@newsportal.local>",
	"RABBITMQ_HOST":            "localhost",
	"RABBITMQ_PORT":            "5672",
	"RABBITMQ_USER":            "guest",
	"RABBITMQ_PASSWORD":        "guest",
	"CACHE_DEFAULT_EXPIRATION": "5m",
	"CACHE_CLEANUP_INTERVAL":   "10m",
	"LIMITER_RPS":              2,
	"LIMITER_BURST":            4,
	"LIMITER_ENABLED":          true,
}

// loadConfig reads the .env file at path. Environment variables override the file,
// and a missing file falls back to environment and defaults.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
