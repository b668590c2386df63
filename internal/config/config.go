package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the API server.
type Config struct {
	HTTPAddr         string
	DatabaseURL      string
	RedisAddr        string
	QueryTimeout     time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
	ReportWindowDays int
	AlertsKeep       int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("QUERY_TIMEOUT", "3s")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("REPORT_WINDOW_DAYS", 30)
	v.SetDefault("ALERTS_KEEP", 100)
}

// Load reads configuration from, in increasing precedence: defaults, an
// optional config.yaml in dir, a .env file in dir and the process environment.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(dir + "/.env"); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		QueryTimeout:     v.GetDuration("QUERY_TIMEOUT"),
		RateLimitRPS:     v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
		ReportWindowDays: v.GetInt("REPORT_WINDOW_DAYS"),
		AlertsKeep:       v.GetInt("ALERTS_KEEP"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.QueryTimeout <= 0 {
		errs = append(errs, errors.New("QUERY_TIMEOUT must be positive"))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must be positive"))
	}
	if c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive"))
	}
	if c.ReportWindowDays <= 0 {
		errs = append(errs, errors.New("REPORT_WINDOW_DAYS must be positive"))
	}
	if c.AlertsKeep <= 0 {
		errs = append(errs, errors.New("ALERTS_KEEP must be positive"))
	}
	return errors.Join(errs...)
}
